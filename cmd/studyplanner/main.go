package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-planner/internal/bot"
	"study-planner/internal/config"
	"study-planner/internal/repository"
	"study-planner/internal/service"
	"study-planner/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	subjectRepo := repository.NewSubjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	subjectSvc := service.NewSubjectService(subjectRepo, taskRepo, sessionRepo)
	taskSvc := service.NewTaskService(taskRepo, subjectRepo)
	sessionSvc := service.NewSessionService(sessionRepo, subjectRepo)
	dashboardSvc := service.NewDashboardService(subjectRepo, taskRepo, sessionRepo)
	reminderSvc := service.NewReminderService(dashboardSvc)

	srv, err := web.NewServer(&web.Options{
		Address:      cfg.HTTPAddr,
		Debug:        cfg.Debug,
		SubjectSvc:   subjectSvc,
		TaskSvc:      taskSvc,
		SessionSvc:   sessionSvc,
		DashboardSvc: dashboardSvc,
	})
	if err != nil {
		log.Fatalf("web: %v", err)
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("[info] http server listening on %s", cfg.HTTPAddr)
		serverErrors <- srv.Start()
	}()

	if cfg.BotEnabled() {
		telegramBot, err := bot.New(cfg.TelegramToken, cfg.TelegramChatID, taskSvc, reminderSvc)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}

		scheduler := service.NewSchedulerService(cfg.Location)
		id, err := scheduler.ScheduleReport(cfg.ReportTime, cfg.ReportInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := telegramBot.SendDailyReports(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("report: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("schedule reports: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("[info] next report at %s", scheduler.Next(id).Format(time.RFC3339))

		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("bot stopped with error: %v", err)
			}
		}()
	} else {
		log.Println("[info] TELEGRAM_TOKEN is not set, bot disabled")
	}

	log.Println("Study planner started.")

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
