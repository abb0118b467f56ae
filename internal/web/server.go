package web

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"study-planner/internal/service"
)

type (
	Options struct {
		Address        string
		Debug          bool
		DisableReqLogs bool

		SubjectSvc   *service.SubjectService
		TaskSvc      *service.TaskService
		SessionSvc   *service.SessionService
		DashboardSvc *service.DashboardService
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) (Server, error) {
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}

	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.app.HideBanner = true
	s.app.Renderer = renderer
	s.setup()
	return s, nil
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in debug mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = appHTTPErrorHandler
	s.app.Debug = s.opts.Debug

	h := &handlers{
		subjects:  s.opts.SubjectSvc,
		tasks:     s.opts.TaskSvc,
		sessions:  s.opts.SessionSvc,
		dashboard: s.opts.DashboardSvc,
	}

	s.app.GET("/", h.index)
	s.app.POST("/add_subject", h.addSubject)
	s.app.POST("/add_task", h.addTask)
	s.app.POST("/log_session", h.logSession)
	s.app.GET("/complete_task/:task_id", h.completeTask)

	api := s.app.Group("/api")
	api.GET("/dashboard", h.dashboardJSON)
	api.GET("/subjects/:id", h.subjectJSON)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
