package bot

import (
	"context"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"study-planner/internal/model"
	"study-planner/internal/service"
)

const cbCompletePrefix = "complete:"

const (
	menuLabelTasks  = "📋 Tasks"
	menuLabelReport = "📊 Report"
	menuLabelHelp   = "ℹ️ Help"
)

const helpText = "ℹ️ <b>Commands</b>\n" +
	"• /report — time studied per subject, open tasks and a tip\n" +
	"• /tasks — open tasks, tap a button to complete one\n" +
	"• /complete &lt;id&gt; — mark a task as done (for example /complete 3)\n" +
	"• /help — this message"

// messenger is the part of tgbotapi.BotAPI used to talk back to chats.
type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot aggregates Telegram API with services.
type Bot struct {
	api         *tgbotapi.BotAPI
	out         messenger
	taskSvc     *service.TaskService
	reminderSvc *service.ReminderService
	chatID      int64
	now         func() time.Time
}

// New connects to Telegram. When chatID is non-zero only that chat is served
// and it receives the scheduled reports.
func New(token string, chatID int64, taskSvc *service.TaskService, reminderSvc *service.ReminderService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	b := newBot(api, chatID, taskSvc, reminderSvc)
	b.api = api
	return b, nil
}

func newBot(out messenger, chatID int64, taskSvc *service.TaskService, reminderSvc *service.ReminderService) *Bot {
	return &Bot{
		out:         out,
		taskSvc:     taskSvc,
		reminderSvc: reminderSvc,
		chatID:      chatID,
		now:         time.Now,
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

// allowed reports whether the bot should answer in chat.
func (b *Bot) allowed(chat *tgbotapi.Chat) bool {
	if chat == nil {
		return false
	}
	if b.chatID != 0 {
		return chat.ID == b.chatID
	}
	return chat.IsPrivate()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil || !b.allowed(msg.Chat) {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg.Chat.ID, msg.Command(), msg.CommandArguments())
	}

	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case strings.ToLower(menuLabelTasks):
		return b.handleCommand(ctx, msg.Chat.ID, "tasks", "")
	case strings.ToLower(menuLabelReport):
		return b.handleCommand(ctx, msg.Chat.ID, "report", "")
	case strings.ToLower(menuLabelHelp):
		return b.handleCommand(ctx, msg.Chat.ID, "help", "")
	}

	return b.sendText(msg.Chat.ID, "I did not get that. Try /report, /tasks or /help.")
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command, args string) error {
	switch command {
	case "start":
		return b.sendText(chatID, "👋 <b>Study planner</b>\nI send study reports and let you tick off tasks.\n\n"+helpText)
	case "help":
		return b.sendText(chatID, helpText)
	case "report":
		return b.handleReport(ctx, chatID)
	case "tasks":
		return b.sendTaskList(ctx, chatID)
	case "complete":
		return b.handleComplete(ctx, chatID, args)
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleReport(ctx context.Context, chatID int64) error {
	text, err := b.reminderSvc.DailySummary(ctx, b.now())
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not build the report: %s", escape(err.Error())))
	}
	return b.sendText(chatID, text)
}

func (b *Bot) handleComplete(ctx context.Context, chatID int64, args string) error {
	args = strings.TrimSpace(args)
	if args == "" {
		return b.sendText(chatID, "Give me a task id: /complete 12")
	}
	taskID, err := strconv.ParseUint(args, 10, 64)
	if err != nil {
		return b.sendText(chatID, "The task id must be a number.")
	}
	return b.completeTask(ctx, chatID, uint(taskID))
}

func (b *Bot) completeTask(ctx context.Context, chatID int64, taskID uint) error {
	task, err := b.taskSvc.CompleteTask(ctx, taskID)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}
	if task == nil {
		return b.sendText(chatID, "Task not found.")
	}
	log.Printf("[info] task %d completed from chat %d", task.ID, chatID)
	return b.sendText(chatID, fmt.Sprintf("✅ Task «%s» done.", escape(strings.TrimSpace(task.Title))))
}

func (b *Bot) sendTaskList(ctx context.Context, chatID int64) error {
	text, err := b.reminderSvc.TaskList(ctx, b.now())
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	tasks, err := b.taskSvc.ListIncomplete(ctx)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(chatID, text)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = completeKeyboard(tasks)
	_, err = b.out.Send(msg)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil || !b.allowed(cb.Message.Chat) {
		return nil
	}

	if _, err := b.out.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}
	if !strings.HasPrefix(cb.Data, cbCompletePrefix) {
		return nil
	}

	log.Printf("[info] callback complete user=%d task=%s", cb.From.ID, strings.TrimPrefix(cb.Data, cbCompletePrefix))
	taskID, err := parseTaskID(cb.Data, cbCompletePrefix)
	if err != nil {
		return nil
	}
	return b.completeTask(ctx, cb.Message.Chat.ID, taskID)
}

// SendDailyReports pushes the study report to the configured chat.
func (b *Bot) SendDailyReports(ctx context.Context) error {
	if b.chatID == 0 {
		log.Println("[warn] TELEGRAM_CHAT_ID is not set, skipping scheduled report")
		return nil
	}
	text, err := b.reminderSvc.DailySummary(ctx, b.now())
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}
	if err := b.sendText(b.chatID, text); err != nil {
		return fmt.Errorf("send summary to %d: %w", b.chatID, err)
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := b.out.Send(msg)
	return err
}

func parseTaskID(data, prefix string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func completeKeyboard(tasks []model.Task) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tasks))
	for _, task := range tasks {
		label := fmt.Sprintf("✅ #%d · %s", task.ID, shortTitle(task.Title, 24))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbCompletePrefix, task.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelReport),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}
