package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"study-planner/internal/model"
)

const (
	iconDefault = "🟢"
	iconDue     = "⏳"
	iconOverdue = "⚠️"
	dueSoon     = 48 * time.Hour
)

// ReminderService builds human-readable study summaries for chat notifications.
type ReminderService struct {
	dashboard *DashboardService
}

func NewReminderService(dashboard *DashboardService) *ReminderService {
	return &ReminderService{dashboard: dashboard}
}

// DailySummary renders the current dashboard as Telegram HTML.
func (s *ReminderService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	d, err := s.dashboard.Build(ctx)
	if err != nil {
		return "", err
	}
	return FormatSummary(d, now), nil
}

// TaskList renders only the open tasks.
func (s *ReminderService) TaskList(ctx context.Context, now time.Time) (string, error) {
	d, err := s.dashboard.Build(ctx)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Open tasks</b>\n")
	writeTasks(&builder, d.Tasks, now)
	return strings.TrimSpace(builder.String()), nil
}

// FormatSummary renders a dashboard as Telegram HTML.
func FormatSummary(d Dashboard, now time.Time) string {
	var builder strings.Builder
	builder.WriteString("📚 <b>Study report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format(model.DateLayout)))

	builder.WriteString("⏱ <b>Time studied</b>\n")
	if len(d.Subjects) == 0 {
		builder.WriteString("— no subjects yet\n")
	} else {
		for _, sub := range d.Subjects {
			builder.WriteString(fmt.Sprintf("• %s: %.1f h\n", html.EscapeString(sub.Name), sub.Hours))
		}
	}

	builder.WriteString("\n🔥 <b>Open tasks</b>\n")
	writeTasks(&builder, d.Tasks, now)

	builder.WriteString("\n💡 ")
	builder.WriteString(html.EscapeString(d.Insight))

	return strings.TrimSpace(builder.String())
}

func writeTasks(builder *strings.Builder, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		builder.WriteString("— no open tasks\n")
		return
	}
	for _, task := range tasks {
		builder.WriteString(formatTask(task, now))
	}
}

func formatTask(task model.Task, now time.Time) string {
	var sb strings.Builder

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	deadline := task.Deadline.UTC()
	left := deadline.Sub(today)

	icon := iconDefault
	switch {
	case left < 0:
		icon = iconOverdue
	case left <= dueSoon:
		icon = iconDue
	}

	title := html.EscapeString(strings.TrimSpace(task.Title))
	sb.WriteString(fmt.Sprintf("%s #%d %s", icon, task.ID, title))

	if task.Subject != nil {
		if name := strings.TrimSpace(task.Subject.Name); name != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(name)))
		}
	}

	if left < 0 {
		sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · <b>overdue</b>", task.DeadlineString()))
	} else {
		daysLeft := int(left.Hours() / 24)
		sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · %d day(s) left", task.DeadlineString(), daysLeft))
	}

	sb.WriteByte('\n')
	return sb.String()
}
