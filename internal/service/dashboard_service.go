package service

import (
	"context"
	"fmt"
	"strings"

	"study-planner/internal/model"
	"study-planner/internal/repository"
)

const balancedInsight = "Great job! You are maintaining a balanced study schedule."

// SubjectHours is one subject with its total logged study time.
type SubjectHours struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Minutes int     `json:"minutes"`
	Hours   float64 `json:"hours"`
}

// Dashboard is the aggregated view rendered on the home page.
type Dashboard struct {
	Subjects    []SubjectHours `json:"subjects"`
	Tasks       []model.Task   `json:"tasks"`
	ChartLabels []string       `json:"chart_labels"`
	ChartData   []float64      `json:"chart_data"`
	Neglected   []string       `json:"neglected"`
	Insight     string         `json:"insight"`
}

// DashboardService reads every entity and recomputes the aggregates on each call.
type DashboardService struct {
	subjectRepo *repository.SubjectRepository
	taskRepo    *repository.TaskRepository
	sessionRepo *repository.SessionRepository
}

func NewDashboardService(subjectRepo *repository.SubjectRepository, taskRepo *repository.TaskRepository, sessionRepo *repository.SessionRepository) *DashboardService {
	return &DashboardService{subjectRepo: subjectRepo, taskRepo: taskRepo, sessionRepo: sessionRepo}
}

func (s *DashboardService) Build(ctx context.Context) (Dashboard, error) {
	subjects, err := s.subjectRepo.ListAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	tasks, err := s.taskRepo.ListIncomplete(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	minutes, err := s.sessionRepo.MinutesBySubject(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Aggregate(subjects, tasks, minutes), nil
}

// Aggregate computes hours per subject, the neglected list and the insight message.
// tasks must already be the incomplete tasks in deadline order.
func Aggregate(subjects []model.Subject, tasks []model.Task, minutes map[uint]int) Dashboard {
	d := Dashboard{
		Subjects:    make([]SubjectHours, 0, len(subjects)),
		Tasks:       tasks,
		ChartLabels: make([]string, 0, len(subjects)),
		ChartData:   make([]float64, 0, len(subjects)),
		Neglected:   make([]string, 0),
	}
	if d.Tasks == nil {
		d.Tasks = []model.Task{}
	}

	for _, sub := range subjects {
		total := minutes[sub.ID]
		hours := float64(total) / 60
		d.Subjects = append(d.Subjects, SubjectHours{ID: sub.ID, Name: sub.Name, Minutes: total, Hours: hours})
		d.ChartLabels = append(d.ChartLabels, sub.Name)
		d.ChartData = append(d.ChartData, hours)
		if hours == 0 {
			d.Neglected = append(d.Neglected, sub.Name)
		}
	}

	d.Insight = Insight(d.Neglected)
	return d
}

// Insight returns the dashboard tip for the given neglected subject names.
func Insight(neglected []string) string {
	if len(neglected) == 0 {
		return balancedInsight
	}
	return fmt.Sprintf("Tip: You haven't studied %s yet. Plan a session soon!", strings.Join(neglected, ", "))
}
