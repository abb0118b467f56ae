package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-planner/internal/model"
)

// SessionRepository stores logged study sessions.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.StudySession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListBySubject(ctx context.Context, subjectID uint) ([]model.StudySession, error) {
	var sessions []model.StudySession
	if err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).
		Order("date DESC, id DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list subject sessions: %w", err)
	}
	return sessions, nil
}

type subjectMinutes struct {
	SubjectID uint
	Minutes   int
}

// MinutesBySubject sums duration_minutes per subject. Subjects without sessions are absent.
func (r *SessionRepository) MinutesBySubject(ctx context.Context) (map[uint]int, error) {
	var rows []subjectMinutes
	if err := r.db.WithContext(ctx).Model(&model.StudySession{}).
		Select("subject_id, COALESCE(SUM(duration_minutes), 0) AS minutes").
		Group("subject_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("sum session minutes: %w", err)
	}

	totals := make(map[uint]int, len(rows))
	for _, row := range rows {
		totals[row.SubjectID] = row.Minutes
	}
	return totals, nil
}
