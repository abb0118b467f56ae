package service

import (
	"context"
	"time"

	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// SessionService records study sessions.
type SessionService struct {
	sessionRepo *repository.SessionRepository
	subjectRepo *repository.SubjectRepository
	now         func() time.Time
}

func NewSessionService(sessionRepo *repository.SessionRepository, subjectRepo *repository.SubjectRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, subjectRepo: subjectRepo, now: time.Now}
}

// LogSession stores a session dated now. Missing subject or duration makes it a no-op returning nil, nil.
func (s *SessionService) LogSession(ctx context.Context, input NewSession) (*model.StudySession, error) {
	if err := input.Validate(); err != nil {
		if skipMissing("log session", err) {
			return nil, nil
		}
		return nil, err
	}

	subjectID, err := parseID("subject_id", input.SubjectID)
	if err != nil {
		return nil, err
	}
	minutes, err := parseMinutes("duration", input.Duration)
	if err != nil {
		return nil, err
	}
	if err := ensureSubject(ctx, s.subjectRepo, subjectID); err != nil {
		return nil, err
	}

	session := model.StudySession{
		Date:            s.now().UTC(),
		DurationMinutes: minutes,
		Notes:           input.Notes,
		SubjectID:       subjectID,
	}
	if err := s.sessionRepo.Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
