package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// SubjectDetail is a subject with its tasks and sessions, looked up by subject id.
type SubjectDetail struct {
	Subject  model.Subject        `json:"subject"`
	Tasks    []model.Task         `json:"tasks"`
	Sessions []model.StudySession `json:"sessions"`
}

// SubjectService provides helpers around subjects.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	taskRepo    *repository.TaskRepository
	sessionRepo *repository.SessionRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, taskRepo *repository.TaskRepository, sessionRepo *repository.SessionRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo, taskRepo: taskRepo, sessionRepo: sessionRepo}
}

// CreateSubject stores a new subject. An empty name is a no-op and returns nil, nil.
func (s *SubjectService) CreateSubject(ctx context.Context, input NewSubject) (*model.Subject, error) {
	if err := input.Validate(); err != nil {
		if skipMissing("add subject", err) {
			return nil, nil
		}
		return nil, err
	}

	subject := model.Subject{Name: input.Name}
	if err := s.subjectRepo.Create(ctx, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Detail loads a subject and queries its tasks and sessions by subject id.
func (s *SubjectService) Detail(ctx context.Context, id uint) (*SubjectDetail, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	tasks, err := s.taskRepo.ListBySubject(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListBySubject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &SubjectDetail{Subject: *subject, Tasks: tasks, Sessions: sessions}, nil
}

func ensureSubject(ctx context.Context, repo *repository.SubjectRepository, id uint) error {
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSubjectNotFound
	}
	return nil
}
