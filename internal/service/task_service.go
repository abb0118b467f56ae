package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo    *repository.TaskRepository
	subjectRepo *repository.SubjectRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, subjectRepo *repository.SubjectRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, subjectRepo: subjectRepo}
}

// CreateTask stores an open task. Missing fields make it a no-op returning nil, nil.
func (s *TaskService) CreateTask(ctx context.Context, input NewTask) (*model.Task, error) {
	if err := input.Validate(); err != nil {
		if skipMissing("add task", err) {
			return nil, nil
		}
		return nil, err
	}

	deadline, err := parseDate("deadline", input.Deadline)
	if err != nil {
		return nil, err
	}
	subjectID, err := parseID("subject_id", input.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := ensureSubject(ctx, s.subjectRepo, subjectID); err != nil {
		return nil, err
	}

	task := model.Task{
		Title:     input.Title,
		Deadline:  deadline,
		SubjectID: subjectID,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) ListIncomplete(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListIncomplete(ctx)
}

// CompleteTask marks a task as done. Unknown ids are ignored and return nil, nil.
// Completion is one-way; completing twice is harmless.
func (s *TaskService) CompleteTask(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if task.IsCompleted {
		return task, nil
	}

	if err := s.taskRepo.MarkCompleted(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
