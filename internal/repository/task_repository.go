package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"study-planner/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListIncomplete returns open tasks, earliest deadline first. Equal deadlines keep insertion order.
func (r *TaskRepository) ListIncomplete(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Subject").
		Where("is_completed = ?", false).
		Order("deadline ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list incomplete tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListBySubject(ctx context.Context, subjectID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).
		Order("deadline ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list subject tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) MarkCompleted(ctx context.Context, task *model.Task) error {
	task.IsCompleted = true
	if err := r.db.WithContext(ctx).Model(task).Update("is_completed", true).Error; err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	return nil
}
