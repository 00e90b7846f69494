package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
)

type TaskPostgreSQL struct {
	db *gorm.DB
}

func NewTaskPostgreSQL(db *gorm.DB) repositories.TaskRepository {
	return &TaskPostgreSQL{db: db}
}

func (t *TaskPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return t.db
}

// Create persists a task together with its options
func (t *TaskPostgreSQL) Create(ctx context.Context, tx *gorm.DB, task *models.Task) error {
	db := t.getDB(tx)
	if err := db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task with its options
func (t *TaskPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Task, error) {
	db := t.getDB(tx)
	var task models.Task
	if err := db.WithContext(ctx).Preload("Options").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// Delete removes a task and its options
func (t *TaskPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := t.getDB(tx)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskOption{}).Error; err != nil {
			return fmt.Errorf("failed to delete task options: %w", err)
		}
		if err := tx.Delete(&models.Task{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}

// UpdateBatch saves order changes for multiple tasks
func (t *TaskPostgreSQL) UpdateBatch(ctx context.Context, tx *gorm.DB, tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	db := t.getDB(tx)
	for _, task := range tasks {
		err := db.WithContext(ctx).
			Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("task_order", task.Order).Error
		if err != nil {
			return fmt.Errorf("failed to update task %d: %w", task.ID, err)
		}
	}
	return nil
}

// GetByCourse returns all tasks of a course ordered by task_order
func (t *TaskPostgreSQL) GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Task, error) {
	db := t.getDB(tx)
	var tasks []*models.Task
	err := db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("task_order ASC").
		Preload("Options").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by course: %w", err)
	}
	return tasks, nil
}
