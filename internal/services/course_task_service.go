package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
)

type courseTaskService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewCourseTaskService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) CourseTaskService {
	return &courseTaskService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// InsertTaskAt places the task at the given 1-based position, shifting
// every task at or after that position up by one. The whole operation
// runs in one transaction over the locked course row.
func (s *courseTaskService) InsertTaskAt(ctx context.Context, courseID uint, task *models.Task, position int) error {
	return s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		course, err := txRepo.Course().GetByIDWithTasks(ctx, nil, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewResourceNotFoundError("Course not found with ID: %d", courseID)
			}
			return fmt.Errorf("failed to load course: %w", err)
		}

		if !course.IsBuilding() {
			return NewInvalidCourseTaskOperationError(
				"Cannot add tasks to course '%s' because its status is '%s'. Only courses with status 'BUILDING' can be modified.",
				course.Title, course.Status)
		}

		// Blank statements are rejected by field validation, not here
		normalized := task.NormalizedStatement()
		for i := range course.Tasks {
			existing := course.Tasks[i].NormalizedStatement()
			if existing == "" {
				continue
			}
			if existing == normalized {
				return NewInvalidCourseTaskOperationError(
					"The course already has a task with the statement: '%s'", task.Statement)
			}
		}

		if position < 1 || position > len(course.Tasks)+1 {
			return NewInvalidCourseTaskOperationError(
				"Invalid task order. The order must be continuous and between 1 and %d.",
				len(course.Tasks)+1)
		}

		var shifted []*models.Task
		for i := range course.Tasks {
			sibling := &course.Tasks[i]
			if sibling.Order >= position {
				sibling.Order++
				shifted = append(shifted, sibling)
			}
		}
		if err := txRepo.Task().UpdateBatch(ctx, nil, shifted); err != nil {
			return fmt.Errorf("failed to shift sibling tasks: %w", err)
		}

		task.CourseID = course.ID
		task.Order = position
		if err := txRepo.Task().Create(ctx, nil, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		s.logger.Info("Task inserted",
			"course_id", course.ID,
			"task_id", task.ID,
			"position", position,
			"shifted", len(shifted))

		return nil
	})
}

// RemoveTask deletes the task and renumbers the survivors densely 1..n.
// Removal is allowed regardless of course status.
func (s *courseTaskService) RemoveTask(ctx context.Context, courseID, taskID uint) error {
	return s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		course, err := txRepo.Course().GetByIDWithTasks(ctx, nil, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewResourceNotFoundError("Course not found with ID: %d", courseID)
			}
			return fmt.Errorf("failed to load course: %w", err)
		}

		task, err := txRepo.Task().GetByID(ctx, nil, taskID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewResourceNotFoundError("Task not found with ID: %d", taskID)
			}
			return fmt.Errorf("failed to load task: %w", err)
		}

		if task.CourseID != course.ID {
			return NewInvalidCourseTaskOperationError(
				"Task with ID %d does not belong to course with ID: %d", taskID, courseID)
		}

		if err := txRepo.Task().Delete(ctx, nil, taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		// course.Tasks is already sorted by order
		var renumbered []*models.Task
		next := 1
		for i := range course.Tasks {
			survivor := &course.Tasks[i]
			if survivor.ID == taskID {
				continue
			}
			if survivor.Order != next {
				survivor.Order = next
				renumbered = append(renumbered, survivor)
			}
			next++
		}
		if err := txRepo.Task().UpdateBatch(ctx, nil, renumbered); err != nil {
			return fmt.Errorf("failed to renumber tasks: %w", err)
		}

		s.logger.Info("Task removed",
			"course_id", course.ID,
			"task_id", taskID,
			"renumbered", len(renumbered))

		return nil
	})
}
