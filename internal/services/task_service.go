package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/validator"
)

type taskService struct {
	creators  map[models.TaskType]TaskCreator
	logger    *slog.Logger
	validator *validator.Validator
}

// NewTaskService builds the dispatcher from the registered creators.
// When two creators claim the same kind the later registration wins.
func NewTaskService(logger *slog.Logger, v *validator.Validator, creators ...TaskCreator) TaskService {
	lookup := make(map[models.TaskType]TaskCreator, len(creators))
	for _, creator := range creators {
		lookup[creator.Kind()] = creator
	}
	return &taskService{
		creators:  lookup,
		logger:    logger,
		validator: v,
	}
}

func (s *taskService) Create(ctx context.Context, req *NewTaskRequest) (*models.Task, error) {
	s.logger.Info("Creating task", "course_id", req.CourseID, "type", req.Type, "order", req.Order)

	if errs := s.validator.GetBusinessValidator().ValidateNewTask(req); len(errs) > 0 {
		return nil, NewValidationFailedError(errs)
	}

	creator, err := s.resolve(req.Type)
	if err != nil {
		return nil, err
	}

	task, err := creator.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task created successfully", "task_id", task.ID, "type", task.Type)
	return task, nil
}

func (s *taskService) resolve(kind models.TaskType) (TaskCreator, error) {
	creator, ok := s.creators[kind]
	if !ok {
		return nil, NewValidationFailedError(validator.ValidationErrors{{
			Field:   "type",
			Message: fmt.Sprintf("No task creator registered for task type: %s", kind),
		}})
	}
	return creator, nil
}
