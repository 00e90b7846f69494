package services

import (
	"context"
	"log/slog"

	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/validator"
)

// ===== OPEN TEXT =====

type openTextTaskCreator struct {
	courseTasks CourseTaskService
	logger      *slog.Logger
}

func NewOpenTextTaskCreator(courseTasks CourseTaskService, logger *slog.Logger) TaskCreator {
	return &openTextTaskCreator{courseTasks: courseTasks, logger: logger}
}

func (c *openTextTaskCreator) Kind() models.TaskType {
	return models.TaskOpenText
}

// Create builds an open text task. Options in the payload are ignored,
// matching the lenient parsing of the original API.
func (c *openTextTaskCreator) Create(ctx context.Context, req *NewTaskRequest) (*models.Task, error) {
	task := &models.Task{
		CourseID:  req.CourseID,
		Statement: req.Statement,
		Type:      models.TaskOpenText,
	}

	if err := c.courseTasks.InsertTaskAt(ctx, req.CourseID, task, req.Order); err != nil {
		return nil, err
	}
	return task, nil
}

// ===== SINGLE CHOICE =====

type singleChoiceTaskCreator struct {
	courseTasks CourseTaskService
	logger      *slog.Logger
}

func NewSingleChoiceTaskCreator(courseTasks CourseTaskService, logger *slog.Logger) TaskCreator {
	return &singleChoiceTaskCreator{courseTasks: courseTasks, logger: logger}
}

func (c *singleChoiceTaskCreator) Kind() models.TaskType {
	return models.TaskSingleChoice
}

func (c *singleChoiceTaskCreator) Create(ctx context.Context, req *NewTaskRequest) (*models.Task, error) {
	if len(req.Options) < 2 || len(req.Options) > 5 {
		return nil, NewValidationFailedError(validator.ValidationErrors{{
			Field:   "options",
			Message: "Single Choice requires between 2 and 5 alternatives.",
			Value:   len(req.Options),
			Rule:    "options_count",
		}})
	}

	if countCorrect(req.Options) != 1 {
		return nil, NewInvalidOptionError("Only one correct alternative is allowed for Single Choice.")
	}

	if err := validateOptionSet(req.Statement, req.Options); err != nil {
		return nil, err
	}

	task := buildChoiceTask(req, models.TaskSingleChoice)
	if err := c.courseTasks.InsertTaskAt(ctx, req.CourseID, task, req.Order); err != nil {
		return nil, err
	}
	return task, nil
}

// ===== MULTIPLE CHOICE =====

type multipleChoiceTaskCreator struct {
	courseTasks CourseTaskService
	logger      *slog.Logger
}

func NewMultipleChoiceTaskCreator(courseTasks CourseTaskService, logger *slog.Logger) TaskCreator {
	return &multipleChoiceTaskCreator{courseTasks: courseTasks, logger: logger}
}

func (c *multipleChoiceTaskCreator) Kind() models.TaskType {
	return models.TaskMultipleChoice
}

func (c *multipleChoiceTaskCreator) Create(ctx context.Context, req *NewTaskRequest) (*models.Task, error) {
	if len(req.Options) < 3 || len(req.Options) > 5 {
		return nil, NewValidationFailedError(validator.ValidationErrors{{
			Field:   "options",
			Message: "Multiple Choice requires between 3 and 5 alternatives.",
			Value:   len(req.Options),
			Rule:    "options_count",
		}})
	}

	correct := countCorrect(req.Options)
	incorrect := len(req.Options) - correct
	if correct < 2 || incorrect < 1 {
		return nil, NewInvalidOptionError("Two or more correct alternatives and at least one incorrect alternative are required for Multiple Choice.")
	}

	if err := validateOptionSet(req.Statement, req.Options); err != nil {
		return nil, err
	}

	task := buildChoiceTask(req, models.TaskMultipleChoice)
	if err := c.courseTasks.InsertTaskAt(ctx, req.CourseID, task, req.Order); err != nil {
		return nil, err
	}
	return task, nil
}

// ===== SHARED HELPERS =====

func countCorrect(options []TaskOptionRequest) int {
	count := 0
	for _, opt := range options {
		if opt.IsCorrect != nil && *opt.IsCorrect {
			count++
		}
	}
	return count
}

// validateOptionSet enforces pairwise distinct alternatives that also
// differ from the statement, all compared after normalization
func validateOptionSet(statement string, options []TaskOptionRequest) error {
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized := models.NormalizeStatement(opt.Option)
		if _, dup := seen[normalized]; dup {
			return NewInvalidOptionError("Alternatives must not be equal to each other.")
		}
		seen[normalized] = struct{}{}
	}

	normalizedStatement := models.NormalizeStatement(statement)
	for _, opt := range options {
		if models.NormalizeStatement(opt.Option) == normalizedStatement {
			return NewInvalidOptionError("Alternatives must not be equal to the task statement.")
		}
	}

	return nil
}

func buildChoiceTask(req *NewTaskRequest, kind models.TaskType) *models.Task {
	options := make([]models.TaskOption, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, models.TaskOption{
			OptionText: opt.Option,
			IsCorrect:  opt.IsCorrect != nil && *opt.IsCorrect,
		})
	}

	return &models.Task{
		CourseID:  req.CourseID,
		Statement: req.Statement,
		Type:      kind,
		Options:   options,
	}
}
