package services

import (
	"context"

	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type NewUserRequest = validator.NewUserRequest
type NewCourseRequest = validator.NewCourseRequest
type NewTaskRequest = validator.NewTaskRequest
type TaskOptionRequest = validator.TaskOptionRequest
type LoginRequest = validator.LoginRequest

// ===== SERVICE INTERFACES =====

type UserService interface {
	Create(ctx context.Context, req *NewUserRequest) (*models.User, error)
	List(ctx context.Context) ([]models.UserListItem, error)
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error)
}

type CourseService interface {
	Create(ctx context.Context, req *NewCourseRequest) (*models.Course, error)
	List(ctx context.Context) ([]models.CourseListItem, error)
	Publish(ctx context.Context, courseID uint) (*models.Course, error)
}

// CourseTaskService keeps a course's task orders dense and 1-based
type CourseTaskService interface {
	InsertTaskAt(ctx context.Context, courseID uint, task *models.Task, position int) error
	RemoveTask(ctx context.Context, courseID, taskID uint) error
}

// TaskService dispatches task creation to the creator registered for
// the requested task type
type TaskService interface {
	Create(ctx context.Context, req *NewTaskRequest) (*models.Task, error)
}

// TaskCreator builds and persists one task variant
type TaskCreator interface {
	Kind() models.TaskType
	Create(ctx context.Context, req *NewTaskRequest) (*models.Task, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	User() UserService
	Auth() AuthService
	Course() CourseService
	CourseTask() CourseTaskService
	Task() TaskService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
