package validator

import (
	"github.com/alurafake/course-service/internal/models"
)

// NewUserRequest represents the request structure for registering users
type NewUserRequest struct {
	Name     string          `json:"name" validate:"required,min=3,max=50"`
	Email    string          `json:"email" validate:"required,email"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
	Password string          `json:"password" validate:"required,password_length"`
}

// NewCourseRequest represents the request structure for creating courses
type NewCourseRequest struct {
	Title           string `json:"title" validate:"required,notblank"`
	Description     string `json:"description" validate:"required,notblank"`
	EmailInstructor string `json:"emailInstructor" validate:"required,email"`
}

// LoginRequest carries the credentials for token issuance
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TaskOptionRequest is one alternative of a choice task
type TaskOptionRequest struct {
	Option    string `json:"option" validate:"required,min=4,max=80"`
	IsCorrect *bool  `json:"isCorrect" validate:"required"`
}

// NewTaskRequest represents the request structure for creating tasks.
// The type field selects the creator; options are only meaningful for
// choice tasks.
type NewTaskRequest struct {
	CourseID  uint                `json:"courseId" validate:"required"`
	Statement string              `json:"statement" validate:"required,min=4,max=255"`
	Order     int                 `json:"order" validate:"required,min=1"`
	Type      models.TaskType     `json:"type" validate:"required,task_type"`
	Options   []TaskOptionRequest `json:"options" validate:"omitempty,dive"`
}
