package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/alurafake/course-service/internal/models"
)

// UserRepository interface for user-specific operations
type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)

	// Query operations
	List(ctx context.Context, tx *gorm.DB) ([]*models.User, error)
	GetInstructorByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

// CourseRepository interface for course-specific operations
type CourseRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	GetByIDWithTasks(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) // Tasks ordered by task_order, locked inside transactions
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error

	// Query operations
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.Course, error)
	GetByInstructor(ctx context.Context, tx *gorm.DB, instructorID uint) ([]*models.Course, error)
}

// TaskRepository interface for task-specific operations
type TaskRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, task *models.Task) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Task, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// Bulk operations
	UpdateBatch(ctx context.Context, tx *gorm.DB, tasks []*models.Task) error

	// Query operations
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Task, error)
}

// CourseFilters narrows course list queries
type CourseFilters struct {
	Status       *models.CourseStatus
	InstructorID *uint
}
