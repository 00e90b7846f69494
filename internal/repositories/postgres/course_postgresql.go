package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/alurafake/course-service/internal/cache"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (c *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

// Create creates a new course and invalidates list caches
func (c *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, c.cacheManager.Course, "list:*")

	return nil
}

// GetByID retrieves a course by ID without its tasks
func (c *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := c.getDB(tx)
	var course models.Course
	if err := db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

// GetByIDWithTasks retrieves a course with its tasks ordered by task_order.
// On postgres the course row is locked for the read-modify-write flows.
func (c *CoursePostgreSQL) GetByIDWithTasks(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := c.getDB(tx)
	var course models.Course
	query := LockForUpdate(db.WithContext(ctx)).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_order ASC")
		})
	if err := query.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course with tasks: %w", err)
	}
	return &course, nil
}

// Update persists course changes and invalidates its caches
func (c *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if err := c.cacheManager.InvalidateCourse(ctx, course.ID); err != nil {
		slog.WarnContext(ctx, "Cache invalidation failed", "course_id", course.ID, "error", err)
	}

	return nil
}

// List returns courses matching the filters, newest last, with caching
// for the unfiltered listing
func (c *CoursePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, error) {
	db := c.getDB(tx)

	fetch := func() ([]*models.Course, error) {
		var courses []*models.Course
		query := c.helpers.ApplyCourseFilters(db.WithContext(ctx).Model(&models.Course{}), filters)
		if err := query.Order("created_at ASC").Find(&courses).Error; err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		return courses, nil
	}

	// Only the unfiltered list is hot enough to cache
	if filters.Status != nil || filters.InstructorID != nil || tx != nil {
		return fetch()
	}

	var courses []*models.Course
	err := c.cacheManager.Course.CacheOrExecute(ctx, "list:all", &courses, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByInstructor returns all courses owned by the instructor
func (c *CoursePostgreSQL) GetByInstructor(ctx context.Context, tx *gorm.DB, instructorID uint) ([]*models.Course, error) {
	return c.List(ctx, tx, repositories.CourseFilters{InstructorID: &instructorID})
}
