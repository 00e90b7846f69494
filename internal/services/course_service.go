package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/alurafake/course-service/internal/events"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/validator"
)

type courseService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, eventPublisher events.EventPublisher) CourseService {
	return &courseService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: eventPublisher,
	}
}

func (s *courseService) Create(ctx context.Context, req *NewCourseRequest) (*models.Course, error) {
	s.logger.Info("Creating course", "title", req.Title, "instructor_email", req.EmailInstructor)

	if errs := s.validator.GetBusinessValidator().ValidateNewCourse(req); len(errs) > 0 {
		return nil, NewValidationFailedError(errs)
	}

	instructor, err := s.repo.User().GetInstructorByEmail(ctx, nil, req.EmailInstructor)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewResourceNotFoundError("Instructor not found with email: %s", req.EmailInstructor)
		}
		return nil, fmt.Errorf("failed to look up instructor: %w", err)
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructor.ID,
		Status:       models.StatusBuilding,
	}

	if err := s.repo.Course().Create(ctx, nil, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created successfully", "course_id", course.ID)
	return course, nil
}

func (s *courseService) List(ctx context.Context) ([]models.CourseListItem, error) {
	courses, err := s.repo.Course().List(ctx, nil, repositories.CourseFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	items := make([]models.CourseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, models.NewCourseListItem(course))
	}
	return items, nil
}

// Publish moves a course from BUILDING to PUBLISHED once its content is
// complete: at least one task of every type and a dense 1..n ordering.
func (s *courseService) Publish(ctx context.Context, courseID uint) (*models.Course, error) {
	var published *models.Course

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		course, err := txRepo.Course().GetByIDWithTasks(ctx, nil, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return NewResourceNotFoundError("Course not found with ID: %d", courseID)
			}
			return fmt.Errorf("failed to load course: %w", err)
		}

		if !course.IsBuilding() {
			return NewBusinessRuleError(
				"Course '%s' cannot be published because its status is '%s'. Only courses in 'BUILDING' are allowed.",
				course.Title, course.Status)
		}

		if err := validateContentCoverage(course); err != nil {
			return err
		}
		if err := validateOrderContinuity(course); err != nil {
			return err
		}

		now := time.Now()
		course.Status = models.StatusPublished
		course.PublishedAt = &now

		if err := txRepo.Course().Update(ctx, nil, course); err != nil {
			return fmt.Errorf("failed to publish course: %w", err)
		}

		published = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Course published", "course_id", published.ID, "tasks", len(published.Tasks))

	event := events.NewEvent(events.EventCoursePublished, events.CoursePublishedEvent{
		CourseID:     published.ID,
		Title:        published.Title,
		InstructorID: published.InstructorID,
		PublishedAt:  *published.PublishedAt,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicCourses, event); err != nil {
		// Publication already committed, event loss is logged only
		s.logger.Error("Failed to publish course event", "course_id", published.ID, "error", err)
	}

	return published, nil
}

// validateContentCoverage requires at least one task of every type
func validateContentCoverage(course *models.Course) error {
	if len(course.Tasks) == 0 {
		return NewBusinessRuleError("The course must contain activities to be published.")
	}

	present := make(map[models.TaskType]bool, len(models.AllTaskTypes))
	for i := range course.Tasks {
		present[course.Tasks[i].Type] = true
	}

	var missing []string
	for _, kind := range models.AllTaskTypes {
		if !present[kind] {
			missing = append(missing, string(kind))
		}
	}
	if len(missing) > 0 {
		return NewBusinessRuleError(
			"To publish the course, at least one activity of each of the following types is required: %s",
			strings.Join(missing, ", "))
	}

	return nil
}

// validateOrderContinuity requires task orders to be exactly 1..n
func validateOrderContinuity(course *models.Course) error {
	tasks := make([]models.Task, len(course.Tasks))
	copy(tasks, course.Tasks)
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })

	for i := range tasks {
		if tasks[i].Order != i+1 {
			return NewBusinessRuleError(
				"The order of the course activities is not continuous. Found order %d at position %d, expected %d.",
				tasks[i].Order, i+1, i+1)
		}
	}

	return nil
}
