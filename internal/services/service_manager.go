package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/alurafake/course-service/internal/auth"
	"github.com/alurafake/course-service/internal/events"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/validator"
)

// ServiceManagerDeps holds everything the services need to run
type ServiceManagerDeps struct {
	DB             *gorm.DB
	Repo           repositories.Repository
	Logger         *slog.Logger
	Validator      *validator.Validator
	TokenManager   *auth.TokenManager
	Hasher         *auth.PasswordHasher
	EventPublisher events.EventPublisher
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps ServiceManagerDeps

	// Service instances
	userService       UserService
	authService       AuthService
	courseService     CourseService
	courseTaskService CourseTaskService
	taskService       TaskService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	return &serviceManager{deps: deps}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.deps.Logger.Info("Initializing service manager")

	sm.userService = NewUserService(sm.deps.Repo, sm.deps.DB, sm.deps.Logger, sm.deps.Validator, sm.deps.Hasher, sm.deps.EventPublisher)
	sm.deps.Logger.Info("User service initialized")

	sm.authService = NewAuthService(sm.deps.Repo, sm.deps.Logger, sm.deps.Validator, sm.deps.TokenManager, sm.deps.Hasher)
	sm.deps.Logger.Info("Auth service initialized")

	sm.courseService = NewCourseService(sm.deps.Repo, sm.deps.DB, sm.deps.Logger, sm.deps.Validator, sm.deps.EventPublisher)
	sm.deps.Logger.Info("Course service initialized")

	sm.courseTaskService = NewCourseTaskService(sm.deps.Repo, sm.deps.DB, sm.deps.Logger)
	sm.deps.Logger.Info("CourseTask service initialized")

	sm.taskService = NewTaskService(sm.deps.Logger, sm.deps.Validator,
		NewOpenTextTaskCreator(sm.courseTaskService, sm.deps.Logger),
		NewSingleChoiceTaskCreator(sm.courseTaskService, sm.deps.Logger),
		NewMultipleChoiceTaskCreator(sm.courseTaskService, sm.deps.Logger),
	)
	sm.deps.Logger.Info("Task service initialized")

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseService
}

func (sm *serviceManager) CourseTask() CourseTaskService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseTaskService
}

func (sm *serviceManager) Task() TaskService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.taskService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.EventPublisher != nil {
		if err := sm.deps.EventPublisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down")

	return nil
}
