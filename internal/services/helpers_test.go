package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/repositories/postgres"
	"github.com/alurafake/course-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// setupTestRepo opens an isolated in-memory database with the full schema
func setupTestRepo(t *testing.T) (repositories.Repository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	// One connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Course{}, &models.Task{}, &models.TaskOption{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	t.Cleanup(func() { sqlDB.Close() })

	return repo, db
}

func createTestInstructor(t *testing.T, repo repositories.Repository, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Paulo",
		Email:    email,
		Role:     models.RoleInstructor,
		Password: "$2a$10$irrelevant.for.these.tests",
	}
	if err := repo.User().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("failed to create test instructor: %v", err)
	}
	return user
}

func createTestCourse(t *testing.T, repo repositories.Repository, instructorID uint, status models.CourseStatus) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        "Java",
		Description:  "Aprenda Java com Alura",
		InstructorID: instructorID,
		Status:       status,
	}
	if err := repo.Course().Create(context.Background(), nil, course); err != nil {
		t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

func createTestTask(t *testing.T, repo repositories.Repository, courseID uint, statement string, order int, kind models.TaskType) *models.Task {
	t.Helper()

	task := &models.Task{
		CourseID:  courseID,
		Statement: statement,
		Order:     order,
		Type:      kind,
	}
	if err := repo.Task().Create(context.Background(), nil, task); err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

func testValidator() *validator.Validator {
	return validator.New()
}

func boolPtr(b bool) *bool {
	return &b
}

// expectKind asserts that err is a ServiceError of the given kind and
// returns it for message checks
func expectKind(t *testing.T, err error, kind ErrorKind) *ServiceError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	svcErr, ok := AsServiceError(err)
	if !ok {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
	if svcErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%s)", kind, svcErr.Kind, svcErr.Message)
	}
	return svcErr
}
