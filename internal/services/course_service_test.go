package services

import (
	"context"
	"testing"

	"github.com/alurafake/course-service/internal/events"
	"github.com/alurafake/course-service/internal/models"
)

func TestCourseCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a building course for the instructor", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)
		createTestInstructor(t, repo, "paulo@alura.com.br")

		course, err := svc.Create(ctx, &NewCourseRequest{
			Title:           "Java",
			Description:     "Aprenda Java com Alura",
			EmailInstructor: "paulo@alura.com.br",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if course.Status != models.StatusBuilding {
			t.Errorf("expected BUILDING status, got %s", course.Status)
		}
		if course.PublishedAt != nil {
			t.Error("expected publishedAt to be unset")
		}
	})

	t.Run("reports a missing instructor", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)

		_, err := svc.Create(ctx, &NewCourseRequest{
			Title:           "Java",
			Description:     "Aprenda Java com Alura",
			EmailInstructor: "ninguem@alura.com.br",
		})
		svcErr := expectKind(t, err, KindResourceNotFound)
		want := "Instructor not found with email: ninguem@alura.com.br"
		if svcErr.Message != want {
			t.Errorf("expected %q, got %q", want, svcErr.Message)
		}
	})

	t.Run("does not accept a student as instructor", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)

		student := &models.User{
			Name:     "Caio",
			Email:    "caio@alura.com.br",
			Role:     models.RoleStudent,
			Password: "irrelevant",
		}
		if err := repo.User().Create(ctx, nil, student); err != nil {
			t.Fatalf("failed to create student: %v", err)
		}

		_, err := svc.Create(ctx, &NewCourseRequest{
			Title:           "Java",
			Description:     "Aprenda Java com Alura",
			EmailInstructor: "caio@alura.com.br",
		})
		expectKind(t, err, KindResourceNotFound)
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)

		_, err := svc.Create(ctx, &NewCourseRequest{
			Title:           "   ",
			Description:     "Aprenda Java com Alura",
			EmailInstructor: "paulo@alura.com.br",
		})
		svcErr := expectKind(t, err, KindValidationFailed)
		if len(svcErr.Fields) == 0 {
			t.Error("expected field errors")
		}
	})
}

func TestCoursePublish(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a complete building course", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)
		instructor := createTestInstructor(t, repo, "paulo@alura.com.br")
		course := createTestCourse(t, repo, instructor.ID, models.StatusBuilding)
		createTestTask(t, repo, course.ID, "Explique o que aprendeu", 1, models.TaskOpenText)
		createTestTask(t, repo, course.ID, "Qual a capital da França?", 2, models.TaskSingleChoice)
		createTestTask(t, repo, course.ID, "Quais destas são linguagens?", 3, models.TaskMultipleChoice)

		published, err := svc.Publish(ctx, course.ID)
		if err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
		if published.Status != models.StatusPublished {
			t.Errorf("expected PUBLISHED status, got %s", published.Status)
		}
		if published.PublishedAt == nil {
			t.Error("expected publishedAt to be set")
		}

		published2, err := repo.Course().GetByID(ctx, nil, course.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if published2.Status != models.StatusPublished {
			t.Errorf("expected persisted PUBLISHED status, got %s", published2.Status)
		}

		recorded := publisher.GetPublishedEvents()
		if len(recorded) != 1 {
			t.Fatalf("expected 1 event, got %d", len(recorded))
		}
		if recorded[0].Type != events.EventCoursePublished {
			t.Errorf("expected %s event, got %s", events.EventCoursePublished, recorded[0].Type)
		}
	})

	t.Run("rejects an empty course", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)
		instructor := createTestInstructor(t, repo, "paulo@alura.com.br")
		course := createTestCourse(t, repo, instructor.ID, models.StatusBuilding)

		_, err := svc.Publish(ctx, course.ID)
		svcErr := expectKind(t, err, KindBusinessRule)
		if svcErr.Message != "The course must contain activities to be published." {
			t.Errorf("unexpected message %q", svcErr.Message)
		}
	})

	t.Run("enumerates the missing task types", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)
		instructor := createTestInstructor(t, repo, "paulo@alura.com.br")
		course := createTestCourse(t, repo, instructor.ID, models.StatusBuilding)
		createTestTask(t, repo, course.ID, "Explique o que aprendeu", 1, models.TaskOpenText)

		_, err := svc.Publish(ctx, course.ID)
		svcErr := expectKind(t, err, KindBusinessRule)
		want := "To publish the course, at least one activity of each of the following types is required: SINGLE_CHOICE, MULTIPLE_CHOICE"
		if svcErr.Message != want {
			t.Errorf("expected %q, got %q", want, svcErr.Message)
		}
	})

	t.Run("rejects a non continuous ordering", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)
		instructor := createTestInstructor(t, repo, "paulo@alura.com.br")
		course := createTestCourse(t, repo, instructor.ID, models.StatusBuilding)
		createTestTask(t, repo, course.ID, "Explique o que aprendeu", 1, models.TaskOpenText)
		createTestTask(t, repo, course.ID, "Qual a capital da França?", 3, models.TaskSingleChoice)
		createTestTask(t, repo, course.ID, "Quais destas são linguagens?", 4, models.TaskMultipleChoice)

		_, err := svc.Publish(ctx, course.ID)
		svcErr := expectKind(t, err, KindBusinessRule)
		want := "The order of the course activities is not continuous. Found order 3 at position 2, expected 2."
		if svcErr.Message != want {
			t.Errorf("expected %q, got %q", want, svcErr.Message)
		}
	})

	t.Run("rejects an already published course", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)
		instructor := createTestInstructor(t, repo, "paulo@alura.com.br")
		course := createTestCourse(t, repo, instructor.ID, models.StatusPublished)

		_, err := svc.Publish(ctx, course.ID)
		svcErr := expectKind(t, err, KindBusinessRule)
		want := "Course 'Java' cannot be published because its status is 'PUBLISHED'. Only courses in 'BUILDING' are allowed."
		if svcErr.Message != want {
			t.Errorf("expected %q, got %q", want, svcErr.Message)
		}
	})

	t.Run("reports a missing course", func(t *testing.T) {
		repo, db := setupTestRepo(t)
		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)

		_, err := svc.Publish(ctx, 42)
		expectKind(t, err, KindResourceNotFound)
	})
}

func TestCourseList(t *testing.T) {
	ctx := context.Background()

	repo, db := setupTestRepo(t)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewCourseService(repo, db, testLogger(), testValidator(), publisher)
	instructor := createTestInstructor(t, repo, "paulo@alura.com.br")
	createTestCourse(t, repo, instructor.ID, models.StatusBuilding)
	createTestCourse(t, repo, instructor.ID, models.StatusPublished)

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(items))
	}
	for _, item := range items {
		if item.Title != "Java" {
			t.Errorf("unexpected title %q", item.Title)
		}
	}
}
