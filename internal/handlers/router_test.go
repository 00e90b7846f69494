package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alurafake/course-service/internal/auth"
	"github.com/alurafake/course-service/internal/cache"
	"github.com/alurafake/course-service/internal/events"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/repositories/postgres"
	"github.com/alurafake/course-service/internal/services"
	"github.com/alurafake/course-service/internal/validator"
)

const testErrorBaseURI = "https://api.seusite.com/erros"

type testServer struct {
	router *gin.Engine
	repo   repositories.Repository
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &models.Course{}, &models.Task{}, &models.TaskOption{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	testLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	tokenManager := auth.NewTokenManager("test-secret", time.Hour)
	hasher := auth.NewPasswordHasher()

	serviceManager := services.NewServiceManager(services.ServiceManagerDeps{
		DB:             db,
		Repo:           repo,
		Logger:         testLogger,
		Validator:      validator.New(),
		TokenManager:   tokenManager,
		Hasher:         hasher,
		EventPublisher: events.NewMockEventPublisher(testLogger),
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize services: %v", err)
	}

	// Default users matching the development seed
	for _, u := range []struct {
		name, email, password string
		role                  models.UserRole
	}{
		{"Caio", "caio@alura.com.br", "senha123", models.RoleStudent},
		{"Paulo", "paulo@alura.com.br", "senha321", models.RoleInstructor},
	} {
		hashed, err := hasher.Hash(u.password)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		user := &models.User{Name: u.name, Email: u.email, Role: u.role, Password: hashed}
		if err := repo.User().Create(context.Background(), nil, user); err != nil {
			t.Fatalf("failed to seed user %s: %v", u.email, err)
		}
	}

	handlerManager := NewHandlerManager(serviceManager, repo, cache.NewCacheManager(nil), tokenManager, testLogger, testErrorBaseURI)

	router := gin.New()
	handlerManager.SetupRoutes(router)

	return &testServer{router: router, repo: repo}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, req)
	return recorder
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login for %s failed with status %d: %s", email, rec.Code, rec.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.JWTToken == "" {
		t.Fatal("expected a jwtToken")
	}
	return resp.JWTToken
}

func TestLoginEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		ts.login(t, "paulo@alura.com.br", "senha321")
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/auth/login", "", gin.H{
			"email":    "paulo@alura.com.br",
			"password": "errada",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if body.Detail != "Invalid email or password." {
			t.Errorf("unexpected detail %q", body.Detail)
		}
		if strings.Contains(rec.Body.String(), "jwtToken") {
			t.Error("error response must not carry a token")
		}
	})
}

func TestAuthGating(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("missing bearer is forbidden", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/task/new", "", gin.H{})
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("invalid token is unauthorized", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/task/new", "garbage", gin.H{})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("student cannot reach instructor endpoints", func(t *testing.T) {
		token := ts.login(t, "caio@alura.com.br", "senha123")

		for _, route := range []struct{ method, path string }{
			{http.MethodPost, "/task/new"},
			{http.MethodPost, "/course/new"},
			{http.MethodPost, "/course/1/publish"},
			{http.MethodGet, "/user/all"},
		} {
			rec := ts.request(t, route.method, route.path, token, gin.H{})
			if rec.Code != http.StatusForbidden {
				t.Errorf("%s %s: expected 403, got %d", route.method, route.path, rec.Code)
			}
		}
	})

	t.Run("any authenticated user can list courses", func(t *testing.T) {
		token := ts.login(t, "caio@alura.com.br", "senha123")
		rec := ts.request(t, http.MethodGet, "/course/all", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("health endpoint is public", func(t *testing.T) {
		rec := ts.request(t, http.MethodGet, "/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestUserEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("registers a user with a location header", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/user/new", "", gin.H{
			"name":     "Maria",
			"email":    "maria@alura.com.br",
			"role":     "STUDENT",
			"password": "senha9",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if location := rec.Header().Get("Location"); !strings.HasPrefix(location, "/user/new/") {
			t.Errorf("unexpected Location header %q", location)
		}

		var item models.UserListItem
		if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if item.Email != "maria@alura.com.br" || item.Role != models.RoleStudent {
			t.Errorf("unexpected body %+v", item)
		}
		if strings.Contains(rec.Body.String(), "senha9") {
			t.Error("response must not leak the password")
		}
	})

	t.Run("reports a duplicate email as an invalid operation", func(t *testing.T) {
		payload := gin.H{
			"name":     "Paulo",
			"email":    "paulo@alura.com.br",
			"role":     "INSTRUCTOR",
			"password": "senha1",
		}
		rec := ts.request(t, http.MethodPost, "/user/new", "", payload)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if body.Type != testErrorBaseURI+"/invalid-operation" {
			t.Errorf("unexpected type %q", body.Type)
		}
	})

	t.Run("reports validation failures with fields", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/user/new", "", gin.H{
			"name":     "Jo",
			"email":    "not-an-email",
			"role":     "STUDENT",
			"password": "short",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if body.Type != testErrorBaseURI+"/invalid-fields" {
			t.Errorf("unexpected type %q", body.Type)
		}
		if len(body.Fields) == 0 {
			t.Error("expected field errors")
		}
	})

	t.Run("instructors can list users", func(t *testing.T) {
		token := ts.login(t, "paulo@alura.com.br", "senha321")
		rec := ts.request(t, http.MethodGet, "/user/all", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var items []models.UserListItem
		if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(items) < 2 {
			t.Errorf("expected at least the seeded users, got %d", len(items))
		}
	})
}

func TestCourseAndTaskFlow(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t, "paulo@alura.com.br", "senha321")

	rec := ts.request(t, http.MethodPost, "/course/new", token, gin.H{
		"title":           "Java",
		"description":     "Aprenda Java com Alura",
		"emailInstructor": "paulo@alura.com.br",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("course creation failed with %d: %s", rec.Code, rec.Body.String())
	}

	courses, err := ts.repo.Course().List(context.Background(), nil, repositories.CourseFilters{})
	if err != nil || len(courses) != 1 {
		t.Fatalf("expected one course, got %d (err %v)", len(courses), err)
	}
	courseID := courses[0].ID

	publishPath := fmt.Sprintf("/course/%d/publish", courseID)

	t.Run("publish requires content", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, publishPath, token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("task creation returns 200", func(t *testing.T) {
		for _, task := range []gin.H{
			{"courseId": courseID, "statement": "Explique o que aprendeu", "order": 1, "type": "OPEN_TEXT"},
			{"courseId": courseID, "statement": "Qual a capital da França?", "order": 2, "type": "SINGLE_CHOICE", "options": []gin.H{
				{"option": "Paris", "isCorrect": true},
				{"option": "Londres", "isCorrect": false},
				{"option": "Roma", "isCorrect": false},
			}},
			{"courseId": courseID, "statement": "Quais destas são linguagens?", "order": 3, "type": "MULTIPLE_CHOICE", "options": []gin.H{
				{"option": "Java", "isCorrect": true},
				{"option": "Golang", "isCorrect": true},
				{"option": "Banana", "isCorrect": false},
			}},
		} {
			rec := ts.request(t, http.MethodPost, "/task/new", token, task)
			if rec.Code != http.StatusOK {
				t.Fatalf("task creation failed with %d: %s", rec.Code, rec.Body.String())
			}
		}
	})

	t.Run("invalid single choice is rejected with detail", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/task/new", token, gin.H{
			"courseId":  courseID,
			"statement": "Qual a capital da Itália?",
			"order":     4,
			"type":      "SINGLE_CHOICE",
			"options": []gin.H{
				{"option": "Roma", "isCorrect": true},
				{"option": "Paris", "isCorrect": true},
			},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if body.Detail != "Only one correct alternative is allowed for Single Choice." {
			t.Errorf("unexpected detail %q", body.Detail)
		}
	})

	t.Run("publish succeeds with full coverage", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, publishPath, token, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		course, err := ts.repo.Course().GetByID(context.Background(), nil, courseID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if course.Status != models.StatusPublished || course.PublishedAt == nil {
			t.Errorf("expected a published course, got %+v", course)
		}
	})

	t.Run("missing course is a 404 problem", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/course/999/publish", token, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}

		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if body.Type != testErrorBaseURI+"/resource-not-found" {
			t.Errorf("unexpected type %q", body.Type)
		}
		if body.Detail != "Course not found with ID: 999" {
			t.Errorf("unexpected detail %q", body.Detail)
		}
	})

	t.Run("unreadable body is a 400 problem", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/task/new", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		ts.router.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if body.Type != testErrorBaseURI+"/message-not-readable" {
			t.Errorf("unexpected type %q", body.Type)
		}
	})
}
