package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/auth"
	"github.com/alurafake/course-service/internal/cache"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/services"
	"github.com/alurafake/course-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	courseHandler  *CourseHandler
	taskHandler    *TaskHandler
	healthHandler  *HealthHandler
	authMiddleware *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
	tokenManager *auth.TokenManager,
	logger utils.Logger,
	errorBaseURI string,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger, errorBaseURI),
		userHandler:    NewUserHandler(serviceManager.User(), logger, errorBaseURI),
		courseHandler:  NewCourseHandler(serviceManager.Course(), logger, errorBaseURI),
		taskHandler:    NewTaskHandler(serviceManager.Task(), logger, errorBaseURI),
		healthHandler:  NewHealthHandler(repo, cacheManager, logger),
		authMiddleware: NewJWTAuthMiddleware(tokenManager, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Public endpoints
	router.GET("/health", hm.healthHandler.HealthCheck)
	router.POST("/auth/login", hm.authHandler.Login)
	router.POST("/user/new", hm.userHandler.CreateUser)

	// Authenticated endpoints
	instructorOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleInstructor)

	users := router.Group("/user")
	users.Use(hm.authMiddleware.AuthMiddleware())
	{
		users.GET("/all", instructorOnly, hm.userHandler.ListUsers)
	}

	courses := router.Group("/course")
	courses.Use(hm.authMiddleware.AuthMiddleware())
	{
		courses.POST("/new", instructorOnly, hm.courseHandler.CreateCourse)
		courses.GET("/all", hm.courseHandler.ListCourses)
		courses.POST("/:id/publish", instructorOnly, hm.courseHandler.PublishCourse)
	}

	tasks := router.Group("/task")
	tasks.Use(hm.authMiddleware.AuthMiddleware())
	{
		tasks.POST("/new", instructorOnly, hm.taskHandler.CreateTask)
	}
}
