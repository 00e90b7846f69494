package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/cache"
	"github.com/alurafake/course-service/internal/repositories"
	"github.com/alurafake/course-service/internal/utils"
)

type HealthHandler struct {
	repo         repositories.Repository
	cacheManager *cache.CacheManager
	logger       utils.Logger
}

func NewHealthHandler(repo repositories.Repository, cacheManager *cache.CacheManager, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		repo:         repo,
		cacheManager: cacheManager,
		logger:       logger,
	}
}

// HealthCheck reports service, database and cache status
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	checks := gin.H{}
	status := http.StatusOK
	overall := "healthy"

	if err := h.repo.Ping(c.Request.Context()); err != nil {
		h.logger.Error("Database health check failed", "error", err)
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	} else {
		checks["database"] = "up"
	}

	if h.cacheManager != nil {
		if err := h.cacheManager.HealthCheck(c.Request.Context()); err != nil {
			// Cache is optional, a miss only degrades performance
			checks["cache"] = "down"
		} else {
			checks["cache"] = "up"
		}
	} else {
		checks["cache"] = "disabled"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"service":   "course-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}
