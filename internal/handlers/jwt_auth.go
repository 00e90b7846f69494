package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/auth"
	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/utils"
)

const (
	contextKeyUserEmail = "user_email"
	contextKeyUserRole  = "user_role"
)

// JWTAuthMiddleware authenticates requests with a bearer token issued by
// the login endpoint.
type JWTAuthMiddleware struct {
	tokenManager *auth.TokenManager
	logger       utils.Logger
}

func NewJWTAuthMiddleware(tokenManager *auth.TokenManager, logger utils.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// AuthMiddleware validates the Authorization header and stores the caller's
// identity in the request context. A request that carries no credentials at
// all is forbidden; a request with bad credentials is unauthorized.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "authorization header missing",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := m.tokenManager.ParseToken(tokenParts[1])
		if err != nil {
			m.logger.Info("Rejected bearer token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(contextKeyUserEmail, claims.Email)
		c.Set(contextKeyUserRole, claims.Role)

		c.Next()
	}
}

// RequireRoleMiddleware allows only callers holding one of the given roles
func (m *JWTAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "no role associated with request",
			})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "insufficient permissions",
		})
		c.Abort()
	}
}

// GetUserEmail returns the authenticated caller's email
func GetUserEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(contextKeyUserEmail)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

// GetUserRole returns the authenticated caller's role
func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	v, exists := c.Get(contextKeyUserRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.UserRole)
	return role, ok
}
