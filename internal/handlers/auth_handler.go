package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/services"
	"github.com/alurafake/course-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger, errorBaseURI string) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger, errorBaseURI),
		authService: authService,
	}
}

// Login exchanges email and password for a bearer token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondNotReadable(c, err)
		return
	}

	h.LogRequest(c, "Login attempt", "email", req.Email)

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
