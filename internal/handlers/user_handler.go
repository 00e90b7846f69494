package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/models"
	"github.com/alurafake/course-service/internal/services"
	"github.com/alurafake/course-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger, errorBaseURI string) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger, errorBaseURI),
		userService: userService,
	}
}

// CreateUser registers a new user
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body services.NewUserRequest true "User data"
// @Success 201 {object} models.UserListItem
// @Failure 400 {object} ErrorResponse
// @Router /user/new [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.NewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondNotReadable(c, err)
		return
	}

	h.LogRequest(c, "Creating user", "email", req.Email)

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/user/new/%d", user.ID))
	c.JSON(http.StatusCreated, models.NewUserListItem(user))
}

// ListUsers lists every registered user
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.UserListItem
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /user/all [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	items, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
