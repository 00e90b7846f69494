package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/services"
	"github.com/alurafake/course-service/internal/utils"
)

type TaskHandler struct {
	BaseHandler
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService, logger utils.Logger, errorBaseURI string) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger, errorBaseURI),
		taskService: taskService,
	}
}

// CreateTask adds a task to a course. The body is a discriminated union:
// the type field selects the variant and the choice variants also carry
// options.
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body services.NewTaskRequest true "Task data"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /task/new [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req services.NewTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondNotReadable(c, err)
		return
	}

	h.LogRequest(c, "Creating task", "course_id", req.CourseID, "type", req.Type, "order", req.Order)

	if _, err := h.taskService.Create(c.Request.Context(), &req); err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
