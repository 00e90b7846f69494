package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/services"
	"github.com/alurafake/course-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger, errorBaseURI string) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger, errorBaseURI),
		courseService: courseService,
	}
}

// CreateCourse creates a course in BUILDING status
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body services.NewCourseRequest true "Course data"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /course/new [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.NewCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondNotReadable(c, err)
		return
	}

	h.LogRequest(c, "Creating course", "title", req.Title)

	if _, err := h.courseService.Create(c.Request.Context(), &req); err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// ListCourses lists every course
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.CourseListItem
// @Failure 401 {object} ErrorResponse
// @Router /course/all [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	items, err := h.courseService.List(c.Request.Context())
	if err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// PublishCourse publishes a complete BUILDING course
// @Summary Publish a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 201
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /course/{id}/publish [post]
func (h *CourseHandler) PublishCourse(c *gin.Context) {
	courseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Publishing course", "course_id", courseID)

	if _, err := h.courseService.Publish(c.Request.Context(), courseID); err != nil {
		h.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}
