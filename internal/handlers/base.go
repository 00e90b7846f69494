package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alurafake/course-service/internal/services"
	"github.com/alurafake/course-service/internal/utils"
)

// BaseHandler provides the shared logging and error translation used by
// every endpoint handler.
type BaseHandler struct {
	logger       utils.Logger
	errorBaseURI string
}

func NewBaseHandler(logger utils.Logger, errorBaseURI string) BaseHandler {
	return BaseHandler{
		logger:       logger,
		errorBaseURI: errorBaseURI,
	}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c, h.logger).Error(msg, args...)
}

// RespondServiceError translates a service failure into the problem body
// this API uses everywhere.
func (h *BaseHandler) RespondServiceError(c *gin.Context, err error) {
	instance := c.Request.URL.Path

	svcErr, ok := services.AsServiceError(err)
	if !ok {
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(
			http.StatusInternalServerError, h.errorBaseURI, ProblemUnexpectedError,
			ProblemUnexpectedError.Message, instance, ProblemUnexpectedError.Message, nil))
		return
	}

	switch svcErr.Kind {
	case services.KindValidationFailed:
		fields := make([]ErrorField, 0, len(svcErr.Fields))
		for _, fe := range svcErr.Fields {
			fields = append(fields, ErrorField{Name: fe.Field, UserMessage: fe.Message})
		}
		c.JSON(http.StatusBadRequest, NewErrorResponse(
			http.StatusBadRequest, h.errorBaseURI, ProblemInvalidFields,
			ProblemInvalidFields.Message, instance, ProblemInvalidFields.Message, fields))

	case services.KindInvalidOption:
		c.JSON(http.StatusBadRequest, NewErrorResponse(
			http.StatusBadRequest, h.errorBaseURI, ProblemInvalidData,
			svcErr.Message, instance, ProblemInvalidData.Message, nil))

	case services.KindBusinessRule:
		// userMessage repeats the detail so clients can show it directly
		c.JSON(http.StatusBadRequest, NewErrorResponse(
			http.StatusBadRequest, h.errorBaseURI, ProblemInvalidOperation,
			svcErr.Message, instance, svcErr.Message, nil))

	case services.KindInvalidCourseTaskOperation:
		c.JSON(http.StatusBadRequest, NewErrorResponse(
			http.StatusBadRequest, h.errorBaseURI, ProblemInvalidOperation,
			svcErr.Message, instance, ProblemInvalidOperation.Message, nil))

	case services.KindResourceNotFound:
		c.JSON(http.StatusNotFound, NewErrorResponse(
			http.StatusNotFound, h.errorBaseURI, ProblemResourceNotFound,
			svcErr.Message, instance, ProblemResourceNotFound.Message, nil))

	case services.KindAuthenticationFailed:
		c.JSON(http.StatusUnauthorized, NewErrorResponse(
			http.StatusUnauthorized, h.errorBaseURI, ProblemInvalidCredentials,
			svcErr.Message, instance, ProblemInvalidCredentials.Message, nil))

	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, NewErrorResponse(
			http.StatusInternalServerError, h.errorBaseURI, ProblemUnexpectedError,
			ProblemUnexpectedError.Message, instance, ProblemUnexpectedError.Message, nil))
	}
}

// RespondNotReadable handles request bodies that fail to bind as JSON
func (h *BaseHandler) RespondNotReadable(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, NewErrorResponse(
		http.StatusBadRequest, h.errorBaseURI, ProblemMessageNotReadable,
		err.Error(), c.Request.URL.Path, ProblemMessageNotReadable.Message, nil))
}

// parseIDParam reads a positive numeric path parameter
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(
			http.StatusBadRequest, h.errorBaseURI, ProblemInvalidData,
			"Invalid identifier: "+raw, c.Request.URL.Path, ProblemInvalidData.Message, nil))
		return 0, false
	}
	return uint(id), true
}
