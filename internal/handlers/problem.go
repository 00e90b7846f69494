package handlers

import (
	"time"
)

// ProblemType describes one category of API failure. The path is appended to
// the configured error base URI to build the problem type URI.
type ProblemType struct {
	Path    string
	Title   string
	Message string
}

var (
	ProblemInvalidFields = ProblemType{
		Path:    "/invalid-fields",
		Title:   "Invalid fields",
		Message: "One or more fields are invalid. Please fill them out correctly and try again.",
	}
	ProblemInvalidData = ProblemType{
		Path:    "/invalid-data",
		Title:   "Invalid data",
		Message: "The provided data is invalid. Please check and try again.",
	}
	ProblemResourceNotFound = ProblemType{
		Path:    "/resource-not-found",
		Title:   "Resource not found",
		Message: "The requested resource was not found.",
	}
	ProblemInvalidOperation = ProblemType{
		Path:    "/invalid-operation",
		Title:   "Invalid operation",
		Message: "The requested operation is not allowed.",
	}
	ProblemUnexpectedError = ProblemType{
		Path:    "/unexpected-error",
		Title:   "Unexpected error",
		Message: "An unexpected error occurred. Please try again later.",
	}
	ProblemMessageNotReadable = ProblemType{
		Path:    "/message-not-readable",
		Title:   "Unreadable body",
		Message: "The request could not be processed due to a problem with the format or the data sent. Please check and try again.",
	}
	ProblemInvalidCredentials = ProblemType{
		Path:    "/invalid-credentials",
		Title:   "Invalid credentials",
		Message: "Invalid email or password.",
	}
)

// ErrorField carries one field-level validation failure
type ErrorField struct {
	Name        string `json:"name"`
	UserMessage string `json:"userMessage"`
}

// ErrorResponse is the RFC 7807 style error body shared by every endpoint
type ErrorResponse struct {
	Status      int          `json:"status"`
	Type        string       `json:"type"`
	Title       string       `json:"title"`
	Detail      string       `json:"detail"`
	Instance    string       `json:"instance"`
	UserMessage string       `json:"userMessage"`
	Timestamp   time.Time    `json:"timestamp"`
	Fields      []ErrorField `json:"fields,omitempty"`
}

// NewErrorResponse assembles an error body. An empty userMessage falls back
// to the detail text.
func NewErrorResponse(status int, baseURI string, problem ProblemType, detail, instance, userMessage string, fields []ErrorField) ErrorResponse {
	if userMessage == "" {
		userMessage = detail
	}
	return ErrorResponse{
		Status:      status,
		Type:        baseURI + problem.Path,
		Title:       problem.Title,
		Detail:      detail,
		Instance:    instance,
		UserMessage: userMessage,
		Timestamp:   time.Now(),
		Fields:      fields,
	}
}
