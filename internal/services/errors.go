package services

import (
	"errors"
	"fmt"

	"github.com/alurafake/course-service/internal/validator"
)

// ErrorKind classifies service failures for the HTTP layer
type ErrorKind string

const (
	KindValidationFailed           ErrorKind = "VALIDATION_FAILED"
	KindInvalidOption              ErrorKind = "INVALID_OPTION"
	KindBusinessRule               ErrorKind = "BUSINESS_RULE"
	KindInvalidCourseTaskOperation ErrorKind = "INVALID_COURSE_TASK_OPERATION"
	KindResourceNotFound           ErrorKind = "RESOURCE_NOT_FOUND"
	KindAuthenticationFailed       ErrorKind = "AUTHENTICATION_FAILED"
	KindUnexpected                 ErrorKind = "UNEXPECTED"
)

// ServiceError is the error type returned by every service operation
// that fails for a domain reason. Anything else is an infrastructure
// error and maps to KindUnexpected at the edge.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Fields  validator.ValidationErrors
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewValidationFailedError carries field-level errors for the edge body
func NewValidationFailedError(fields validator.ValidationErrors) *ServiceError {
	return &ServiceError{
		Kind:    KindValidationFailed,
		Message: "One or more fields are invalid. Please fill them out correctly and try again.",
		Fields:  fields,
	}
}

func NewInvalidOptionError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindInvalidOption, Message: fmt.Sprintf(format, args...)}
}

func NewBusinessRuleError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidCourseTaskOperationError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindInvalidCourseTaskOperation, Message: fmt.Sprintf(format, args...)}
}

func NewResourceNotFoundError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindResourceNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewAuthenticationFailedError never distinguishes unknown email from
// wrong password.
func NewAuthenticationFailedError() *ServiceError {
	return &ServiceError{Kind: KindAuthenticationFailed, Message: "Invalid email or password."}
}

// AsServiceError extracts a ServiceError from an error chain
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// KindOf returns the error kind, defaulting to KindUnexpected
func KindOf(err error) ErrorKind {
	if se, ok := AsServiceError(err); ok {
		return se.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
