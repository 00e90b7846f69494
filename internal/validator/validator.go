package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// ToValidationErrors converts go-playground validator errors into field errors
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	result := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		result = append(result, ValidationError{
			Field:   jsonFieldName(fe),
			Message: messageForTag(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return result
}

func jsonFieldName(fe validator.FieldError) string {
	// StructNamespace looks like "NewTaskRequest.Options[1].Option"
	name := fe.Field()
	switch name {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Role":
		return "role"
	case "Password":
		return "password"
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "EmailInstructor":
		return "emailInstructor"
	case "CourseID":
		return "courseId"
	case "Statement":
		return "statement"
	case "Order":
		return "order"
	case "Type":
		return "type"
	case "Options":
		return "options"
	case "Option":
		return "option"
	case "IsCorrect":
		return "isCorrect"
	}
	return name
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a well-formed email address"
	case "min":
		return fmt.Sprintf("length must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("length must be at most %s", fe.Param())
	case "user_role":
		return "must be STUDENT or INSTRUCTOR"
	case "task_type":
		return "must be OPEN_TEXT, SINGLE_CHOICE or MULTIPLE_CHOICE"
	case "notblank":
		return "must not be blank"
	case "password_length":
		return "length must be exactly 6"
	}
	return fmt.Sprintf("failed rule %q", fe.Tag())
}

// Validator is the application validator used by the service layer
type Validator struct {
	*BusinessValidator
}

// New creates the application validator with all business rules registered
func New() *Validator {
	return &Validator{BusinessValidator: NewBusinessValidator()}
}

// GetBusinessValidator exposes the underlying business validator
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.BusinessValidator
}
