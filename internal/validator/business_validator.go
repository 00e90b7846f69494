package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/alurafake/course-service/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateNewUser validates user registration business rules
func (bv *BusinessValidator) ValidateNewUser(req *NewUserRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateNewCourse validates course creation business rules
func (bv *BusinessValidator) ValidateNewCourse(req *NewCourseRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateNewTask validates task creation shape rules. Kind-specific
// option rules are enforced by the task creators.
func (bv *BusinessValidator) ValidateNewTask(req *NewTaskRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateLogin validates the credential payload shape
func (bv *BusinessValidator) ValidateLogin(req *LoginRequest) ValidationErrors {
	return bv.Validate(req)
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// user role validation
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsValid()
	})

	// task type validation
	bv.validate.RegisterValidation("task_type", func(fl validator.FieldLevel) bool {
		return models.TaskType(fl.Field().String()).IsValid()
	})

	// non-blank validation, whitespace-only strings are rejected
	bv.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// legacy password rule, exactly 6 characters
	bv.validate.RegisterValidation("password_length", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) == 6
	})
}
