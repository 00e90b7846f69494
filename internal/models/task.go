package models

import (
	"strings"
	"time"
)

type TaskType string

const (
	TaskOpenText       TaskType = "OPEN_TEXT"
	TaskSingleChoice   TaskType = "SINGLE_CHOICE"
	TaskMultipleChoice TaskType = "MULTIPLE_CHOICE"
)

// AllTaskTypes lists every activity kind a publishable course must cover.
var AllTaskTypes = []TaskType{TaskOpenText, TaskSingleChoice, TaskMultipleChoice}

func (t TaskType) IsValid() bool {
	switch t {
	case TaskOpenText, TaskSingleChoice, TaskMultipleChoice:
		return true
	}
	return false
}

type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Statement string    `json:"statement" gorm:"not null;size:255" validate:"required,min=4,max=255"`
	Order     int       `json:"order" gorm:"column:task_order;not null"`
	Type      TaskType  `json:"type" gorm:"column:task_type;not null;size:20" validate:"required,task_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Options []TaskOption `json:"options,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// NormalizedStatement is the form used for duplicate detection.
func (t *Task) NormalizedStatement() string {
	return NormalizeStatement(t.Statement)
}

func (Task) TableName() string {
	return "tasks"
}

type TaskOption struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TaskID     uint      `json:"task_id" gorm:"not null;index"`
	OptionText string    `json:"option" gorm:"column:option_text;not null;size:80" validate:"required,min=4,max=80"`
	IsCorrect  bool      `json:"isCorrect" gorm:"column:is_correct;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (TaskOption) TableName() string {
	return "task_options"
}

// NormalizeStatement trims and lowercases text before equality checks.
func NormalizeStatement(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
