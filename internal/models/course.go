package models

import (
	"time"
)

type CourseStatus string

const (
	StatusBuilding  CourseStatus = "BUILDING"
	StatusPublished CourseStatus = "PUBLISHED"
)

type Course struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"not null;size:255" validate:"required,notblank"`
	Description  string       `json:"description" gorm:"not null;type:text" validate:"required,notblank"`
	InstructorID uint         `json:"instructor_id" gorm:"not null;index"`
	Status       CourseStatus `json:"status" gorm:"not null;size:20;default:BUILDING;index"`
	PublishedAt  *time.Time   `json:"published_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	Instructor User   `json:"-" gorm:"foreignKey:InstructorID"`
	Tasks      []Task `json:"tasks,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// IsBuilding reports whether the course still accepts content changes.
func (c *Course) IsBuilding() bool {
	return c.Status == StatusBuilding
}

func (Course) TableName() string {
	return "courses"
}
