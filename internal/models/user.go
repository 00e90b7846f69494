package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent    UserRole = "STUDENT"
	RoleInstructor UserRole = "INSTRUCTOR"
)

func (r UserRole) IsValid() bool {
	return r == RoleStudent || r == RoleInstructor
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:50" validate:"required,min=3,max=50"`
	Email     string    `json:"email" gorm:"not null;size:255;uniqueIndex" validate:"required,email"`
	Role      UserRole  `json:"role" gorm:"not null;size:20;index" validate:"required,user_role"`
	Password  string    `json:"-" gorm:"not null;size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Courses []Course `json:"-" gorm:"foreignKey:InstructorID"`
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

func (User) TableName() string {
	return "users"
}
