package models

import "time"

// Response DTOs returned by the HTTP layer.

type UserListItem struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func NewUserListItem(u *User) UserListItem {
	return UserListItem{Name: u.Name, Email: u.Email, Role: u.Role}
}

type CourseListItem struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      CourseStatus `json:"status"`
	PublishedAt *time.Time   `json:"publishedAt"`
}

func NewCourseListItem(c *Course) CourseListItem {
	return CourseListItem{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		PublishedAt: c.PublishedAt,
	}
}

type LoginResponse struct {
	JWTToken string `json:"jwtToken"`
}
