package models

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError is a single validation issue, keyed by the offending field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// LoginRequest là body của POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []FieldError {
	var issues []FieldError
	if !emailPattern.MatchString(r.Email) {
		issues = append(issues, FieldError{Path: "email", Message: "Invalid email format"})
	}
	if len(r.Password) < 6 {
		issues = append(issues, FieldError{Path: "password", Message: "Password must be at least 6 characters"})
	}
	return issues
}

// NewTodoRequest là body của POST /todos. Completed dùng con trỏ để phân
// biệt "false" với "không gửi".
type NewTodoRequest struct {
	Title     *string  `json:"title"`
	Completed *bool    `json:"completed"`
	Priority  Priority `json:"priority,omitempty"`
}

func (r NewTodoRequest) Validate() []FieldError {
	var issues []FieldError
	if r.Title == nil || *r.Title == "" {
		issues = append(issues, FieldError{Path: "title", Message: "Title is required"})
	}
	if r.Completed == nil {
		issues = append(issues, FieldError{Path: "completed", Message: "Completed is required"})
	}
	if r.Priority != "" && !r.Priority.Valid() {
		issues = append(issues, FieldError{Path: "priority", Message: "Priority must be one of LOW, MEDIUM, HIGH"})
	}
	return issues
}

// UpdateTodoRequest là body của PUT /todos/:id. Mọi trường trừ id đều được
// thay thế; date là chuỗi để trả lỗi parse như một lỗi validate.
type UpdateTodoRequest struct {
	Title     *string  `json:"title"`
	Completed *bool    `json:"completed"`
	Date      string   `json:"date"`
	Priority  Priority `json:"priority,omitempty"`
}

func (r UpdateTodoRequest) Validate() []FieldError {
	issues := NewTodoRequest{Title: r.Title, Completed: r.Completed, Priority: r.Priority}.Validate()
	if _, err := ParseDate(r.Date); err != nil {
		issues = append(issues, FieldError{Path: "date", Message: "Invalid date"})
	}
	return issues
}

// ParseDate accepts the formats clients actually send: RFC3339 or a bare
// calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
