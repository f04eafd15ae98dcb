package models

import "time"

// Priority của một todo. Chuỗi rỗng nghĩa là chưa đặt độ ưu tiên.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo là cấu trúc dữ liệu của một todo
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Date      time.Time `json:"date"`
	Priority  Priority  `json:"priority,omitempty"`
}
