package models

// User is the identity embedded in a bearer token. It is synthesized at
// login time, never persisted.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
