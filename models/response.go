package models

// APIResponse is the {success, message, data} envelope used by the login,
// create and scroll endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// LoginData is the payload of a successful login.
type LoginData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
