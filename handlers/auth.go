package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/frontlab/todo-api/models"
	"github.com/frontlab/todo-api/utils"
)

// AuthHandler issues bearer tokens. There is no credential store: any
// syntactically valid login succeeds with a freshly synthesized identity.
type AuthHandler struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthHandler(secret []byte, ttl time.Duration) *AuthHandler {
	return &AuthHandler{secret: secret, ttl: ttl}
}

// HandleLogin godoc
// @Summary Login user (JWT authentication)
// @Description Generates a JWT for any valid email and password (min 6 chars).
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	req := new(models.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return validationError(c, issues)
	}

	// Tên hiển thị lấy từ phần trước @ của email.
	user := models.User{
		ID:    uuid.NewString(),
		Email: req.Email,
		Name:  strings.SplitN(req.Email, "@", 2)[0],
	}

	token, err := utils.GenerateToken(user, h.secret, h.ttl)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to login"})
	}

	return c.Status(200).JSON(models.APIResponse{
		Success: true,
		Message: "Login successful",
		Data:    models.LoginData{Token: token, User: user},
	})
}

func validationError(c *fiber.Ctx, issues []models.FieldError) error {
	return c.Status(400).JSON(fiber.Map{
		"error":  "Validation failed",
		"detail": issues,
	})
}
