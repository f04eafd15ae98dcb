package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/frontlab/todo-api/utils"
)

// UserKey is the Locals key the bearer guard stores the decoded identity
// under.
const UserKey = "user"

// APIKeyProtected yêu cầu header api-key khớp đúng secret của server.
// Every failure looks the same to the client; valid keys carry no identity.
func APIKeyProtected(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" || c.Get("api-key") != key {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		return c.Next()
	}
}

// JWTProtected xác thực access token từ header Authorization dạng
// "Bearer <token>" và gắn identity vào context.
func JWTProtected(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized: No token provided"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized: Invalid token format"})
		}

		user, err := utils.VerifyToken(tokenString, secret)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized: Invalid token"})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}
