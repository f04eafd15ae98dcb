package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frontlab/todo-api/config"
	"github.com/frontlab/todo-api/handlers"
	"github.com/frontlab/todo-api/middleware"
	"github.com/frontlab/todo-api/store"
)

func SetupRoutes(app *fiber.App, cfg *config.Config, s store.TodoStore) {
	app.Get("/health", handlers.HandleHealthCheck)

	authHandler := handlers.NewAuthHandler(cfg.JWTSecret, cfg.JWTExpiresIn)
	todoHandler := handlers.NewTodoHandler(s, handlers.NewBroker())

	auth := app.Group("/auth")
	auth.Post("/login", authHandler.HandleLogin)

	// Một deployment chỉ dùng đúng một chính sách xác thực.
	var guard fiber.Handler
	switch cfg.AuthMode {
	case config.AuthModeAPIKey:
		guard = middleware.APIKeyProtected(cfg.PrivateAPIKey)
	default:
		guard = middleware.JWTProtected(cfg.JWTSecret)
	}

	todos := app.Group("/todos", guard)
	todos.Get("/", todoHandler.HandleGetTodos)
	todos.Get("/scroll", todoHandler.HandleScrollTodos)
	todos.Get("/events", todoHandler.HandleTodoEvents)
	todos.Post("/", todoHandler.HandleCreateTodo)
	todos.Get("/:id", todoHandler.HandleGetOneTodo)
	todos.Put("/:id", todoHandler.HandleUpdateTodo)
	todos.Delete("/:id", todoHandler.HandleDeleteTodo)
}
