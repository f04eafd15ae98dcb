package app

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/frontlab/todo-api/config"
	"github.com/frontlab/todo-api/router"
	"github.com/frontlab/todo-api/store"
)

// SetupAndRunApp khởi động ứng dụng Fiber
func SetupAndRunApp() error {
	// Load biến môi trường từ file .env
	if err := config.LoadENV(); err != nil {
		return err
	}

	cfg := config.Load()

	// Mặc định giữ todos trong bộ nhớ; đặt POSTGRESQL_URI để dùng PostgreSQL.
	var s store.TodoStore = store.NewMemoryStore()
	if cfg.PostgresURI != "" {
		ps, err := store.NewPostgresStore(cfg.PostgresURI)
		if err != nil {
			return err
		}
		defer ps.Close()
		log.Println("Connected to PostgreSQL successfully")
		s = ps
	}

	app := New(cfg, s)

	// Lắng nghe trên cổng chỉ định
	return app.Listen(":" + cfg.Port)
}

// New assembles the Fiber app with its middlewares and routes. Tests call
// this directly with an in-memory store.
func New(cfg *config.Config, s store.TodoStore) *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, cfg, s)
	config.AddSwaggerRoutes(app)

	return app
}
