package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/database/migration"
	"devconnect/internal/database/postgres"
	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/delivery/http/routes"
	"devconnect/internal/infrastructure/cache"
)

type App struct {
	Fiber *fiber.App
	DB    database.DB
}

// Bootstrap connects the store (fatal on failure), applies the schema,
// builds the fiber app and wires every route. The returned cleanup
// releases the store and cache connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	if err := migration.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("apply schema: %w", err)
	}

	redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, logger)

	f := fiber.New(fiber.Config{AppName: "devconnect"})

	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(logger).Middleware())

	routes.NewRegistry(cfg, db, redisCache, logger).Register(f)

	cleanup := func() error {
		_ = redisCache.Close()
		return db.Close()
	}

	return &App{Fiber: f, DB: db}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
