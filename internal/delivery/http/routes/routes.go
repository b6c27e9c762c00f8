package routes

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/delivery/http/handler"
	"devconnect/internal/delivery/http/routes/api"
	"devconnect/internal/infrastructure/cache"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, c *cache.Redis, logger *log.Logger) *Registry {
	return &Registry{cfg: cfg, db: db, cache: c, logger: logger}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(r.db).RegisterRoutes(app)
	api.Register(app.Group("/api"), r.cfg, r.db, r.cache, r.logger)
}
