package api

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/delivery/http/handler"
	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/infrastructure/cache"
	"devconnect/internal/infrastructure/github"
	"devconnect/internal/infrastructure/persistence/postgres"
	"devconnect/internal/pkg/jwt"
	"devconnect/internal/pkg/validation"
	authuc "devconnect/internal/usecase/auth"
	githubuc "devconnect/internal/usecase/github"
	profileuc "devconnect/internal/usecase/profile"
)

// Register wires every /api route: repositories over the shared pool,
// usecases over the repositories, handlers over the usecases.
func Register(r fiber.Router, cfg config.Config, db database.DB, c *cache.Redis, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWTSecret, cfg.TokenExpiry)
	authMw := middleware.NewAuthMiddleware(jwtSvc).Middleware()
	validate := validation.New()

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	authSvc := authuc.NewService(userRepo, jwtSvc)

	var profileCache profileuc.Cache
	if c != nil {
		profileCache = c
	}
	profileSvc := profileuc.NewService(profileRepo, profileCache, logger)

	ghClient := github.NewClient(cfg.GithubAPIBaseURL, cfg.GithubClientID, cfg.GithubClientSecret, logger)
	ghSvc := githubuc.NewService(ghClient)

	handler.NewUserHandler(authSvc, validate).RegisterRoutes(r.Group("/users"))
	handler.NewAuthHandler(authSvc, validate).RegisterRoutes(r.Group("/auth"), authMw)

	profileGroup := r.Group("/profile")
	handler.NewProfileHandler(profileSvc, validate).RegisterRoutes(profileGroup, authMw)
	handler.NewGithubHandler(ghSvc).RegisterRoutes(profileGroup)
}
