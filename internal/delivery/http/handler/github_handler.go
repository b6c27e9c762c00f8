package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/delivery/http/middleware"
	githubclient "devconnect/internal/infrastructure/github"
	githubuc "devconnect/internal/usecase/github"
)

// GithubHandler proxies the public repository lookup. Unauthenticated on
// purpose: the data is public on the upstream side too.
type GithubHandler struct {
	uc *githubuc.Service
}

func NewGithubHandler(uc *githubuc.Service) *GithubHandler {
	return &GithubHandler{uc: uc}
}

func (h *GithubHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/github/:username", h.ListRepositories)
}

func (h *GithubHandler) ListRepositories(c fiber.Ctx) error {
	repos, err := h.uc.ListRepositories(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, githubclient.ErrUnavailable) {
			return middleware.NewAppError(fiber.StatusNotFound, "No Github profile found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Server error", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(repos)
}
