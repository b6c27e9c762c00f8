package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/domain/user"
	"devconnect/internal/pkg/response"
	"devconnect/internal/pkg/validation"
	"devconnect/internal/usecase/auth"
)

type AuthHandler struct {
	uc       *auth.Service
	validate *validation.Validator
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthHandler(uc *auth.Service, validate *validation.Validator) *AuthHandler {
	return &AuthHandler{uc: uc, validate: validate}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/", h.Login)
	r.Get("/", h.Me, authMw)
}

// Login exchanges credentials for a signed token.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if errs := h.validate.Struct(req); errs != nil {
		return middleware.NewValidationError(errs)
	}

	token, err := h.uc.Login(c.Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Server error", err)
	}

	return response.JSON(c, fiber.StatusOK, response.TokenBody{Token: token})
}

// Me returns the authenticated subject's account.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	u, err := h.uc.CurrentUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Server error", err)
	}

	return response.JSON(c, fiber.StatusOK, u)
}
