package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/pkg/response"
	"devconnect/internal/pkg/validation"
	"devconnect/internal/usecase/auth"
)

// UserHandler owns registration. Accounts are immutable after creation;
// the only other user operation is the cascading delete on the profile
// routes.
type UserHandler struct {
	uc       *auth.Service
	validate *validation.Validator
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func NewUserHandler(uc *auth.Service, validate *validation.Validator) *UserHandler {
	return &UserHandler{uc: uc, validate: validate}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Register)
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if errs := h.validate.Struct(req); errs != nil {
		return middleware.NewValidationError(errs)
	}

	token, err := h.uc.Register(c.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailAlreadyRegistered) {
			return middleware.NewAppError(fiber.StatusConflict, "User already exists", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "Server error", err)
	}

	return response.JSON(c, fiber.StatusOK, response.TokenBody{Token: token})
}
