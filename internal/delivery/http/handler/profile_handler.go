package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/domain/user"
	"devconnect/internal/pkg/response"
	"devconnect/internal/pkg/validation"
	profileuc "devconnect/internal/usecase/profile"
)

type ProfileHandler struct {
	uc       *profileuc.Service
	validate *validation.Validator
}

type upsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" validate:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required"`

	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

type educationRequest struct {
	School       string     `json:"school" validate:"required"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"fieldofstudy" validate:"required"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type experienceRequest struct {
	Title       string     `json:"title" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

func NewProfileHandler(uc *profileuc.Service, validate *validation.Validator) *ProfileHandler {
	return &ProfileHandler{uc: uc, validate: validate}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe, authMw)
	r.Post("/", h.Upsert, authMw)
	r.Get("/", h.List)
	r.Get("/user/:user_id", h.GetByUser)
	r.Delete("/", h.Delete, authMw)

	r.Put("/education", h.AddEducation, authMw)
	r.Delete("/education/:edu_id", h.RemoveEducation, authMw)
	r.Put("/experience", h.AddExperience, authMw)
	r.Delete("/experience/:exp_id", h.RemoveExperience, authMw)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	p, err := h.uc.GetOwn(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	var req upsertProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if errs := h.validate.Struct(req); errs != nil {
		return middleware.NewValidationError(errs)
	}

	p, err := h.uc.Upsert(c.Context(), userID, profileuc.UpsertInput{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) List(c fiber.Ctx) error {
	profiles, err := h.uc.List(c.Context())
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, profiles)
}

func (h *ProfileHandler) GetByUser(c fiber.Ctx) error {
	p, err := h.uc.GetByUser(c.Context(), c.Params("user_id"))
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) Delete(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	if err := h.uc.DeleteOwn(c.Context(), userID); err != nil {
		return mapProfileError(err)
	}
	return response.Msg(c, fiber.StatusOK, "User deleted")
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	var req educationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if errs := h.validate.Struct(req); errs != nil {
		return middleware.NewValidationError(errs)
	}

	p, err := h.uc.AddEducation(c.Context(), userID, profileuc.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	p, err := h.uc.RemoveEducation(c.Context(), userID, c.Params("edu_id"))
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	var req experienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", err)
	}
	if errs := h.validate.Struct(req); errs != nil {
		return middleware.NewValidationError(errs)
	}

	p, err := h.uc.AddExperience(c.Context(), userID, profileuc.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	userID, ok := middleware.SubjectFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
	}

	p, err := h.uc.RemoveExperience(c.Context(), userID, c.Params("exp_id"))
	if err != nil {
		return mapProfileError(err)
	}
	return response.JSON(c, fiber.StatusOK, p)
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, profileuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "There is no profile for this user", err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Server error", err)
	}
}
