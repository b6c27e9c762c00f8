package response

import (
	"github.com/gofiber/fiber/v3"

	"devconnect/internal/pkg/validation"
)

// Error bodies follow a fixed contract: {"msg": ...} for single-message
// failures and {"errors": [...]} for field-level validation failures.

type MsgBody struct {
	Msg string `json:"msg"`
}

type ErrorsBody struct {
	Errors []validation.FieldError `json:"errors"`
}

type TokenBody struct {
	Token string `json:"token"`
}

func Msg(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(MsgBody{Msg: msg})
}

func ValidationFailed(c fiber.Ctx, errs []validation.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorsBody{Errors: errs})
}

func JSON(c fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}
