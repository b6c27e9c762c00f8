package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/pkg/response"
	"devconnect/internal/pkg/validation"
)

// AppError is the single error shape handlers return. The error
// middleware converts it to the wire contract: validation failures render
// as {"errors": [...]}, everything else as {"msg": ...}.
type AppError struct {
	StatusCode int
	Message    string
	Errors     []validation.FieldError
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

func NewValidationError(errs []validation.FieldError) *AppError {
	return &AppError{StatusCode: fiber.StatusBadRequest, Message: "validation failed", Errors: errs}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered: %v", r)
				err = c.Status(fiber.StatusInternalServerError).SendString("Server error")
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		m.logger.Printf("%s %s -> %v", c.Method(), c.Path(), err)

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 || appErr.StatusCode <= 0 {
				return c.Status(fiber.StatusInternalServerError).SendString("Server error")
			}
			if len(appErr.Errors) > 0 {
				return response.ValidationFailed(c, appErr.Errors)
			}
			return response.Msg(c, appErr.StatusCode, appErr.Message)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code > 0 && fiberErr.Code < 500 {
			return response.Msg(c, fiberErr.Code, fiberErr.Message)
		}

		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	}
}
