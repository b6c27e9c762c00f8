package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"devconnect/internal/pkg/jwt"
)

// TokenHeader is the fixed request header carrying the signed token.
const TokenHeader = "x-auth-token"

const CtxUserIDKey = "user_id"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware verifies the token and attaches the authenticated subject to
// the request context. It persists nothing.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimSpace(c.Get(TokenHeader))
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Token is not valid", err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)

		return c.Next()
	}
}

// SubjectFromCtx returns the authenticated user id set by the auth gate.
func SubjectFromCtx(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok
}
