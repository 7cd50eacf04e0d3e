package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/pkg/auth"
	"github.com/union-tracker/internal/pkg/errors"
	"github.com/union-tracker/internal/pkg/utils"
)

// TokenVerifier checks a bearer token against a secret.
type TokenVerifier interface {
	Verify(token, secret string) (*auth.Claims, error)
}

// RequireToken rejects requests whose bearer token does not verify against
// secret. The standard and elevated gates differ only in the secret.
func RequireToken(verifier TokenVerifier, secret string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))

		if _, err := verifier.Verify(token, secret); err != nil {
			logger.Debug("Token rejected",
				zap.String("path", c.Path()),
				zap.Error(err))
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		return c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
