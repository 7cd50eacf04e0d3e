package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/pkg/auth"
	"github.com/union-tracker/internal/pkg/errors"
	"github.com/union-tracker/internal/pkg/utils"
	"github.com/union-tracker/internal/usecase/dto"
)

// AuthHandler issues guest tokens.
type AuthHandler struct {
	tokens *auth.TokenService
	secret string
	ttl    time.Duration
	logger *zap.Logger
}

func NewAuthHandler(tokens *auth.TokenService, secret string, ttl time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		secret: secret,
		ttl:    ttl,
		logger: logger,
	}
}

// GetToken godoc
// @Summary Issue a guest token
// @Description Returns a standard-gate token for the guest user.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/unions/gettoken [get]
func (h *AuthHandler) GetToken(c *fiber.Ctx) error {
	token, err := h.tokens.Issue(auth.GuestUser, h.secret, h.ttl)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer.Wrap(err))
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
