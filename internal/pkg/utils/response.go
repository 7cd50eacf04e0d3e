package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/union-tracker/internal/domain"
	"github.com/union-tracker/internal/pkg/errors"
)

type SuccessResponse struct {
	Success    bool               `json:"success"`
	Count      *int               `json:"count,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Data       interface{}        `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Meta carries the optional list fields of the envelope.
type Meta struct {
	Count      int
	Pagination *domain.Pagination
}

func SendSuccess(c *fiber.Ctx, status int, data interface{}, meta *Meta) error {
	resp := SuccessResponse{
		Success: true,
		Data:    data,
	}
	if meta != nil {
		count := meta.Count
		resp.Count = &count
		resp.Pagination = meta.Pagination
	}
	return c.Status(status).JSON(resp)
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Success: false,
			Error:   appErr.Message,
		})
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{
			Success: false,
			Error:   fiberErr.Message,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Success: false,
		Error:   errors.ErrInternalServer.Message,
	})
}
