package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/union-tracker/internal/pkg/errors"
	"github.com/union-tracker/internal/pkg/utils"
	"github.com/union-tracker/internal/usecase"
	"github.com/union-tracker/internal/usecase/dto"
)

// UnionHandler serves the union resource.
type UnionHandler struct {
	unionUC *usecase.UnionUseCase
	logger  *zap.Logger
}

func NewUnionHandler(unionUC *usecase.UnionUseCase, logger *zap.Logger) *UnionHandler {
	return &UnionHandler{
		unionUC: unionUC,
		logger:  logger,
	}
}

// List godoc
// @Summary List unions
// @Description Filters on any field with field=value or field[gt|gte|lt|lte|in]=value. Pagination links are returned only when page is given.
// @Tags Unions
// @Produce json
// @Security BearerAuth
// @Param select query string false "Comma separated fields to return"
// @Param sort query string false "Comma separated sort fields, prefix - for descending" default(-createdAt)
// @Param page query int false "1-indexed page"
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Union}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/unions [get]
func (h *UnionHandler) List(c *fiber.Ctx) error {
	params := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		params.Add(string(key), string(value))
	})

	res, err := h.unionUC.List(c.UserContext(), params)
	if err != nil {
		h.logger.Debug("List unions failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, res.Data, &utils.Meta{
		Count:      res.Count,
		Pagination: res.Pagination,
	})
}

// GetByID godoc
// @Summary Get a union
// @Tags Unions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Union id"
// @Success 200 {object} utils.SuccessResponse{data=domain.Union}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/unions/{id} [get]
func (h *UnionHandler) GetByID(c *fiber.Ctx) error {
	u, err := h.unionUC.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, u, nil)
}

// Create godoc
// @Summary Create a union
// @Description The slug is derived from companyName and the location from address.
// @Tags Unions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUnionRequest true "Union"
// @Success 201 {object} utils.SuccessResponse{data=domain.Union}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/unions [post]
func (h *UnionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUnionRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid create body", zap.Error(err))
		return utils.SendError(c, errors.ErrValidation.WithMessage("Invalid request body"))
	}

	u, err := h.unionUC.Create(c.UserContext(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusCreated, u, nil)
}

// Update godoc
// @Summary Update a union
// @Description Partial update. A new companyName re-derives the slug; a new address re-derives the location.
// @Tags Unions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Union id"
// @Param request body dto.UpdateUnionRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=domain.Union}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/unions/{id} [put]
func (h *UnionHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUnionRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid update body", zap.Error(err))
		return utils.SendError(c, errors.ErrValidation.WithMessage("Invalid request body"))
	}

	u, err := h.unionUC.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, u, nil)
}

// Delete godoc
// @Summary Delete a union
// @Tags Unions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Union id"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/unions/{id} [delete]
func (h *UnionHandler) Delete(c *fiber.Ctx) error {
	if err := h.unionUC.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, fiber.Map{}, nil)
}

// SearchByRadius godoc
// @Summary Unions within a distance of a zipcode
// @Tags Unions
// @Produce json
// @Security BearerAuth
// @Param zipcode path string true "Postal code"
// @Param distance path number true "Distance"
// @Param unit query string false "mi or km" default(mi)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Union}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/unions/radius/{zipcode}/{distance} [get]
func (h *UnionHandler) SearchByRadius(c *fiber.Ctx) error {
	res, err := h.unionUC.SearchByRadius(c.UserContext(),
		c.Params("zipcode"), c.Params("distance"), c.Query("unit"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.StatusOK, res.Data, &utils.Meta{Count: res.Count})
}
