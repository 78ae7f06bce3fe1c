package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/usecase"
)

type SuppressionHandler struct {
	suppressionUsecase usecase.SuppressionUsecase
}

func NewSuppressionHandler(suppressionUsecase usecase.SuppressionUsecase) *SuppressionHandler {
	return &SuppressionHandler{suppressionUsecase: suppressionUsecase}
}

func (h *SuppressionHandler) Register(app *fiber.App) {
	group := app.Group("/suppressions")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Delete("/:id", h.Delete)
}

// List godoc
// @Summary  List suppressed patterns
// @Tags     suppressions
// @Produce  json
// @Success  200  {object}  map[string][]entity.Suppression
// @Failure  500  {object}  ErrorResponse
// @Router   /suppressions [get]
func (h *SuppressionHandler) List(c *fiber.Ctx) error {
	suppressions, err := h.suppressionUsecase.List(c.Context())
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"data": suppressions,
	})
}

// Create godoc
// @Summary   Suppress a pattern from future reports
// @Tags      suppressions
// @Accept    json
// @Produce   json
// @Param     suppression  body      entity.Suppression  true  "pattern to suppress"
// @Success   201          {object}  entity.Suppression
// @Failure   400          {object}  ErrorResponse
// @Failure   401          {object}  ErrorResponse
// @Failure   409          {object}  ErrorResponse
// @Failure   500          {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /suppressions [post]
func (h *SuppressionHandler) Create(c *fiber.Ctx) error {
	var s entity.Suppression
	if err := c.BodyParser(&s); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.suppressionUsecase.Create(c.Context(), &s); err != nil {
		if errwrap.Is(err, helper.ErrInvalidInput) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		if errwrap.Is(err, usecase.ErrSuppressionExists) {
			return errorJSON(c, fiber.StatusConflict, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// Delete godoc
// @Summary   Lift a suppression
// @Tags      suppressions
// @Param     id  path  int  true  "suppression id"
// @Success   204
// @Failure   400  {object}  ErrorResponse
// @Failure   401  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Failure   500  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /suppressions/{id} [delete]
func (h *SuppressionHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid suppression id")
	}

	if err := h.suppressionUsecase.Delete(c.Context(), id); err != nil {
		if errwrap.Is(err, usecase.ErrSuppressionNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
