package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/helper"
	"github.com/rahmatrdn/go-query-advisor/internal/usecase"
)

// IndexCatalogHandler manages the indexes recommendations are checked
// against.
type IndexCatalogHandler struct {
	indexCatalogUsecase usecase.IndexCatalogUsecase
}

func NewIndexCatalogHandler(indexCatalogUsecase usecase.IndexCatalogUsecase) *IndexCatalogHandler {
	return &IndexCatalogHandler{indexCatalogUsecase: indexCatalogUsecase}
}

func (h *IndexCatalogHandler) Register(app *fiber.App) {
	group := app.Group("/indexes")
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Delete("/:id", h.Delete)
}

// List godoc
// @Summary  List existing indexes
// @Tags     indexes
// @Produce  json
// @Success  200  {object}  indexListResponse
// @Failure  500  {object}  ErrorResponse
// @Router   /indexes [get]
func (h *IndexCatalogHandler) List(c *fiber.Ctx) error {
	indexes, err := h.indexCatalogUsecase.List(c.Context())
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(indexListResponse{Data: indexes})
}

type indexListResponse struct {
	Data []*entity.ExistingIndex `json:"data"`
}

// Create godoc
// @Summary   Register an existing index
// @Tags      indexes
// @Accept    json
// @Produce   json
// @Param     index  body      entity.ExistingIndex  true  "index definition"
// @Success   201    {object}  entity.ExistingIndex
// @Failure   400    {object}  ErrorResponse
// @Failure   401    {object}  ErrorResponse
// @Failure   409    {object}  ErrorResponse
// @Failure   500    {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /indexes [post]
func (h *IndexCatalogHandler) Create(c *fiber.Ctx) error {
	var idx entity.ExistingIndex
	if err := c.BodyParser(&idx); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.indexCatalogUsecase.Create(c.Context(), &idx); err != nil {
		if errwrap.Is(err, helper.ErrInvalidInput) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		if errwrap.Is(err, usecase.ErrExistingIndexExists) {
			return errorJSON(c, fiber.StatusConflict, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(idx)
}

// Delete godoc
// @Summary   Forget an existing index
// @Tags      indexes
// @Param     id  path  int  true  "index id"
// @Success   204
// @Failure   400  {object}  ErrorResponse
// @Failure   401  {object}  ErrorResponse
// @Failure   404  {object}  ErrorResponse
// @Failure   500  {object}  ErrorResponse
// @Security  BearerAuth
// @Router    /indexes/{id} [delete]
func (h *IndexCatalogHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid index id")
	}

	if err := h.indexCatalogUsecase.Delete(c.Context(), id); err != nil {
		if errwrap.Is(err, usecase.ErrExistingIndexNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
