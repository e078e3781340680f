package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-core/internal/application/catalog"
	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/domain"
)

// UnitHandler lectura del catálogo de unidades (protegido).
type UnitHandler struct {
	uc *catalog.UnitCatalogUseCase
}

// NewUnitHandler construye el handler de unidades.
func NewUnitHandler(uc *catalog.UnitCatalogUseCase) *UnitHandler {
	return &UnitHandler{uc: uc}
}

// List godoc
// @Summary      Listar unidades de medida
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UnitResponse
// @Router       /api/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	units, err := h.uc.ListUnits(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(units)
}

// GetByID godoc
// @Summary      Obtener una unidad de medida
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "UUID de la unidad"
// @Success      200  {object}  dto.UnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [get]
func (h *UnitHandler) GetByID(c *fiber.Ctx) error {
	unit, err := h.uc.GetUnit(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unidad no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(unit)
}
