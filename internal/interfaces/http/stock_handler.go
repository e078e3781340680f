package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/stock"
	"github.com/jhoicas/pos-core/internal/domain"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Check godoc
// @Summary      Pre-chequeo de disponibilidad (puro, sin mutación)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckAvailabilityRequest  true  "variant_id, location_id, quantity, unit_id"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/check [post]
func (h *StockHandler) Check(c *fiber.Ctx) error {
	var in dto.CheckAvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CheckAvailability(c.Context(), in)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock (increase/decrease) con conversión a unidad base
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "variant_id, location_id, quantity, unit_id, direction, allow_negative"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Adjust(c.Context(), in, userID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir stock entre sucursales (ambos lados o ninguno)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "variant_id, from_location_id, to_location_id, quantity, unit_id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Transfer(c.Context(), in, userID); err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transferencia aplicada"})
}

// GetAvailable godoc
// @Summary      Disponibilidad actual de una variante en una sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        variant_id   path  string  true  "UUID de la variante"
// @Param        location_id  path  string  true  "UUID de la sucursal"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{variant_id}/{location_id} [get]
func (h *StockHandler) GetAvailable(c *fiber.Ctx) error {
	variantID := c.Params("variant_id")
	locationID := c.Params("location_id")
	out, err := h.uc.Available(c.Context(), variantID, locationID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Bitácora de movimientos por variante o sucursal
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        variant_id   query  string  false  "UUID de la variante (excluyente con location_id)"
// @Param        location_id  query  string  false  "UUID de la sucursal (excluyente con variant_id)"
// @Param        from         query  string  false  "Fecha inicial (RFC3339)"
// @Param        to           query  string  false  "Fecha final (RFC3339)"
// @Param        limit        query  int     false  "Máximo de filas (default 50)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	q := dto.MovementQuery{
		VariantID:  c.Query("variant_id"),
		LocationID: c.Query("location_id"),
	}
	q.Limit = c.QueryInt("limit")
	q.Offset = c.QueryInt("offset")
	if s := c.Query("from"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		q.From = &ts
	}
	if s := c.Query("to"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		q.To = &ts
	}
	out, err := h.uc.Movements(c.Context(), q)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// stockError traduce errores de dominio a respuestas HTTP.
func stockError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
			Details: map[string]string{
				"available": insufficient.Available.String(),
				"requested": insufficient.Requested.String(),
				"shortfall": insufficient.Shortfall().String(),
			},
		})
	}
	switch {
	case errors.Is(err, domain.ErrIncompatibleUnits):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INCOMPATIBLE_UNITS", Message: "las unidades no comparten base"})
	case errors.Is(err, domain.ErrInvalidUnitDefinition):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_UNIT", Message: "definición de unidad inválida"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante, sucursal o unidad no encontrada"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto concurrente, reintente la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
