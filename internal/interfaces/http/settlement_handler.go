package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-core/internal/application/dto"
	"github.com/jhoicas/pos-core/internal/application/settlement"
	"github.com/jhoicas/pos-core/internal/domain"
)

// SettlementHandler maneja las peticiones HTTP de liquidación de pagos (protegido).
type SettlementHandler struct {
	uc *settlement.SettlePaymentUseCase
}

// NewSettlementHandler construye el handler de liquidaciones.
func NewSettlementHandler(uc *settlement.SettlePaymentUseCase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

// Settle godoc
// @Summary      Liquidar un pago contra las transacciones pendientes del contacto
// @Description  Asigna el monto a las transacciones due/partial del contacto en
//
//	orden (fecha, id) ascendente. Sin deuda devuelve 200 con lista
//	vacía y todo el monto como remanente.
//
// @Tags         settlements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettlePaymentRequest  true  "contact_id, kind (sale|purchase), amount"
// @Success      200   {object}  dto.SettlePaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settlements [post]
func (h *SettlementHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettlePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SettlePayment(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPaymentAmount):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAYMENT_AMOUNT", Message: "el monto debe ser mayor que cero"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos o tipo incompatible con el contacto"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contacto no encontrado"})
		case errors.Is(err, domain.ErrConcurrencyConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "otra liquidación del contacto está en curso, reintente"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}
