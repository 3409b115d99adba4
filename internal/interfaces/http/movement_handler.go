package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-tracker/internal/application/inventory"
)

// MovementHandler expone el historial de movimientos de stock (solo lectura).
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// ListByItem godoc
// @Summary      Historial de movimientos de un item
// @Tags         movements
// @Produce      json
// @Param        item_id  path  string  true  "ID del item"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{item_id} [get]
func (h *MovementHandler) ListByItem(c *fiber.Ctx) error {
	out, err := h.uc.ListByItem(c.UserContext(), c.Params("item_id"))
	if err != nil {
		return respondError(c, err, msgItemNotFound)
	}
	return c.JSON(out)
}
