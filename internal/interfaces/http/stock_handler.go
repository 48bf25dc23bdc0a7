package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
)

// StockHandler maneja el log de ajustes de inventario.
type StockHandler struct {
	uc *inventory.RegisterAdjustmentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.RegisterAdjustmentUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ajuste de inventario
// @Description  Inserta el ajuste y aplica el delta al stock del producto en la
// @Description  misma transacción; si el resultado quedaría negativo se rechaza todo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockAdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.StockAdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-adjustments [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ok, err := validateBody(c, in); !ok {
		return err
	}
	out, err := h.uc.RegisterAdjustment(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ajustes de inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StockAdjustmentListResponse
// @Router       /api/stock-adjustments [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
