package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Empaques-api/internal/application/dto"
	"github.com/jhoicas/Empaques-api/internal/application/packing"
)

// StockHandler maneja las peticiones HTTP de stock por ubicación+empaque
// y la consolidación a unidades base.
type StockHandler struct {
	engine *packing.EngineUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(engine *packing.EngineUseCase) *StockHandler {
	return &StockHandler{engine: engine}
}

// Upsert godoc
// @Summary      Registrar o actualizar una fila de stock
// @Description  Reemplaza la cantidad de (ubicación, empaque). Cantidad cero es un valor válido.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertStockRequest  true  "location_id, packaging_id, quantity"
// @Success      204  "sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.engine.UpsertStock(in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByProduct godoc
// @Summary      Filas de stock crudas del producto
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}   dto.StockRowResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) ListByProduct(c *fiber.Ctx) error {
	rows, err := h.engine.ListStock(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rows)
}

// GetConsolidated godoc
// @Summary      Stock consolidado en unidades base
// @Description  Suma todas las ubicaciones y empaques del producto, con desglose de paquetes completos y sobrante por empaque.
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  packing.ConsolidationResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.HierarchyErrorResponse
// @Router       /api/products/{id}/stock/consolidated [get]
func (h *StockHandler) GetConsolidated(c *fiber.Ctx) error {
	result, err := h.engine.GetStockConsolidated(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}
