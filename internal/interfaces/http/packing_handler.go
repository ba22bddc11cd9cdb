package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Empaques-api/internal/application/dto"
	"github.com/jhoicas/Empaques-api/internal/application/packing"
)

// PackingHandler maneja las peticiones HTTP del motor de empaques:
// jerarquía, validación, conversión, picking, escaneo y mutaciones del árbol.
type PackingHandler struct {
	engine   *packing.EngineUseCase
	mutation *packing.TreeMutationUseCase
}

// NewPackingHandler construye el handler.
func NewPackingHandler(engine *packing.EngineUseCase, mutation *packing.TreeMutationUseCase) *PackingHandler {
	return &PackingHandler{engine: engine, mutation: mutation}
}

// GetHierarchy godoc
// @Summary      Árbol de empaques del producto
// @Description  Devuelve el árbol anidado desde la unidad base, validado en lectura.
// @Tags         packaging
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.HierarchyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.HierarchyErrorResponse
// @Router       /api/products/{id}/packaging [get]
func (h *PackingHandler) GetHierarchy(c *fiber.Ctx) error {
	resp, err := h.engine.GetHierarchy(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// ValidateHierarchy godoc
// @Summary      Validar la jerarquía de empaques
// @Description  Devuelve el reporte estructural completo (errores y advertencias), válido o no.
// @Tags         packaging
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  packing.ValidationReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/packaging/validate [get]
func (h *PackingHandler) ValidateHierarchy(c *fiber.Ctx) error {
	report, err := h.engine.ValidateHierarchy(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// AddNode godoc
// @Summary      Agregar un empaque al árbol
// @Description  El árbol resultante se revalida completo dentro de una transacción; si queda inválido no se persiste nada.
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.CreatePackagingNodeRequest  true  "name, base_unit_quantity, parent_id, barcode, dimensions"
// @Success      201  {object}  dto.PackagingNodeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.HierarchyErrorResponse
// @Router       /api/products/{id}/packaging [post]
func (h *PackingHandler) AddNode(c *fiber.Ctx) error {
	var in dto.CreatePackagingNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.mutation.AddNode(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateNode godoc
// @Summary      Actualizar un empaque
// @Description  Concurrencia optimista: version debe ser la última leída por el cliente.
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empaque"
// @Param        body  body  dto.UpdatePackagingNodeRequest  true  "campos nuevos más version"
// @Success      200  {object}  dto.PackagingNodeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.HierarchyErrorResponse
// @Router       /api/packaging/{id} [put]
func (h *PackingHandler) UpdateNode(c *fiber.Ctx) error {
	var in dto.UpdatePackagingNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.mutation.UpdateNode(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// DeleteNode godoc
// @Summary      Eliminar un empaque
// @Description  Rechazado con 409 si alguna fila de stock referencia el empaque o si otra edición cambió la versión.
// @Tags         packaging
// @Produce      json
// @Param        id       path   string  true  "ID del empaque"
// @Param        version  query  int     true  "Última versión leída"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.HierarchyErrorResponse
// @Router       /api/packaging/{id} [delete]
func (h *PackingHandler) DeleteNode(c *fiber.Ctx) error {
	version := c.QueryInt("version", -1)
	if version < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "version es obligatoria"})
	}
	if err := h.mutation.DeleteNode(c.Context(), c.Params("id"), version); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Convert godoc
// @Summary      Convertir cantidades entre empaques
// @Description  Aritmética exacta sobre decimales; is_exact=false cuando la división deja residuo.
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertRequest  true  "quantity, from_packaging_id, to_packaging_id"
// @Success      200  {object}  packing.ConversionResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.HierarchyErrorResponse
// @Router       /api/packaging/convert [post]
func (h *PackingHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.engine.Convert(in.Quantity, in.FromPackagingID, in.ToPackagingID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// OptimizePicking godoc
// @Summary      Plan de picking voraz
// @Description  Plan determinista de mayor a menor empaque. Stock insuficiente no es error: can_fulfill=false y remaining reporta el faltante.
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.OptimizePickingRequest  true  "requested_base_units"
// @Success      200  {object}  packing.PickingPlan
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.HierarchyErrorResponse
// @Router       /api/products/{id}/picking/optimize [post]
func (h *PackingHandler) OptimizePicking(c *fiber.Ctx) error {
	var in dto.OptimizePickingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.engine.OptimizePicking(c.Params("id"), in.RequestedBaseUnits)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(plan)
}

// ScanBarcode godoc
// @Summary      Resolver un código de barras escaneado
// @Tags         packaging
// @Produce      json
// @Param        code  path  string  true  "Código de barras"
// @Success      200  {object}  dto.PackagingNodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/barcodes/{code} [get]
func (h *PackingHandler) ScanBarcode(c *fiber.Ctx) error {
	resp, err := h.engine.ScanBarcode(c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}
