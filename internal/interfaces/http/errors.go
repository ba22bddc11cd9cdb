package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Empaques-api/internal/application/dto"
	"github.com/jhoicas/Empaques-api/internal/application/packing"
	"github.com/jhoicas/Empaques-api/internal/domain"
)

// writeError traduce los errores de dominio a respuestas HTTP. Un árbol
// estructuralmente inválido responde 422 con el reporte completo; los
// conflictos de concurrencia y las guardas de borrado responden 409.
func writeError(c *fiber.Ctx, err error) error {
	var hierr *packing.HierarchyError
	if errors.As(err, &hierr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.HierarchyErrorResponse{
			Code:    "INVALID_HIERARCHY",
			Message: "jerarquía de empaques estructuralmente inválida",
			Report:  hierr.Report,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrCrossProduct):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CROSS_PRODUCT", Message: "los empaques pertenecen a productos distintos"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrVersionConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VERSION_CONFLICT", Message: "el recurso fue modificado por otra edición; recargue y reintente"})
	case errors.Is(err, domain.ErrPackagingInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PACKAGING_IN_USE", Message: "el empaque tiene stock registrado y no puede eliminarse"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual del recurso"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
