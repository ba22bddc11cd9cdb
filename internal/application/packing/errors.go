package packing

import (
	"github.com/jhoicas/Empaques-api/internal/domain"
	domainpacking "github.com/jhoicas/Empaques-api/internal/domain/packing"
)

// HierarchyError error estructural con el reporte de validación adjunto,
// para que el handler lo devuelva como datos junto al estado HTTP.
type HierarchyError struct {
	Report domainpacking.ValidationReport
}

func (e *HierarchyError) Error() string {
	return domain.ErrInvalidHierarchy.Error()
}

func (e *HierarchyError) Unwrap() error {
	return domain.ErrInvalidHierarchy
}
