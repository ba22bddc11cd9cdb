package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrInvalidHierarchy = errors.New("jerarquía de empaques inválida")
	ErrCrossProduct     = errors.New("los empaques pertenecen a productos distintos")
	ErrPackagingInUse   = errors.New("el empaque tiene stock asociado")
	ErrVersionConflict  = errors.New("la versión del empaque cambió, recargue e intente de nuevo")
)
