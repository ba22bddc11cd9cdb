package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dimensions dimensiones físicas de un empaque en milímetros.
type Dimensions struct {
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
}

// IsZero indica si no se registraron dimensiones (todas en cero).
func (d Dimensions) IsZero() bool {
	return d.Length.IsZero() && d.Width.IsZero() && d.Height.IsZero()
}

// Fits indica si other cabe dentro de estas dimensiones, eje por eje.
// No considera rotaciones: esa decisión es de negocio y por eso el
// desborde dimensional se reporta como advertencia, no como error.
func (d Dimensions) Fits(other Dimensions) bool {
	return other.Length.LessThanOrEqual(d.Length) &&
		other.Width.LessThanOrEqual(d.Width) &&
		other.Height.LessThanOrEqual(d.Height)
}

// PackagingNode un nivel de la jerarquía de empaques de un producto
// (ej. unidad → caja → estiba). El árbol tiene como raíz la unidad base
// (BaseUnitQuantity = 1, sin padre); cada nodo no-base apunta con ParentID
// al empaque inmediatamente menor que contiene.
type PackagingNode struct {
	ID               string
	ProductID        string
	Name             string
	Barcode          string // vacío = sin código asignado
	BaseUnitQuantity decimal.Decimal // unidades base contenidas en 1 unidad de este empaque
	IsBaseUnit       bool
	ParentID         string // vacío solo en la unidad base
	Level            int    // 0 en la unidad base; puede venir desactualizado (ver validador)
	Dimensions       Dimensions
	IsActive         bool
	Version          int // concurrencia optimista en mutaciones del árbol
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
