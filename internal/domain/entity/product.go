package entity

import "time"

// Product representa un producto o SKU del catálogo. Es el dueño de su
// jerarquía de empaques; ningún nodo se comparte entre productos.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
