package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRow existencia de un empaque en una ubicación. La cantidad está
// expresada en unidades del propio empaque, no en unidades base.
type StockRow struct {
	LocationID  string
	PackagingID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
