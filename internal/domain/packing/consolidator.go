package packing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// PackagingStock stock acumulado de un empaque, en unidades base.
// AvailablePackages son las unidades enteras de ese empaque que el total
// acumulado alcanza a formar; RemainingBaseUnits es el sobrante en
// unidades base que no completa una unidad más.
type PackagingStock struct {
	PackagingID        string          `json:"packaging_id"`
	Name               string          `json:"name"`
	Level              int             `json:"level"`
	BaseUnitQuantity   decimal.Decimal `json:"base_unit_quantity"`
	TotalBaseUnits     decimal.Decimal `json:"total_base_units"`
	AvailablePackages  decimal.Decimal `json:"available_packages"`
	RemainingBaseUnits decimal.Decimal `json:"remaining_base_units"`
}

// ConsolidatedStock instantánea derivada del stock total de un producto.
// Sin estado: se recalcula bajo demanda desde las filas y el árbol.
type ConsolidatedStock struct {
	ProductID      string          `json:"product_id"`
	TotalBaseUnits decimal.Decimal `json:"total_base_units"`
	LocationsCount int             `json:"locations_count"`
	ItemsCount     int             `json:"items_count"`
}

// ConsolidationResult desglose por empaque más el total consolidado.
type ConsolidationResult struct {
	PerPackaging []PackagingStock  `json:"per_packaging"`
	Consolidated ConsolidatedStock `json:"consolidated"`
}

// Consolidator agrega filas de stock dispersas en ubicaciones y empaques
// a totales en unidades base. Puro sobre las instantáneas recibidas.
type Consolidator struct{}

// NewConsolidator construye el consolidador.
func NewConsolidator() *Consolidator {
	return &Consolidator{}
}

// Consolidate convierte cada fila a unidades base (quantity * BUQ del
// empaque) y acumula por empaque y por producto. El orden de iteración no
// afecta los totales (suma pura); la lista resultante se ordena por nivel
// descendente y packagingId ascendente para que sea reproducible.
func (c *Consolidator) Consolidate(productID string, nodes []*entity.PackagingNode, rows []entity.StockRow) (*ConsolidationResult, error) {
	byID := make(map[string]*entity.PackagingNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	totals := make(map[string]decimal.Decimal)
	locations := make(map[string]bool)
	grandTotal := decimal.Zero

	for _, row := range rows {
		node, ok := byID[row.PackagingID]
		if !ok || node.ProductID != productID {
			return nil, fmt.Errorf("empaque %s: %w", row.PackagingID, domain.ErrNotFound)
		}
		if row.Quantity.IsNegative() {
			return nil, fmt.Errorf("cantidad negativa en %s/%s: %w", row.LocationID, row.PackagingID, domain.ErrInvalidInput)
		}
		baseUnits := row.Quantity.Mul(node.BaseUnitQuantity)
		totals[row.PackagingID] = totals[row.PackagingID].Add(baseUnits)
		grandTotal = grandTotal.Add(baseUnits)
		locations[row.LocationID] = true
	}

	perPackaging := make([]PackagingStock, 0, len(totals))
	for packagingID, total := range totals {
		node := byID[packagingID]
		available, remaining := total.QuoRem(node.BaseUnitQuantity, 0)
		perPackaging = append(perPackaging, PackagingStock{
			PackagingID:        packagingID,
			Name:               node.Name,
			Level:              node.Level,
			BaseUnitQuantity:   node.BaseUnitQuantity,
			TotalBaseUnits:     total,
			AvailablePackages:  available,
			RemainingBaseUnits: remaining,
		})
	}
	sort.Slice(perPackaging, func(i, j int) bool {
		if perPackaging[i].Level != perPackaging[j].Level {
			return perPackaging[i].Level > perPackaging[j].Level
		}
		return perPackaging[i].PackagingID < perPackaging[j].PackagingID
	})

	return &ConsolidationResult{
		PerPackaging: perPackaging,
		Consolidated: ConsolidatedStock{
			ProductID:      productID,
			TotalBaseUnits: grandTotal,
			LocationsCount: len(locations),
			ItemsCount:     len(rows),
		},
	}, nil
}
