package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// Snapshot instantánea portátil de un producto: árbol de empaques más
// filas de stock, en un archivo JSON. Permite correr el motor sin base de
// datos (auditorías, soporte, pruebas de bodega).
type Snapshot struct {
	ProductID string         `json:"product_id"`
	Nodes     []snapshotNode `json:"nodes"`
	Stock     []snapshotRow  `json:"stock"`
}

type snapshotNode struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Barcode          string          `json:"barcode,omitempty"`
	BaseUnitQuantity decimal.Decimal `json:"base_unit_quantity"`
	IsBaseUnit       bool            `json:"is_base_unit"`
	ParentID         string          `json:"parent_id,omitempty"`
	Level            int             `json:"level"`
	IsActive         *bool           `json:"is_active,omitempty"`
}

type snapshotRow struct {
	LocationID  string          `json:"location_id"`
	PackagingID string          `json:"packaging_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// loadSnapshot lee y mapea el archivo de instantánea. is_active omitido
// se interpreta como activo.
func loadSnapshot(path string) (*Snapshot, []*entity.PackagingNode, []entity.StockRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("leer instantánea: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, nil, fmt.Errorf("parsear instantánea: %w", err)
	}
	if snap.ProductID == "" {
		return nil, nil, nil, fmt.Errorf("la instantánea no declara product_id")
	}

	nodes := make([]*entity.PackagingNode, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		active := true
		if n.IsActive != nil {
			active = *n.IsActive
		}
		nodes = append(nodes, &entity.PackagingNode{
			ID:               n.ID,
			ProductID:        snap.ProductID,
			Name:             n.Name,
			Barcode:          n.Barcode,
			BaseUnitQuantity: n.BaseUnitQuantity,
			IsBaseUnit:       n.IsBaseUnit,
			ParentID:         n.ParentID,
			Level:            n.Level,
			IsActive:         active,
		})
	}
	rows := make([]entity.StockRow, 0, len(snap.Stock))
	for _, r := range snap.Stock {
		rows = append(rows, entity.StockRow{
			LocationID:  r.LocationID,
			PackagingID: r.PackagingID,
			Quantity:    r.Quantity,
		})
	}
	return &snap, nodes, rows, nil
}
