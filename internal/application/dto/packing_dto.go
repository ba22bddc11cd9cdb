package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	"github.com/jhoicas/Empaques-api/internal/domain/packing"
)

// DimensionsDTO dimensiones físicas en milímetros.
type DimensionsDTO struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// PackagingNodeResponse un nodo de la jerarquía en respuestas.
type PackagingNodeResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Barcode          string          `json:"barcode,omitempty"`
	BaseUnitQuantity decimal.Decimal `json:"base_unit_quantity"`
	IsBaseUnit       bool            `json:"is_base_unit"`
	ParentID         string          `json:"parent_id,omitempty"`
	Level            int             `json:"level"`
	Dimensions       DimensionsDTO   `json:"dimensions"`
	IsActive         bool            `json:"is_active"`
	Version          int             `json:"version"`
}

// PackagingTreeNode nodo anidado para GET .../packaging.
type PackagingTreeNode struct {
	PackagingNodeResponse
	Children []PackagingTreeNode `json:"children"`
}

// HierarchyResponse árbol anidado más el reporte de validación de lectura.
type HierarchyResponse struct {
	ProductID string                   `json:"product_id"`
	Tree      PackagingTreeNode        `json:"tree"`
	Report    packing.ValidationReport `json:"report"`
}

// CreatePackagingNodeRequest body para POST /api/products/:id/packaging.
type CreatePackagingNodeRequest struct {
	Name             string          `json:"name"`
	Barcode          string          `json:"barcode,omitempty"`
	BaseUnitQuantity decimal.Decimal `json:"base_unit_quantity"`
	IsBaseUnit       bool            `json:"is_base_unit"`
	ParentID         string          `json:"parent_id,omitempty"`
	Level            int             `json:"level"`
	Dimensions       DimensionsDTO   `json:"dimensions"`
}

// UpdatePackagingNodeRequest body para PUT /api/packaging/:id.
// Version es la versión leída por el cliente (concurrencia optimista).
type UpdatePackagingNodeRequest struct {
	Name             string          `json:"name"`
	Barcode          string          `json:"barcode,omitempty"`
	BaseUnitQuantity decimal.Decimal `json:"base_unit_quantity"`
	ParentID         string          `json:"parent_id,omitempty"`
	Level            int             `json:"level"`
	Dimensions       DimensionsDTO   `json:"dimensions"`
	IsActive         *bool           `json:"is_active,omitempty"`
	Version          int             `json:"version"`
}

// DeletePackagingNodeRequest query/body para DELETE /api/packaging/:id.
type DeletePackagingNodeRequest struct {
	Version int `json:"version" query:"version"`
}

// ConvertRequest body para POST /api/packaging/convert.
type ConvertRequest struct {
	Quantity        decimal.Decimal `json:"quantity"`
	FromPackagingID string          `json:"from_packaging_id"`
	ToPackagingID   string          `json:"to_packaging_id"`
}

// OptimizePickingRequest body para POST /api/products/:id/picking/optimize.
type OptimizePickingRequest struct {
	RequestedBaseUnits decimal.Decimal `json:"requested_base_units"`
}

// UpsertStockRequest body para POST /api/stock.
type UpsertStockRequest struct {
	LocationID  string          `json:"location_id"`
	PackagingID string          `json:"packaging_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockRowResponse una fila de stock en respuestas.
type StockRowResponse struct {
	LocationID  string          `json:"location_id"`
	PackagingID string          `json:"packaging_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// HierarchyErrorResponse error 422 con el reporte estructural completo,
// para que el cliente pueda mostrar cada problema del árbol.
type HierarchyErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Report  packing.ValidationReport `json:"report"`
}

// FromPackagingNode mapea la entidad al DTO de respuesta.
func FromPackagingNode(n *entity.PackagingNode) PackagingNodeResponse {
	return PackagingNodeResponse{
		ID:               n.ID,
		ProductID:        n.ProductID,
		Name:             n.Name,
		Barcode:          n.Barcode,
		BaseUnitQuantity: n.BaseUnitQuantity,
		IsBaseUnit:       n.IsBaseUnit,
		ParentID:         n.ParentID,
		Level:            n.Level,
		Dimensions: DimensionsDTO{
			Length: n.Dimensions.Length,
			Width:  n.Dimensions.Width,
			Height: n.Dimensions.Height,
		},
		IsActive: n.IsActive,
		Version:  n.Version,
	}
}

// FromTree mapea el árbol de dominio al DTO anidado.
func FromTree(t *packing.TreeNode) PackagingTreeNode {
	out := PackagingTreeNode{
		PackagingNodeResponse: FromPackagingNode(t.Node),
		Children:              make([]PackagingTreeNode, 0, len(t.Children)),
	}
	for _, child := range t.Children {
		out.Children = append(out.Children, FromTree(child))
	}
	return out
}
