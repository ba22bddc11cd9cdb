package packing

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// conversionPrecision decimales del cociente en conversiones no exactas.
// La exactitud se decide por el residuo de QuoRem, nunca por comparación
// de flotantes, así el viaje redondo con factores enteros devuelve
// exactamente la cantidad original.
const conversionPrecision = 12

// PathStep un salto del camino de auditoría de una conversión.
// Multiplier es el factor incremental aplicado en ese salto.
type PathStep struct {
	PackagingID string          `json:"packaging_id"`
	Name        string          `json:"name"`
	Multiplier  decimal.Decimal `json:"multiplier"`
}

// ConversionResult resultado de convertir una cantidad entre dos empaques.
type ConversionResult struct {
	ConvertedQuantity decimal.Decimal `json:"converted_quantity"`
	IsExact           bool            `json:"is_exact"`
	Path              []PathStep      `json:"path"`
}

// Converter convierte cantidades entre nodos del árbol de un producto.
// Se construye sobre una instantánea de nodos ya validada (ver Validator);
// es puro y seguro para uso concurrente.
type Converter struct {
	byID map[string]*entity.PackagingNode
}

// NewConverter construye el conversor sobre la instantánea de nodos.
func NewConverter(nodes []*entity.PackagingNode) *Converter {
	byID := make(map[string]*entity.PackagingNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return &Converter{byID: byID}
}

// Convert convierte quantity unidades del empaque fromID a unidades del
// empaque toID. Como cada nodo ya conoce su equivalencia en unidades base,
// la aritmética es directa: quantity * from.BUQ / to.BUQ, con residuo
// exacto vía QuoRem. El camino se produce solo para auditoría/pantalla.
func (c *Converter) Convert(quantity decimal.Decimal, fromID, toID string) (*ConversionResult, error) {
	if quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	from, ok := c.byID[fromID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	to, ok := c.byID[toID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if from.ProductID != to.ProductID {
		return nil, domain.ErrCrossProduct
	}

	baseUnits := quantity.Mul(from.BaseUnitQuantity)
	converted, rem := baseUnits.QuoRem(to.BaseUnitQuantity, conversionPrecision)

	return &ConversionResult{
		ConvertedQuantity: converted,
		IsExact:           rem.IsZero(),
		Path:              c.buildPath(from, to),
	}, nil
}

// buildPath camina de from hacia la unidad base y luego de la base hacia
// to, registrando el multiplicador incremental de cada salto. Informativo:
// no participa en la aritmética.
func (c *Converter) buildPath(from, to *entity.PackagingNode) []PathStep {
	path := []PathStep{{PackagingID: from.ID, Name: from.Name, Multiplier: decimal.NewFromInt(1)}}
	if from.ID == to.ID {
		return path
	}

	// Ascenso: de from hasta la unidad base (raíz común del producto).
	current := from
	for !current.IsBaseUnit {
		parent, ok := c.byID[current.ParentID]
		if !ok {
			break
		}
		mult, _ := current.BaseUnitQuantity.QuoRem(parent.BaseUnitQuantity, conversionPrecision)
		path = append(path, PathStep{PackagingID: parent.ID, Name: parent.Name, Multiplier: mult})
		current = parent
	}

	// Descenso: ancestros de to en orden base → to.
	var down []*entity.PackagingNode
	current = to
	for !current.IsBaseUnit {
		down = append(down, current)
		parent, ok := c.byID[current.ParentID]
		if !ok {
			break
		}
		current = parent
	}
	for i := len(down) - 1; i >= 0; i-- {
		n := down[i]
		divisor := decimal.NewFromInt(1)
		if parent, ok := c.byID[n.ParentID]; ok {
			q, _ := n.BaseUnitQuantity.QuoRem(parent.BaseUnitQuantity, conversionPrecision)
			divisor = q
		}
		mult, _ := decimal.NewFromInt(1).QuoRem(divisor, conversionPrecision)
		path = append(path, PathStep{PackagingID: n.ID, Name: n.Name, Multiplier: mult})
	}
	return path
}
