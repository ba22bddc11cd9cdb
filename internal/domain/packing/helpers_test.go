package packing_test

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: árbol unidad → caja → estiba usado en todo el paquete.
//
//	Base   (buq 1,   nivel 0, raíz)
//	Caja   (buq 12,  nivel 1, padre Base)
//	Estiba (buq 240, nivel 2, padre Caja)
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "PROD-001"
	idBase        = "PKG-BASE"
	idCaja        = "PKG-CAJA"
	idEstiba      = "PKG-ESTIBA"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decimalFrom(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func dims(l, w, h int64) entity.Dimensions {
	return entity.Dimensions{Length: dec(l), Width: dec(w), Height: dec(h)}
}

func nodoBase() *entity.PackagingNode {
	return &entity.PackagingNode{
		ID: idBase, ProductID: testProductID, Name: "Unidad",
		Barcode: "7701234000015", BaseUnitQuantity: dec(1),
		IsBaseUnit: true, Level: 0,
		Dimensions: dims(100, 60, 40), IsActive: true,
	}
}

func nodoCaja() *entity.PackagingNode {
	return &entity.PackagingNode{
		ID: idCaja, ProductID: testProductID, Name: "Caja x12",
		Barcode: "7701234000022", BaseUnitQuantity: dec(12),
		ParentID: idBase, Level: 1,
		Dimensions: dims(400, 300, 200), IsActive: true,
	}
}

func nodoEstiba() *entity.PackagingNode {
	return &entity.PackagingNode{
		ID: idEstiba, ProductID: testProductID, Name: "Estiba x240",
		Barcode: "7701234000039", BaseUnitQuantity: dec(240),
		ParentID: idCaja, Level: 2,
		Dimensions: dims(1200, 1000, 1500), IsActive: true,
	}
}

func arbolCompleto() []*entity.PackagingNode {
	return []*entity.PackagingNode{nodoBase(), nodoCaja(), nodoEstiba()}
}
