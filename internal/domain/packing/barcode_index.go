package packing

import (
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// BarcodeIndex índice de lectura derivado: código de barras → empaque.
// Solo indexa empaques activos con código asignado. No se muta: se
// reconstruye completo cada vez que cambia el árbol dueño.
type BarcodeIndex struct {
	byCode map[string]*entity.PackagingNode
}

// NewBarcodeIndex construye el índice desde la instantánea de nodos.
func NewBarcodeIndex(nodes []*entity.PackagingNode) *BarcodeIndex {
	byCode := make(map[string]*entity.PackagingNode)
	for _, n := range nodes {
		if n.IsActive && n.Barcode != "" {
			byCode[n.Barcode] = n
		}
	}
	return &BarcodeIndex{byCode: byCode}
}

// Lookup resuelve un código escaneado a su empaque. Códigos desconocidos
// o de empaques inactivos devuelven ErrNotFound.
func (i *BarcodeIndex) Lookup(code string) (*entity.PackagingNode, error) {
	node, ok := i.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return node, nil
}

// Len cantidad de códigos indexados.
func (i *BarcodeIndex) Len() int {
	return len(i.byCode)
}
