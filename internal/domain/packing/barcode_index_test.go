package packing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	"github.com/jhoicas/Empaques-api/internal/domain/packing"
)

func TestBarcodeIndex_CodigoConocido(t *testing.T) {
	idx := packing.NewBarcodeIndex(arbolCompleto())

	node, err := idx.Lookup("7701234000022")

	require.NoError(t, err)
	assert.Equal(t, idCaja, node.ID)
}

func TestBarcodeIndex_CodigoDesconocido(t *testing.T) {
	idx := packing.NewBarcodeIndex(arbolCompleto())

	_, err := idx.Lookup("0000000000000")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un empaque inactivo no se indexa: escanear su código es NotFound.
func TestBarcodeIndex_IgnoraInactivos(t *testing.T) {
	caja := nodoCaja()
	caja.IsActive = false
	idx := packing.NewBarcodeIndex([]*entity.PackagingNode{nodoBase(), caja})

	_, err := idx.Lookup(caja.Barcode)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, idx.Len())
}

func TestBarcodeIndex_IgnoraSinCodigo(t *testing.T) {
	caja := nodoCaja()
	caja.Barcode = ""
	idx := packing.NewBarcodeIndex([]*entity.PackagingNode{nodoBase(), caja})

	assert.Equal(t, 1, idx.Len())
}
