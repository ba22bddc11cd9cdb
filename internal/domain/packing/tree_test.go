package packing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	"github.com/jhoicas/Empaques-api/internal/domain/packing"
)

func TestBuildTree_AnidaDesdeLaBase(t *testing.T) {
	root, err := packing.BuildTree(arbolCompleto())

	require.NoError(t, err)
	assert.Equal(t, idBase, root.Node.ID)
	require.Len(t, root.Children, 1)
	assert.Equal(t, idCaja, root.Children[0].Node.ID)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, idEstiba, root.Children[0].Children[0].Node.ID)
}

func TestBuildTree_HijosOrdenadosPorBUQ(t *testing.T) {
	display := nodoCaja()
	display.ID = "PKG-DISPLAY"
	display.Name = "Display x6"
	display.BaseUnitQuantity = dec(6)
	display.Barcode = ""

	root, err := packing.BuildTree([]*entity.PackagingNode{nodoBase(), nodoCaja(), display})

	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "PKG-DISPLAY", root.Children[0].Node.ID)
	assert.Equal(t, idCaja, root.Children[1].Node.ID)
}

func TestBuildTree_SinBaseFalla(t *testing.T) {
	_, err := packing.BuildTree([]*entity.PackagingNode{nodoCaja(), nodoEstiba()})

	assert.ErrorIs(t, err, domain.ErrInvalidHierarchy)
}
