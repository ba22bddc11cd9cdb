package packing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	"github.com/jhoicas/Empaques-api/internal/domain/packing"
)

func stockConsolidado(t *testing.T, nodes []*entity.PackagingNode, rows []entity.StockRow) []packing.PackagingStock {
	t.Helper()
	res, err := packing.NewConsolidator().Consolidate(testProductID, nodes, rows)
	require.NoError(t, err)
	return res.PerPackaging
}

// Ejemplo de referencia de la política voraz: stock de 3 unidades,
// 5 cajas (60) y 2 estibas (480), total 543. Solicitud de 500:
// 2 estibas (480) + 1 caja (12) + 3 unidades (3) = 495, faltan 5.
func TestOptimize_EjemploDeReferencia(t *testing.T) {
	o := packing.NewOptimizer()
	nodes := arbolCompleto()
	stock := stockConsolidado(t, nodes, filasDeStock())

	plan, err := o.Optimize(dec(500), nodes, stock)

	require.NoError(t, err)
	require.Len(t, plan.Plan, 3)

	assert.Equal(t, idEstiba, plan.Plan[0].PackagingID)
	assert.True(t, plan.Plan[0].Quantity.Equal(dec(2)))
	assert.True(t, plan.Plan[0].BaseUnits.Equal(dec(480)))

	assert.Equal(t, idCaja, plan.Plan[1].PackagingID)
	assert.True(t, plan.Plan[1].Quantity.Equal(dec(1)))
	assert.True(t, plan.Plan[1].BaseUnits.Equal(dec(12)))

	assert.Equal(t, idBase, plan.Plan[2].PackagingID)
	assert.True(t, plan.Plan[2].Quantity.Equal(dec(3)))
	assert.True(t, plan.Plan[2].BaseUnits.Equal(dec(3)))

	assert.True(t, plan.TotalPlanned.Equal(dec(495)), "planificado fue %s", plan.TotalPlanned)
	assert.True(t, plan.Remaining.Equal(dec(5)), "faltante fue %s", plan.Remaining)
	assert.False(t, plan.CanFulfill)
}

func TestOptimize_SolicitudCero(t *testing.T) {
	o := packing.NewOptimizer()
	nodes := arbolCompleto()

	plan, err := o.Optimize(dec(0), nodes, stockConsolidado(t, nodes, filasDeStock()))

	require.NoError(t, err)
	assert.Empty(t, plan.Plan)
	assert.True(t, plan.TotalPlanned.IsZero())
	assert.True(t, plan.Remaining.IsZero())
	assert.True(t, plan.CanFulfill)
}

func TestOptimize_SolicitudNegativa(t *testing.T) {
	o := packing.NewOptimizer()
	nodes := arbolCompleto()

	_, err := o.Optimize(dec(-10), nodes, stockConsolidado(t, nodes, filasDeStock()))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Sobre-solicitud: remaining = solicitado - total disponible, y el plan
// agota todo el stock.
func TestOptimize_SobreSolicitud(t *testing.T) {
	o := packing.NewOptimizer()
	nodes := arbolCompleto()

	plan, err := o.Optimize(dec(1000), nodes, stockConsolidado(t, nodes, filasDeStock()))

	require.NoError(t, err)
	assert.False(t, plan.CanFulfill)
	assert.True(t, plan.TotalPlanned.Equal(dec(543)))
	assert.True(t, plan.Remaining.Equal(dec(457)), "1000 - 543 disponibles")
}

func TestOptimize_CumplimientoExacto(t *testing.T) {
	o := packing.NewOptimizer()
	nodes := arbolCompleto()

	plan, err := o.Optimize(dec(492), nodes, stockConsolidado(t, nodes, filasDeStock()))

	require.NoError(t, err)
	assert.True(t, plan.CanFulfill)
	assert.True(t, plan.Remaining.IsZero())
	assert.True(t, plan.TotalPlanned.Equal(dec(492)), "2 estibas + 1 caja")
}

// Desempate determinista: a igual BaseUnitQuantity gana el packagingId
// menor, siempre.
func TestOptimize_DesempatePorID(t *testing.T) {
	o := packing.NewOptimizer()
	cajaA := nodoCaja()
	cajaA.ID = "PKG-CAJA-A"
	cajaB := nodoCaja()
	cajaB.ID = "PKG-CAJA-B"
	nodes := []*entity.PackagingNode{nodoBase(), cajaA, cajaB}
	rows := []entity.StockRow{
		{LocationID: "UBI-A1", PackagingID: "PKG-CAJA-B", Quantity: dec(4)},
		{LocationID: "UBI-A1", PackagingID: "PKG-CAJA-A", Quantity: dec(4)},
	}

	plan, err := o.Optimize(dec(24), nodes, stockConsolidado(t, nodes, rows))

	require.NoError(t, err)
	require.NotEmpty(t, plan.Plan)
	assert.Equal(t, "PKG-CAJA-A", plan.Plan[0].PackagingID)
	assert.True(t, plan.Plan[0].Quantity.Equal(dec(2)), "las 2 cajas salen del id menor")
	assert.True(t, plan.CanFulfill)
}

// La política es intencionalmente voraz, no un empacador óptimo: si el
// contenedor grande deja un residuo que los menores no cubren, el faltante
// queda aunque exista una combinación menor que cierre en cero.
func TestOptimize_VorazNoEsOptimo(t *testing.T) {
	o := packing.NewOptimizer()
	caja8 := nodoCaja()
	caja8.ID = "PKG-CAJA8"
	caja8.Name = "Caja x8"
	caja8.BaseUnitQuantity = dec(8)
	nodes := []*entity.PackagingNode{nodoBase(), caja8, nodoCaja()}
	rows := []entity.StockRow{
		{LocationID: "UBI-A1", PackagingID: idCaja, Quantity: dec(1)},
		{LocationID: "UBI-A1", PackagingID: "PKG-CAJA8", Quantity: dec(2)},
	}

	// 16 se cumple con 2 cajas de 8, pero la voraz toma la de 12 primero
	// y deja faltante de 4 no cubierto (sin unidades sueltas en stock).
	plan, err := o.Optimize(dec(16), nodes, stockConsolidado(t, nodes, rows))

	require.NoError(t, err)
	assert.False(t, plan.CanFulfill)
	assert.True(t, plan.Remaining.Equal(dec(4)), "faltante fue %s", plan.Remaining)
}

func TestOptimize_IgnoraEmpaquesInactivos(t *testing.T) {
	o := packing.NewOptimizer()
	estiba := nodoEstiba()
	estiba.IsActive = false
	nodes := []*entity.PackagingNode{nodoBase(), nodoCaja(), estiba}

	plan, err := o.Optimize(dec(24), nodes, stockConsolidado(t, nodes, filasDeStock()))

	require.NoError(t, err)
	for _, item := range plan.Plan {
		assert.NotEqual(t, idEstiba, item.PackagingID, "un empaque inactivo no entra al plan")
	}
	assert.True(t, plan.CanFulfill, "2 cajas cubren la solicitud")
}
