package packing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// PlanItem una línea del plan de picking: cuántas unidades enteras de un
// empaque tomar y su equivalente en unidades base.
type PlanItem struct {
	PackagingID string          `json:"packaging_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	BaseUnits   decimal.Decimal `json:"base_units"`
}

// PickingPlan descomposición determinista de una cantidad solicitada.
// El faltante se reporta en Remaining con CanFulfill=false: stock
// insuficiente no es un error, permite ofrecer cumplimiento parcial.
type PickingPlan struct {
	Plan         []PlanItem      `json:"picking_plan"`
	TotalPlanned decimal.Decimal `json:"total_planned"`
	Remaining    decimal.Decimal `json:"remaining"`
	CanFulfill   bool            `json:"can_fulfill"`
}

// Optimizer calcula el plan de picking con la política voraz
// contenedor-más-grande-primero. La política es parte del contrato: los
// llamadores dependen de su salida exacta y reproducible, así que no debe
// reemplazarse por un empacador "más inteligente" sin cambio de contrato
// (aunque exista una combinación menor que anule el faltante).
type Optimizer struct{}

// NewOptimizer construye el optimizador.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize descompone requestedBaseUnits usando el stock consolidado por
// empaque. Orden de recorrido: BaseUnitQuantity descendente, desempate por
// PackagingID ascendente. En cada empaque toma
// min(unidades disponibles, floor(faltante / BUQ)); la unidad base
// (BUQ = 1) recoge cualquier residuo hasta donde alcance su stock.
// Los empaques inactivos nunca entran al plan.
func (o *Optimizer) Optimize(requestedBaseUnits decimal.Decimal, nodes []*entity.PackagingNode, perPackaging []PackagingStock) (*PickingPlan, error) {
	if requestedBaseUnits.IsNegative() {
		return nil, fmt.Errorf("cantidad solicitada negativa: %w", domain.ErrInvalidInput)
	}

	plan := &PickingPlan{
		Plan:         []PlanItem{},
		TotalPlanned: decimal.Zero,
		Remaining:    decimal.Zero,
		CanFulfill:   true,
	}
	if requestedBaseUnits.IsZero() {
		return plan, nil
	}

	byID := make(map[string]*entity.PackagingNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	stock := make([]PackagingStock, len(perPackaging))
	copy(stock, perPackaging)
	sort.Slice(stock, func(i, j int) bool {
		cmp := stock[i].BaseUnitQuantity.Cmp(stock[j].BaseUnitQuantity)
		if cmp != 0 {
			return cmp > 0
		}
		return stock[i].PackagingID < stock[j].PackagingID
	})

	remaining := requestedBaseUnits
	for _, line := range stock {
		if remaining.IsZero() {
			break
		}
		node, ok := byID[line.PackagingID]
		if !ok {
			return nil, fmt.Errorf("empaque %s: %w", line.PackagingID, domain.ErrNotFound)
		}
		if !node.IsActive {
			continue
		}
		fits, _ := remaining.QuoRem(line.BaseUnitQuantity, 0)
		take := decimal.Min(line.AvailablePackages, fits)
		if !take.IsPositive() {
			continue
		}
		baseUnits := take.Mul(line.BaseUnitQuantity)
		plan.Plan = append(plan.Plan, PlanItem{
			PackagingID: line.PackagingID,
			Name:        line.Name,
			Quantity:    take,
			BaseUnits:   baseUnits,
		})
		remaining = remaining.Sub(baseUnits)
	}

	plan.TotalPlanned = requestedBaseUnits.Sub(remaining)
	plan.Remaining = remaining
	plan.CanFulfill = remaining.IsZero()
	return plan, nil
}
