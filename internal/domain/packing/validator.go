package packing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// Códigos de error estructural. Un árbol con errores queda inutilizable
// para conversión, consolidación y picking hasta que se corrija.
const (
	CodeNoBaseUnit           = "NoBaseUnit"
	CodeMultipleBaseUnits    = "MultipleBaseUnits"
	CodeInvalidBaseUnit      = "InvalidBaseUnit"
	CodeUnknownParent        = "UnknownParent"
	CodeCrossProductNode     = "CrossProductNode"
	CodeCycleDetected        = "CycleDetected"
	CodeNonMonotonicQuantity = "NonMonotonicQuantity"
)

// Códigos de advertencia. Informativas: no bloquean el uso del árbol.
const (
	CodeLevelMismatch     = "LevelMismatch"
	CodeDimensionOverflow = "DimensionOverflow"
)

// DefaultMaxDepth profundidad máxima de la jerarquía (cota estructural:
// toda caminata de padres es O(profundidad)).
const DefaultMaxDepth = 10

// Issue un hallazgo de la validación, asociado al empaque que lo origina.
type Issue struct {
	Code        string `json:"code"`
	PackagingID string `json:"packaging_id,omitempty"`
	Message     string `json:"message"`
}

// ValidationReport resultado de validar el árbol de un producto.
// Los fallos estructurales se devuelven como datos, nunca como error de Go,
// para que el llamador pueda mostrarlos junto a las advertencias.
type ValidationReport struct {
	IsValid  bool    `json:"is_valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Validator valida los invariantes estructurales de una jerarquía de
// empaques. Es una función pura sobre el conjunto de nodos recibido:
// sin estado compartido, seguro para uso concurrente.
type Validator struct {
	maxDepth int
}

// NewValidator construye el validador. maxDepth <= 0 usa DefaultMaxDepth.
func NewValidator(maxDepth int) *Validator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Validator{maxDepth: maxDepth}
}

// Validate revisa el conjunto de nodos de un producto:
//  1. exactamente una unidad base (BaseUnitQuantity = 1, sin padre);
//  2. todo nodo no-base tiene padre conocido del mismo producto;
//  3. las cadenas de padres terminan en la unidad base sin ciclos y
//     dentro de la profundidad máxima;
//  4. el nivel almacenado coincide con el recalculado (advertencia si no);
//  5. BaseUnitQuantity crece estrictamente al alejarse de la unidad base;
//  6. las dimensiones del padre caben en las del nodo (advertencia si no).
func (v *Validator) Validate(productID string, nodes []*entity.PackagingNode) ValidationReport {
	report := ValidationReport{Errors: []Issue{}, Warnings: []Issue{}}

	byID := make(map[string]*entity.PackagingNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	// (1) cardinalidad de la unidad base
	var base *entity.PackagingNode
	baseCount := 0
	for _, n := range nodes {
		if !n.IsBaseUnit {
			continue
		}
		baseCount++
		base = n
		if n.ParentID != "" || !n.BaseUnitQuantity.Equal(decimal.NewFromInt(1)) {
			report.addError(CodeInvalidBaseUnit, n.ID,
				"la unidad base debe tener baseUnitQuantity = 1 y no tener padre")
		}
	}
	switch {
	case baseCount == 0:
		report.addError(CodeNoBaseUnit, "", "el producto no tiene unidad base")
	case baseCount > 1:
		report.addError(CodeMultipleBaseUnits, "",
			fmt.Sprintf("el producto tiene %d unidades base, debe tener exactamente una", baseCount))
	}

	for _, n := range nodes {
		if n.ProductID != productID {
			report.addError(CodeCrossProductNode, n.ID,
				fmt.Sprintf("el empaque pertenece al producto %s, no a %s", n.ProductID, productID))
			continue
		}
		if n.IsBaseUnit {
			continue
		}

		// (2) padre presente y del mismo producto
		if n.ParentID == "" {
			report.addError(CodeUnknownParent, n.ID, "empaque no-base sin padre")
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok {
			report.addError(CodeUnknownParent, n.ID,
				fmt.Sprintf("el padre %s no existe en el árbol", n.ParentID))
			continue
		}
		if parent.ProductID != n.ProductID {
			report.addError(CodeCrossProductNode, n.ID,
				"el padre pertenece a otro producto")
			continue
		}

		// (3) caminata hacia la unidad base, detectando ciclos y exceso de profundidad
		depth, terminated := v.walkToBase(n, byID)
		if !terminated {
			report.addError(CodeCycleDetected, n.ID,
				"la cadena de padres no termina en la unidad base (ciclo o profundidad excedida)")
			continue
		}

		// (4) nivel almacenado vs. recalculado: tolerado como advertencia
		// porque los niveles pueden venir de una caché desactualizada
		if base != nil && n.Level != base.Level+depth {
			report.addWarning(CodeLevelMismatch, n.ID,
				fmt.Sprintf("nivel almacenado %d, recalculado %d", n.Level, base.Level+depth))
		}

		// (5) anidamiento monótono: un empaque siempre representa más
		// unidades base que el empaque que contiene
		if n.BaseUnitQuantity.LessThanOrEqual(parent.BaseUnitQuantity) {
			report.addError(CodeNonMonotonicQuantity, n.ID,
				fmt.Sprintf("baseUnitQuantity %s no supera la del padre %s",
					n.BaseUnitQuantity, parent.BaseUnitQuantity))
		}

		// (6) contención dimensional: lo contenido debe caber en el contenedor
		if !n.Dimensions.IsZero() && !parent.Dimensions.IsZero() && !n.Dimensions.Fits(parent.Dimensions) {
			report.addWarning(CodeDimensionOverflow, n.ID,
				fmt.Sprintf("las dimensiones de %s no caben en %s", parent.Name, n.Name))
		}
	}

	report.IsValid = len(report.Errors) == 0
	return report
}

// walkToBase sigue la cadena de padres desde n hasta la unidad base.
// Devuelve la profundidad recorrida y false si detecta un ciclo, un padre
// inexistente o una cadena más larga que maxDepth.
func (v *Validator) walkToBase(n *entity.PackagingNode, byID map[string]*entity.PackagingNode) (int, bool) {
	visited := map[string]bool{n.ID: true}
	current := n
	depth := 0
	for !current.IsBaseUnit {
		if depth >= v.maxDepth {
			return depth, false
		}
		parent, ok := byID[current.ParentID]
		if !ok {
			return depth, false
		}
		if visited[parent.ID] {
			return depth, false
		}
		visited[parent.ID] = true
		current = parent
		depth++
	}
	return depth, true
}

func (r *ValidationReport) addError(code, packagingID, msg string) {
	r.Errors = append(r.Errors, Issue{Code: code, PackagingID: packagingID, Message: msg})
}

func (r *ValidationReport) addWarning(code, packagingID, msg string) {
	r.Warnings = append(r.Warnings, Issue{Code: code, PackagingID: packagingID, Message: msg})
}
