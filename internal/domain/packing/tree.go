package packing

import (
	"sort"

	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
)

// TreeNode un nodo del árbol anidado de empaques, sin nada de presentación:
// el estado de vista (expandir/colapsar, selección) es del llamador.
type TreeNode struct {
	Node     *entity.PackagingNode
	Children []*TreeNode
}

// BuildTree arma la estructura anidada a partir del conjunto plano de
// nodos, con la unidad base como raíz. Los hijos de cada nodo se ordenan
// por BaseUnitQuantity ascendente (desempate por id) para que el recorrido
// sea reproducible. Requiere un árbol estructuralmente válido; sin unidad
// base devuelve ErrInvalidHierarchy.
func BuildTree(nodes []*entity.PackagingNode) (*TreeNode, error) {
	var root *TreeNode
	byID := make(map[string]*TreeNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = &TreeNode{Node: n, Children: []*TreeNode{}}
	}
	for _, n := range nodes {
		if n.IsBaseUnit {
			root = byID[n.ID]
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok {
			return nil, domain.ErrInvalidHierarchy
		}
		parent.Children = append(parent.Children, byID[n.ID])
	}
	if root == nil {
		return nil, domain.ErrInvalidHierarchy
	}
	sortChildren(root)
	return root, nil
}

func sortChildren(t *TreeNode) {
	sort.Slice(t.Children, func(i, j int) bool {
		cmp := t.Children[i].Node.BaseUnitQuantity.Cmp(t.Children[j].Node.BaseUnitQuantity)
		if cmp != 0 {
			return cmp < 0
		}
		return t.Children[i].Node.ID < t.Children[j].Node.ID
	})
	for _, child := range t.Children {
		sortChildren(child)
	}
}
