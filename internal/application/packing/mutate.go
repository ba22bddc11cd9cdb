package packing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Empaques-api/internal/application/dto"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Empaques-api/internal/domain/packing"
	"github.com/jhoicas/Empaques-api/internal/domain/repository"
)

// TreeMutationUseCase mutaciones estructurales del árbol de empaques.
// Toda mutación revalida el árbol resultante completo antes de persistir,
// corre dentro de una transacción y usa compare-and-swap sobre version
// (concurrencia optimista: las escrituras son raras, los bloqueos no
// compensan).
type TreeMutationUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	validator   *domainpacking.Validator
	cache       *SnapshotCache
}

// NewTreeMutationUseCase construye el caso de uso.
func NewTreeMutationUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	validator *domainpacking.Validator,
	cache *SnapshotCache,
) *TreeMutationUseCase {
	return &TreeMutationUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		validator:   validator,
		cache:       cache,
	}
}

// AddNode agrega un nodo al árbol del producto. El árbol resultante se
// valida completo; si queda estructuralmente inválido no se persiste nada.
func (uc *TreeMutationUseCase) AddNode(ctx context.Context, productID string, in dto.CreatePackagingNodeRequest) (*dto.PackagingNodeResponse, error) {
	if in.Name == "" || !in.BaseUnitQuantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	node := &entity.PackagingNode{
		ID:               uuid.New().String(),
		ProductID:        productID,
		Name:             in.Name,
		Barcode:          in.Barcode,
		BaseUnitQuantity: in.BaseUnitQuantity,
		IsBaseUnit:       in.IsBaseUnit,
		ParentID:         in.ParentID,
		Level:            in.Level,
		Dimensions: entity.Dimensions{
			Length: in.Dimensions.Length,
			Width:  in.Dimensions.Width,
			Height: in.Dimensions.Height,
		},
		IsActive:  true,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.Run(ctx, func(packagingRepo repository.PackagingRepository, _ repository.StockRepository) error {
		current, err := packagingRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		report := uc.validator.Validate(productID, append(current, node))
		if !report.IsValid {
			return &HierarchyError{Report: report}
		}
		return packagingRepo.Create(node)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(productID)
	resp := dto.FromPackagingNode(node)
	return &resp, nil
}

// UpdateNode actualiza un nodo con compare-and-swap sobre version y
// revalidación del árbol completo resultante.
func (uc *TreeMutationUseCase) UpdateNode(ctx context.Context, id string, in dto.UpdatePackagingNodeRequest) (*dto.PackagingNodeResponse, error) {
	if in.Name == "" || !in.BaseUnitQuantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.PackagingNode
	err := uc.txRunner.Run(ctx, func(packagingRepo repository.PackagingRepository, _ repository.StockRepository) error {
		node, err := packagingRepo.GetByID(id)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}

		candidate := *node
		candidate.Name = in.Name
		candidate.Barcode = in.Barcode
		candidate.BaseUnitQuantity = in.BaseUnitQuantity
		candidate.ParentID = in.ParentID
		candidate.Level = in.Level
		candidate.Dimensions = entity.Dimensions{
			Length: in.Dimensions.Length,
			Width:  in.Dimensions.Width,
			Height: in.Dimensions.Height,
		}
		if in.IsActive != nil {
			candidate.IsActive = *in.IsActive
		}
		candidate.UpdatedAt = time.Now()

		current, err := packagingRepo.ListByProduct(node.ProductID)
		if err != nil {
			return err
		}
		next := make([]*entity.PackagingNode, 0, len(current))
		for _, n := range current {
			if n.ID == id {
				next = append(next, &candidate)
			} else {
				next = append(next, n)
			}
		}
		report := uc.validator.Validate(node.ProductID, next)
		if !report.IsValid {
			return &HierarchyError{Report: report}
		}

		ok, err := packagingRepo.UpdateVersioned(&candidate, in.Version)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrVersionConflict
		}
		candidate.Version = in.Version + 1
		updated = &candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(updated.ProductID)
	resp := dto.FromPackagingNode(updated)
	return &resp, nil
}

// DeleteNode elimina un nodo. Guardas: ninguna fila de stock puede
// referenciarlo (Conflict) y el árbol restante debe seguir siendo válido.
func (uc *TreeMutationUseCase) DeleteNode(ctx context.Context, id string, expectedVersion int) error {
	var productID string
	err := uc.txRunner.Run(ctx, func(packagingRepo repository.PackagingRepository, stockRepo repository.StockRepository) error {
		node, err := packagingRepo.GetByID(id)
		if err != nil {
			return err
		}
		if node == nil {
			return domain.ErrNotFound
		}
		productID = node.ProductID

		refs, err := stockRepo.CountByPackaging(id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return domain.ErrPackagingInUse
		}

		current, err := packagingRepo.ListByProduct(node.ProductID)
		if err != nil {
			return err
		}
		remaining := make([]*entity.PackagingNode, 0, len(current))
		for _, n := range current {
			if n.ID != id {
				remaining = append(remaining, n)
			}
		}
		if len(remaining) > 0 {
			report := uc.validator.Validate(node.ProductID, remaining)
			if !report.IsValid {
				return &HierarchyError{Report: report}
			}
		}

		ok, err := packagingRepo.DeleteVersioned(id, expectedVersion)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(productID)
	return nil
}
