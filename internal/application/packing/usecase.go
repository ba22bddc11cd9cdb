package packing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Empaques-api/internal/application/dto"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Empaques-api/internal/domain/packing"
	"github.com/jhoicas/Empaques-api/internal/domain/repository"
)

// EngineUseCase fachada de lectura del motor de empaques: jerarquía,
// validación, conversión, consolidación, picking y escaneo. Todas las
// operaciones son puras sobre instantáneas; la única mutación aquí es el
// upsert de filas de stock (colaborador de almacenamiento, no del árbol).
type EngineUseCase struct {
	packagingRepo repository.PackagingRepository
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	validator     *domainpacking.Validator
	consolidator  *domainpacking.Consolidator
	optimizer     *domainpacking.Optimizer
	cache         *SnapshotCache
}

// NewEngineUseCase construye la fachada del motor.
func NewEngineUseCase(
	packagingRepo repository.PackagingRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	validator *domainpacking.Validator,
	cache *SnapshotCache,
) *EngineUseCase {
	return &EngineUseCase{
		packagingRepo: packagingRepo,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		validator:     validator,
		consolidator:  domainpacking.NewConsolidator(),
		optimizer:     domainpacking.NewOptimizer(),
		cache:         cache,
	}
}

// snapshot devuelve la instantánea de nodos del producto, desde caché si
// sigue vigente.
func (uc *EngineUseCase) snapshot(productID string) ([]*entity.PackagingNode, error) {
	if nodes, ok := uc.cache.GetTree(productID); ok {
		return nodes, nil
	}
	nodes, err := uc.packagingRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	uc.cache.PutTree(productID, nodes)
	return nodes, nil
}

// validSnapshot devuelve la instantánea solo si el árbol es
// estructuralmente válido; los errores estructurales bloquean conversión,
// consolidación y picking hasta corregirse.
func (uc *EngineUseCase) validSnapshot(productID string) ([]*entity.PackagingNode, error) {
	nodes, err := uc.snapshot(productID)
	if err != nil {
		return nil, err
	}
	report := uc.validator.Validate(productID, nodes)
	if !report.IsValid {
		return nil, &HierarchyError{Report: report}
	}
	return nodes, nil
}

func (uc *EngineUseCase) requireProduct(productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

// GetHierarchy devuelve el árbol anidado del producto, validado en
// lectura. Un árbol inválido devuelve HierarchyError con el reporte.
func (uc *EngineUseCase) GetHierarchy(productID string) (*dto.HierarchyResponse, error) {
	if err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	nodes, err := uc.snapshot(productID)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, domain.ErrNotFound
	}
	report := uc.validator.Validate(productID, nodes)
	if !report.IsValid {
		return nil, &HierarchyError{Report: report}
	}
	tree, err := domainpacking.BuildTree(nodes)
	if err != nil {
		return nil, err
	}
	return &dto.HierarchyResponse{
		ProductID: productID,
		Tree:      dto.FromTree(tree),
		Report:    report,
	}, nil
}

// ValidateHierarchy devuelve el reporte completo, sea válido o no.
func (uc *EngineUseCase) ValidateHierarchy(productID string) (*domainpacking.ValidationReport, error) {
	if err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	nodes, err := uc.snapshot(productID)
	if err != nil {
		return nil, err
	}
	report := uc.validator.Validate(productID, nodes)
	return &report, nil
}

// Convert convierte una cantidad entre dos empaques del mismo producto.
func (uc *EngineUseCase) Convert(quantity decimal.Decimal, fromID, toID string) (*domainpacking.ConversionResult, error) {
	from, err := uc.packagingRepo.GetByID(fromID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, domain.ErrNotFound
	}
	to, err := uc.packagingRepo.GetByID(toID)
	if err != nil {
		return nil, err
	}
	if to == nil {
		return nil, domain.ErrNotFound
	}
	if from.ProductID != to.ProductID {
		return nil, domain.ErrCrossProduct
	}
	nodes, err := uc.validSnapshot(from.ProductID)
	if err != nil {
		return nil, err
	}
	return domainpacking.NewConverter(nodes).Convert(quantity, fromID, toID)
}

// GetStockConsolidated consolida las filas de stock del producto en
// unidades base, con desglose por empaque.
func (uc *EngineUseCase) GetStockConsolidated(productID string) (*domainpacking.ConsolidationResult, error) {
	if err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	nodes, err := uc.validSnapshot(productID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return uc.consolidator.Consolidate(productID, nodes, rows)
}

// OptimizePicking calcula el plan voraz determinista para la cantidad
// solicitada en unidades base. Stock insuficiente no es error: se reporta
// con CanFulfill=false y el faltante en Remaining.
func (uc *EngineUseCase) OptimizePicking(productID string, requestedBaseUnits decimal.Decimal) (*domainpacking.PickingPlan, error) {
	if requestedBaseUnits.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	nodes, err := uc.validSnapshot(productID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	consolidated, err := uc.consolidator.Consolidate(productID, nodes, rows)
	if err != nil {
		return nil, err
	}
	return uc.optimizer.Optimize(requestedBaseUnits, nodes, consolidated.PerPackaging)
}

// ScanBarcode resuelve un código escaneado a su empaque activo, usando el
// índice derivado global (reconstruido ante cualquier mutación del árbol).
func (uc *EngineUseCase) ScanBarcode(code string) (*dto.PackagingNodeResponse, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	index, ok := uc.cache.GetBarcodeIndex()
	if !ok {
		nodes, err := uc.packagingRepo.ListActive()
		if err != nil {
			return nil, err
		}
		index = domainpacking.NewBarcodeIndex(nodes)
		uc.cache.PutBarcodeIndex(index)
	}
	node, err := index.Lookup(code)
	if err != nil {
		return nil, err
	}
	resp := dto.FromPackagingNode(node)
	return &resp, nil
}

// UpsertStock registra o actualiza una fila de stock. El empaque debe
// existir; cantidades negativas se rechazan.
func (uc *EngineUseCase) UpsertStock(in dto.UpsertStockRequest) error {
	if in.LocationID == "" || in.PackagingID == "" || in.Quantity.IsNegative() {
		return domain.ErrInvalidInput
	}
	node, err := uc.packagingRepo.GetByID(in.PackagingID)
	if err != nil {
		return err
	}
	if node == nil {
		return domain.ErrNotFound
	}
	return uc.stockRepo.Upsert(&entity.StockRow{
		LocationID:  in.LocationID,
		PackagingID: in.PackagingID,
		Quantity:    in.Quantity,
		UpdatedAt:   time.Now(),
	})
}

// ListStock filas de stock crudas del producto, en unidades de cada empaque.
func (uc *EngineUseCase) ListStock(productID string) ([]dto.StockRowResponse, error) {
	if err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	rows, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StockRowResponse{
			LocationID:  row.LocationID,
			PackagingID: row.PackagingID,
			Quantity:    row.Quantity,
		})
	}
	return out, nil
}
