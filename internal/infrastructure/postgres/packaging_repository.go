package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Empaques-api/internal/domain"
	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	"github.com/jhoicas/Empaques-api/internal/domain/repository"
)

var _ repository.PackagingRepository = (*PackagingRepo)(nil)

const packagingColumns = `id, product_id, name, barcode, base_unit_quantity, is_base_unit,
	parent_id, level, length_mm, width_mm, height_mm, is_active, version, created_at, updated_at`

// PackagingRepo implementación de PackagingRepository sobre PostgreSQL
// (usable con pool o tx).
type PackagingRepo struct {
	q Querier
}

// NewPackagingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackagingRepository(q Querier) *PackagingRepo {
	return &PackagingRepo{q: q}
}

// Create persiste un nuevo nodo de empaque.
func (r *PackagingRepo) Create(node *entity.PackagingNode) error {
	query := `
		INSERT INTO packaging_nodes (id, product_id, name, barcode, base_unit_quantity, is_base_unit,
			parent_id, level, length_mm, width_mm, height_mm, is_active, version, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		node.ID, node.ProductID, node.Name, node.Barcode, node.BaseUnitQuantity, node.IsBaseUnit,
		node.ParentID, node.Level, node.Dimensions.Length, node.Dimensions.Width, node.Dimensions.Height,
		node.IsActive, node.Version, node.CreatedAt, node.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert packaging node: %w", err)
	}
	return nil
}

// GetByID obtiene un nodo por ID. Devuelve nil si no existe.
func (r *PackagingRepo) GetByID(id string) (*entity.PackagingNode, error) {
	query := `SELECT ` + packagingColumns + ` FROM packaging_nodes WHERE id = $1`
	node, err := scanPackagingNode(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging node: %w", err)
	}
	return node, nil
}

// GetByBarcode resuelve un código de barras a su empaque activo.
func (r *PackagingRepo) GetByBarcode(code string) (*entity.PackagingNode, error) {
	query := `SELECT ` + packagingColumns + ` FROM packaging_nodes WHERE barcode = $1 AND is_active`
	node, err := scanPackagingNode(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging node by barcode: %w", err)
	}
	return node, nil
}

// ListByProduct lista todos los nodos del producto, activos o no: la
// validación y la conversión necesitan el árbol completo.
func (r *PackagingRepo) ListByProduct(productID string) ([]*entity.PackagingNode, error) {
	query := `SELECT ` + packagingColumns + ` FROM packaging_nodes WHERE product_id = $1 ORDER BY level, id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list packaging nodes: %w", err)
	}
	defer rows.Close()
	return scanPackagingNodes(rows)
}

// ListActive lista los nodos activos de todos los productos (para el
// índice global de códigos de barras).
func (r *PackagingRepo) ListActive() ([]*entity.PackagingNode, error) {
	query := `SELECT ` + packagingColumns + ` FROM packaging_nodes WHERE is_active ORDER BY product_id, level, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active packaging nodes: %w", err)
	}
	defer rows.Close()
	return scanPackagingNodes(rows)
}

// UpdateVersioned actualiza con compare-and-swap sobre version. Devuelve
// false si la versión esperada ya no coincide (edición concurrente).
func (r *PackagingRepo) UpdateVersioned(node *entity.PackagingNode, expectedVersion int) (bool, error) {
	query := `
		UPDATE packaging_nodes
		SET name = $1, barcode = NULLIF($2, ''), base_unit_quantity = $3, parent_id = NULLIF($4, ''),
			level = $5, length_mm = $6, width_mm = $7, height_mm = $8, is_active = $9,
			version = version + 1, updated_at = now()
		WHERE id = $10 AND version = $11`
	tag, err := r.q.Exec(context.Background(), query,
		node.Name, node.Barcode, node.BaseUnitQuantity, node.ParentID,
		node.Level, node.Dimensions.Length, node.Dimensions.Width, node.Dimensions.Height,
		node.IsActive, node.ID, expectedVersion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		return false, fmt.Errorf("update packaging node: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteVersioned elimina con compare-and-swap sobre version. La guarda de
// stock referente se verifica en el caso de uso; la FK de stock_rows es la
// red de seguridad final.
func (r *PackagingRepo) DeleteVersioned(id string, expectedVersion int) (bool, error) {
	query := `DELETE FROM packaging_nodes WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(context.Background(), query, id, expectedVersion)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrPackagingInUse
		}
		return false, fmt.Errorf("delete packaging node: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanPackagingNode(row pgx.Row) (*entity.PackagingNode, error) {
	var n entity.PackagingNode
	var barcode, parentID *string
	err := row.Scan(
		&n.ID, &n.ProductID, &n.Name, &barcode, &n.BaseUnitQuantity, &n.IsBaseUnit,
		&parentID, &n.Level, &n.Dimensions.Length, &n.Dimensions.Width, &n.Dimensions.Height,
		&n.IsActive, &n.Version, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		n.Barcode = *barcode
	}
	if parentID != nil {
		n.ParentID = *parentID
	}
	return &n, nil
}

func scanPackagingNodes(rows pgx.Rows) ([]*entity.PackagingNode, error) {
	var out []*entity.PackagingNode
	for rows.Next() {
		node, err := scanPackagingNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan packaging node: %w", err)
		}
		out = append(out, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packaging nodes: %w", err)
	}
	return out, nil
}
