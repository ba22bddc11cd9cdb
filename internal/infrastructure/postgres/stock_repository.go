package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Empaques-api/internal/domain/entity"
	"github.com/jhoicas/Empaques-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Upsert crea o reemplaza la fila de stock de (ubicación, empaque).
// Cantidad cero se persiste igual: "sé que hay cero" no es "no sé".
func (r *StockRepo) Upsert(row *entity.StockRow) error {
	query := `
		INSERT INTO stock_rows (location_id, packaging_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (location_id, packaging_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, row.LocationID, row.PackagingID, row.Quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert stock: empaque %s no existe: %w", row.PackagingID, err)
		}
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByProduct devuelve todas las filas de stock cuyos empaques
// pertenecen al producto.
func (r *StockRepo) ListByProduct(productID string) ([]entity.StockRow, error) {
	query := `
		SELECT s.location_id, s.packaging_id, s.quantity, s.updated_at
		FROM stock_rows s
		JOIN packaging_nodes p ON p.id = s.packaging_id
		WHERE p.product_id = $1
		ORDER BY s.location_id, s.packaging_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []entity.StockRow
	for rows.Next() {
		var s entity.StockRow
		if err := rows.Scan(&s.LocationID, &s.PackagingID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock rows: %w", err)
	}
	return out, nil
}

// CountByPackaging cuenta las filas que referencian el empaque.
func (r *StockRepo) CountByPackaging(packagingID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM stock_rows WHERE packaging_id = $1`
	if err := r.q.QueryRow(context.Background(), query, packagingID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count stock by packaging: %w", err)
	}
	return count, nil
}
