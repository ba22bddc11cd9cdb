package repository

import "github.com/jhoicas/Empaques-api/internal/domain/entity"

// StockRepository define el puerto para las filas de stock por
// ubicación+empaque. El motor las consume como instantánea efímera.
type StockRepository interface {
	Upsert(row *entity.StockRow) error
	ListByProduct(productID string) ([]entity.StockRow, error)
	// CountByPackaging cuenta las filas que referencian un empaque;
	// usado por la guarda de borrado (Conflict si > 0).
	CountByPackaging(packagingID string) (int, error)
}
