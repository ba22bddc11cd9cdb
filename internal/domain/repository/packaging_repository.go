package repository

import "github.com/jhoicas/Empaques-api/internal/domain/entity"

// PackagingRepository define el puerto de persistencia para los nodos de
// la jerarquía de empaques (DIP). El motor nunca escribe directamente:
// las mutaciones pasan por los casos de uso, dentro de una transacción.
type PackagingRepository interface {
	Create(node *entity.PackagingNode) error
	GetByID(id string) (*entity.PackagingNode, error)
	// GetByBarcode resuelve un código de barras a su empaque activo.
	GetByBarcode(code string) (*entity.PackagingNode, error)
	ListByProduct(productID string) ([]*entity.PackagingNode, error)
	ListActive() ([]*entity.PackagingNode, error)
	// UpdateVersioned actualiza con compare-and-swap sobre version;
	// devuelve false si la versión esperada ya no coincide.
	UpdateVersioned(node *entity.PackagingNode, expectedVersion int) (bool, error)
	// DeleteVersioned elimina con compare-and-swap sobre version.
	DeleteVersioned(id string, expectedVersion int) (bool, error)
}
