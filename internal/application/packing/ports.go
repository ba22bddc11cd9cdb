package packing

import (
	"context"

	"github.com/jhoicas/Empaques-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Serializa las mutaciones estructurales del
// árbol: una edición concurrente no puede dejar visible un ciclo o una
// unidad base duplicada a medio escribir.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		packagingRepo repository.PackagingRepository,
		stockRepo repository.StockRepository,
	) error) error
}
