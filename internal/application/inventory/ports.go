package inventory

import (
	"context"

	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el delta de cantidad y la
// entrada del log se escriban de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.InventoryTransactionRepository,
	) error) error
}
