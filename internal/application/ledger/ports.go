package ledger

import (
	"context"

	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que venta + fiado + totales del
// cliente se escriban de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		borrowingRepo repository.BorrowingRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
