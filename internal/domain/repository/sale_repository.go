package repository

import (
	"context"
	"time"

	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)

	// GetLatestByCustomer devuelve la venta más reciente del cliente, o
	// nil, nil si nunca ha comprado (factor de recencia del scoring).
	GetLatestByCustomer(ctx context.Context, customerID string) (*entity.Sale, error)

	// ListInRange devuelve las ventas con date en [start, end) (semiabierto).
	// shopID vacío = todas las tiendas.
	ListInRange(ctx context.Context, shopID string, start, end time.Time) ([]*entity.Sale, error)
}
