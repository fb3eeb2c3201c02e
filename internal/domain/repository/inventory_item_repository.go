package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para productos.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error

	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una tx para
	// aplicar deltas de cantidad sin condiciones de carrera.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)

	// UpdateQuantity persiste la nueva cantidad (usar tras GetForUpdate).
	UpdateQuantity(ctx context.Context, id string, quantity int) error

	// UpdateAvgDailySales actualiza solo la columna cacheada por el
	// forecaster, en un UPDATE atómico de esa columna. Recalculos
	// concurrentes compiten por cuál promedio queda último; ninguna otra
	// columna se ve afectada.
	UpdateAvgDailySales(ctx context.Context, id string, avg decimal.Decimal) error
}
