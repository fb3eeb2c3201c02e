package repository

import (
	"context"
	"time"

	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto para el log append-only de
// movimientos de inventario. No hay Update ni Delete: las correcciones se
// registran como movimientos ADJUSTMENT.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error

	// ListByItemSince devuelve los movimientos de un producto con
	// created_at >= since, ordenados por created_at ascendente.
	ListByItemSince(ctx context.Context, itemID string, since time.Time) ([]*entity.InventoryTransaction, error)

	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryTransaction, error)
}
