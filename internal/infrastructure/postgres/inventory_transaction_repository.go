package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación del log de movimientos de inventario
// sobre PostgreSQL. Append-only: solo INSERT y SELECT.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador de persistencia para movimientos.
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create registra un movimiento de inventario.
func (r *InventoryTransactionRepo) Create(ctx context.Context, tx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, shop_id, item_id, type, quantity, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.ShopID, tx.ItemID, tx.Type, tx.Quantity, tx.Note, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// ListByItemSince devuelve los movimientos de un producto desde una fecha,
// ordenados del más antiguo al más reciente.
func (r *InventoryTransactionRepo) ListByItemSince(ctx context.Context, itemID string, since time.Time) ([]*entity.InventoryTransaction, error) {
	query := selectInventoryTransaction + `
		WHERE item_id = $1 AND created_at >= $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, itemID, since)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions since: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByItem devuelve los movimientos de un producto con paginación, del más
// reciente al más antiguo.
func (r *InventoryTransactionRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := selectInventoryTransaction + `
		WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

const selectInventoryTransaction = `
	SELECT id, shop_id, item_id, type, quantity, note, created_at
	FROM inventory_transactions`

func (r *InventoryTransactionRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryTransaction, error) {
	var txs []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.ShopID, &t.ItemID, &t.Type, &t.Quantity, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}
