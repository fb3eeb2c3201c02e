package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del puerto InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de persistencia para productos.
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un nuevo producto. El nombre es único por tienda.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, shop_id, name, unit, quantity, min_threshold, avg_daily_sales, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.ShopID, item.Name, item.Unit, item.Quantity,
		item.MinThreshold, item.AvgDailySales, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := selectInventoryItem + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get inventory item")
}

// ListByShop lista los productos de una tienda con paginación.
func (r *InventoryItemRepo) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := selectInventoryItem + ` WHERE shop_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.ShopID, &it.Name, &it.Unit, &it.Quantity,
			&it.MinThreshold, &it.AvgDailySales, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update actualiza los datos editables del producto. Quantity se maneja vía
// UpdateQuantity y AvgDailySales vía UpdateAvgDailySales.
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, unit = $3, min_threshold = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, item.ID, item.Name, item.Unit, item.MinThreshold, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate bloquea la fila del producto dentro de la transacción actual.
// Devuelve nil, nil si no existe.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := selectInventoryItem + ` WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "lock inventory item")
}

// UpdateQuantity persiste la nueva cantidad del producto.
func (r *InventoryItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// UpdateAvgDailySales actualiza solo la columna cacheada del forecaster.
func (r *InventoryItemRepo) UpdateAvgDailySales(ctx context.Context, id string, avg decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET avg_daily_sales = $2, updated_at = now() WHERE id = $1`,
		id, avg,
	)
	if err != nil {
		return fmt.Errorf("update avg daily sales: %w", err)
	}
	return nil
}

const selectInventoryItem = `
	SELECT id, shop_id, name, unit, quantity, min_threshold, avg_daily_sales, created_at, updated_at
	FROM inventory_items`

func (r *InventoryItemRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.ShopID, &it.Name, &it.Unit, &it.Quantity,
		&it.MinThreshold, &it.AvgDailySales, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}
