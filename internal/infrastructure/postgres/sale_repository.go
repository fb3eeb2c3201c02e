package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una nueva venta. customer_id se guarda como NULL si viene vacío.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, shop_id, customer_id, amount, payment_method, date, note, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ShopID, sale.CustomerID, sale.Amount,
		sale.PaymentMethod, sale.Date, sale.Note, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := selectSale + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get sale")
}

// ListByCustomer devuelve las ventas de un cliente, de la más antigua a la más reciente.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	query := selectSale + ` WHERE customer_id = $1 ORDER BY date ASC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list sales by customer: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// GetLatestByCustomer devuelve la venta más reciente del cliente, o nil, nil
// si nunca ha comprado.
func (r *SaleRepo) GetLatestByCustomer(ctx context.Context, customerID string) (*entity.Sale, error) {
	query := selectSale + ` WHERE customer_id = $1 ORDER BY date DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, customerID), "get latest sale")
}

// ListInRange devuelve las ventas con date en [start, end). shopID vacío = todas las tiendas.
func (r *SaleRepo) ListInRange(ctx context.Context, shopID string, start, end time.Time) ([]*entity.Sale, error) {
	query := selectSale + `
		WHERE ($1 = '' OR shop_id = $1) AND date >= $2 AND date < $3
		ORDER BY date ASC`
	rows, err := r.q.Query(ctx, query, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales in range: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

const selectSale = `
	SELECT id, shop_id, COALESCE(customer_id, ''), amount, payment_method, date, note, created_at
	FROM sales`

func (r *SaleRepo) scanOne(row pgx.Row, op string) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.ShopID, &s.CustomerID, &s.Amount, &s.PaymentMethod,
		&s.Date, &s.Note, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

func (r *SaleRepo) scanMany(rows pgx.Rows) ([]*entity.Sale, error) {
	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.ShopID, &s.CustomerID, &s.Amount, &s.PaymentMethod,
			&s.Date, &s.Note, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}
