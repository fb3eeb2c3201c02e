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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. El teléfono es único por tienda.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, shop_id, name, phone, trust_score, risk_tier, is_risky, total_purchase, borrowed_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.ShopID, customer.Name, customer.Phone,
		customer.TrustScore, customer.RiskTier, customer.IsRisky,
		customer.TotalPurchase, customer.BorrowedAmount,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil, nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := selectCustomer + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get customer")
}

// GetByShopAndPhone busca un cliente por tienda y teléfono. Devuelve nil, nil si no existe.
func (r *CustomerRepo) GetByShopAndPhone(ctx context.Context, shopID, phone string) (*entity.Customer, error) {
	query := selectCustomer + ` WHERE shop_id = $1 AND phone = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, shopID, phone), "get customer by phone")
}

// ListByShop lista los clientes de una tienda con paginación.
func (r *CustomerRepo) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Customer, error) {
	query := selectCustomer + ` WHERE shop_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Update actualiza los datos editables del cliente. Los campos derivados
// (trust_score, risk_tier, is_risky, totales) se actualizan solo vía
// UpdateScore y AddTotals.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, customer.ID, customer.Name, customer.Phone, customer.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateScore persiste los campos derivados del scoring en un solo UPDATE.
func (r *CustomerRepo) UpdateScore(ctx context.Context, id string, trustScore int, riskTier string, isRisky bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE customers SET trust_score = $2, risk_tier = $3, is_risky = $4, updated_at = now() WHERE id = $1`,
		id, trustScore, riskTier, isRisky,
	)
	if err != nil {
		return fmt.Errorf("update customer score: %w", err)
	}
	return nil
}

// AddTotals incrementa los acumulados del cliente de forma atómica.
func (r *CustomerRepo) AddTotals(ctx context.Context, id string, purchaseDelta, borrowedDelta decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE customers SET total_purchase = total_purchase + $2, borrowed_amount = borrowed_amount + $3, updated_at = now() WHERE id = $1`,
		id, purchaseDelta, borrowedDelta,
	)
	if err != nil {
		return fmt.Errorf("add customer totals: %w", err)
	}
	return nil
}

const selectCustomer = `
	SELECT id, shop_id, name, phone, trust_score, risk_tier, is_risky, total_purchase, borrowed_amount, created_at, updated_at
	FROM customers`

func (r *CustomerRepo) scanOne(row pgx.Row, op string) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.ShopID, &c.Name, &c.Phone, &c.TrustScore, &c.RiskTier, &c.IsRisky,
		&c.TotalPurchase, &c.BorrowedAmount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

func (r *CustomerRepo) scanMany(rows pgx.Rows) ([]*entity.Customer, error) {
	var customers []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.ShopID, &c.Name, &c.Phone, &c.TrustScore, &c.RiskTier, &c.IsRisky,
			&c.TotalPurchase, &c.BorrowedAmount, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}
