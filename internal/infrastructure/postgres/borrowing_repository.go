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

var _ repository.BorrowingRepository = (*BorrowingRepo)(nil)

// BorrowingRepo implementación del puerto BorrowingRepository sobre PostgreSQL (usable con pool o tx).
type BorrowingRepo struct {
	q Querier
}

// NewBorrowingRepository construye el adaptador de persistencia para fiados.
func NewBorrowingRepository(q Querier) *BorrowingRepo {
	return &BorrowingRepo{q: q}
}

// Create persiste un nuevo fiado.
func (r *BorrowingRepo) Create(ctx context.Context, borrowing *entity.Borrowing) error {
	query := `
		INSERT INTO borrowings (id, shop_id, customer_id, amount, date, due_date, status, paid_at, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		borrowing.ID, borrowing.ShopID, borrowing.CustomerID, borrowing.Amount,
		borrowing.Date, borrowing.DueDate, borrowing.Status, borrowing.PaidAt,
		borrowing.Note, borrowing.CreatedAt, borrowing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert borrowing: %w", err)
	}
	return nil
}

// GetByID obtiene un fiado por ID. Devuelve nil, nil si no existe.
func (r *BorrowingRepo) GetByID(ctx context.Context, id string) (*entity.Borrowing, error) {
	query := selectBorrowing + ` WHERE id = $1`
	var b entity.Borrowing
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ShopID, &b.CustomerID, &b.Amount, &b.Date, &b.DueDate,
		&b.Status, &b.PaidAt, &b.Note, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get borrowing: %w", err)
	}
	return &b, nil
}

// ListByCustomer devuelve todo el historial de fiados de un cliente, del más
// antiguo al más reciente.
func (r *BorrowingRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Borrowing, error) {
	query := selectBorrowing + ` WHERE customer_id = $1 ORDER BY date ASC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list borrowings by customer: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListInRange devuelve los fiados creados en [start, end). shopID vacío = todas las tiendas.
func (r *BorrowingRepo) ListInRange(ctx context.Context, shopID string, start, end time.Time) ([]*entity.Borrowing, error) {
	query := selectBorrowing + `
		WHERE ($1 = '' OR shop_id = $1) AND date >= $2 AND date < $3
		ORDER BY date ASC`
	rows, err := r.q.Query(ctx, query, shopID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list borrowings in range: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListPendingDueBefore devuelve fiados PENDING vencidos antes de asOf.
func (r *BorrowingRepo) ListPendingDueBefore(ctx context.Context, shopID string, asOf time.Time) ([]*entity.Borrowing, error) {
	query := selectBorrowing + `
		WHERE ($1 = '' OR shop_id = $1) AND status = $2 AND due_date IS NOT NULL AND due_date < $3
		ORDER BY due_date ASC`
	rows, err := r.q.Query(ctx, query, shopID, entity.BorrowingStatusPending, asOf)
	if err != nil {
		return nil, fmt.Errorf("list pending borrowings due: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// CountOverdueAsOf cuenta fiados OVERDUE con due_date <= asOf.
func (r *BorrowingRepo) CountOverdueAsOf(ctx context.Context, shopID string, asOf time.Time) (int, error) {
	query := `
		SELECT count(*) FROM borrowings
		WHERE ($1 = '' OR shop_id = $1) AND status = $2 AND due_date IS NOT NULL AND due_date <= $3`
	var count int
	err := r.q.QueryRow(ctx, query, shopID, entity.BorrowingStatusOverdue, asOf).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overdue borrowings: %w", err)
	}
	return count, nil
}

// UpdateStatus persiste un cambio de estado del fiado.
func (r *BorrowingRepo) UpdateStatus(ctx context.Context, id, status string, paidAt *time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE borrowings SET status = $2, paid_at = $3, updated_at = now() WHERE id = $1`,
		id, status, paidAt,
	)
	if err != nil {
		return fmt.Errorf("update borrowing status: %w", err)
	}
	return nil
}

const selectBorrowing = `
	SELECT id, shop_id, customer_id, amount, date, due_date, status, paid_at, note, created_at, updated_at
	FROM borrowings`

func (r *BorrowingRepo) scanMany(rows pgx.Rows) ([]*entity.Borrowing, error) {
	var borrowings []*entity.Borrowing
	for rows.Next() {
		var b entity.Borrowing
		if err := rows.Scan(
			&b.ID, &b.ShopID, &b.CustomerID, &b.Amount, &b.Date, &b.DueDate,
			&b.Status, &b.PaidAt, &b.Note, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan borrowing: %w", err)
		}
		borrowings = append(borrowings, &b)
	}
	return borrowings, rows.Err()
}
