package repository

import (
	"context"
	"time"

	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)

	// ListInRange devuelve los gastos con date en [start, end) (semiabierto).
	// shopID vacío = todas las tiendas.
	ListInRange(ctx context.Context, shopID string, start, end time.Time) ([]*entity.Expense, error)
}
