package repository

import (
	"context"
	"time"

	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// BorrowingRepository define el puerto de persistencia para fiados.
type BorrowingRepository interface {
	Create(ctx context.Context, borrowing *entity.Borrowing) error
	// GetByID devuelve nil, nil si el fiado no existe.
	GetByID(ctx context.Context, id string) (*entity.Borrowing, error)

	// ListByCustomer devuelve el historial completo de fiados de un cliente,
	// ordenado por fecha ascendente. Es el insumo del motor de scoring.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Borrowing, error)

	// ListInRange devuelve los fiados creados en [start, end) (semiabierto
	// sobre date). shopID vacío = todas las tiendas.
	ListInRange(ctx context.Context, shopID string, start, end time.Time) ([]*entity.Borrowing, error)

	// ListPendingDueBefore devuelve fiados PENDING con due_date < asOf
	// (candidatos a marcarse OVERDUE).
	ListPendingDueBefore(ctx context.Context, shopID string, asOf time.Time) ([]*entity.Borrowing, error)

	// CountOverdueAsOf cuenta fiados con status OVERDUE y due_date <= asOf.
	// Es una foto "a hoy": no está acotada a ninguna ventana de reporte.
	CountOverdueAsOf(ctx context.Context, shopID string, asOf time.Time) (int, error)

	// UpdateStatus persiste un cambio de estado (y PaidAt si aplica).
	UpdateStatus(ctx context.Context, id, status string, paidAt *time.Time) error
}
