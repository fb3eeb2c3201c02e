package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID devuelve nil, nil si el cliente no existe.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByShopAndPhone(ctx context.Context, shopID, phone string) (*entity.Customer, error)
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error

	// UpdateScore persiste los campos derivados del motor de scoring en un
	// solo UPDATE atómico (nunca read-modify-write de la fila completa).
	// Llamadas concurrentes para el mismo cliente compiten por cuál valor
	// calculado queda último, pero no pueden pisar columnas no relacionadas.
	UpdateScore(ctx context.Context, id string, trustScore int, riskTier string, isRisky bool) error

	// AddTotals incrementa TotalPurchase y/o BorrowedAmount de forma atómica
	// (UPDATE ... SET x = x + $n). Deltas negativos descuentan.
	AddTotals(ctx context.Context, id string, purchaseDelta, borrowedDelta decimal.Decimal) error
}
