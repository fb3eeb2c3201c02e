package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un fiado (crédito de tienda).
const (
	BorrowingStatusPending = "PENDING"
	BorrowingStatusPaid    = "PAID"
	BorrowingStatusOverdue = "OVERDUE"
)

// Borrowing representa un fiado: crédito otorgado a un cliente con fecha
// de vencimiento opcional.
//
// Transiciones válidas de estado (cualquier otra es ErrInvalidState):
//
//	PENDING → PAID     (pago registrado)
//	PENDING → OVERDUE  (venció la fecha, marcado por MarkOverdue)
//	OVERDUE → PAID     (pago registrado tarde)
type Borrowing struct {
	ID         string
	ShopID     string
	CustomerID string
	Amount     decimal.Decimal
	Date       time.Time  // fecha de creación del fiado
	DueDate    *time.Time // opcional
	Status     string     // PENDING | PAID | OVERDUE
	PaidAt     *time.Time
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanTransitionTo indica si el cambio de estado es una transición válida.
func (b *Borrowing) CanTransitionTo(status string) bool {
	switch b.Status {
	case BorrowingStatusPending:
		return status == BorrowingStatusPaid || status == BorrowingStatusOverdue
	case BorrowingStatusOverdue:
		return status == BorrowingStatusPaid
	default:
		return false
	}
}
