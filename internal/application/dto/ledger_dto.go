package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada para registrar una venta.
// CustomerID es opcional salvo para payment_method = CREDIT.
// DueDate solo aplica a ventas CREDIT (vencimiento del fiado generado).
type RecordSaleRequest struct {
	CustomerID    string          `json:"customer_id" validate:"omitempty,uuid"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=CASH ONLINE CREDIT"`
	DueDate       *time.Time      `json:"due_date"`
	Note          string          `json:"note" validate:"omitempty,max=300"`
}

// SaleResponse salida de una venta registrada.
type SaleResponse struct {
	ID            string          `json:"id"`
	ShopID        string          `json:"shop_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note,omitempty"`
	BorrowingID   string          `json:"borrowing_id,omitempty"` // fiado generado si fue CREDIT
}

// RecordBorrowingRequest entrada para registrar un fiado directo
// (préstamo en efectivo o fiado sin venta asociada).
type RecordBorrowingRequest struct {
	CustomerID string          `json:"customer_id" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	DueDate    *time.Time      `json:"due_date"`
	Note       string          `json:"note" validate:"omitempty,max=300"`
}

// BorrowingResponse salida de un fiado.
type BorrowingResponse struct {
	ID         string          `json:"id"`
	ShopID     string          `json:"shop_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// RecordExpenseRequest entrada para registrar un gasto.
type RecordExpenseRequest struct {
	Category string          `json:"category" validate:"required,min=1,max=100"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Note     string          `json:"note" validate:"omitempty,max=300"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID       string          `json:"id"`
	ShopID   string          `json:"shop_id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Note     string          `json:"note,omitempty"`
}

// MarkOverdueResponse resultado del barrido PENDING → OVERDUE.
type MarkOverdueResponse struct {
	Marked int `json:"marked"`
}
