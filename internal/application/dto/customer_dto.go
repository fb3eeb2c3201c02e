package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

// UpdateCustomerRequest entrada para actualizar datos de contacto.
type UpdateCustomerRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone string `json:"phone" validate:"omitempty,min=7,max=20"`
}

// CustomerResponse salida de un cliente, incluye los campos derivados
// del motor de scoring.
type CustomerResponse struct {
	ID             string          `json:"id"`
	ShopID         string          `json:"shop_id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	TrustScore     int             `json:"trust_score"`
	RiskTier       string          `json:"risk_tier"`
	IsRisky        bool            `json:"is_risky"`
	TotalPurchase  decimal.Decimal `json:"total_purchase"`
	BorrowedAmount decimal.Decimal `json:"borrowed_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}
