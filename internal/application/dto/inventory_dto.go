package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un producto de inventario.
type CreateItemRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Unit         string `json:"unit" validate:"omitempty,max=20"`
	Quantity     int    `json:"quantity" validate:"min=0"`
	MinThreshold int    `json:"min_threshold" validate:"min=0"`
}

// UpdateItemRequest entrada para actualizar nombre/umbral de un producto.
type UpdateItemRequest struct {
	Name         string `json:"name" validate:"omitempty,min=1,max=200"`
	Unit         string `json:"unit" validate:"omitempty,max=20"`
	MinThreshold *int   `json:"min_threshold" validate:"omitempty,min=0"`
}

// ItemResponse salida de un producto.
type ItemResponse struct {
	ID            string          `json:"id"`
	ShopID        string          `json:"shop_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit,omitempty"`
	Quantity      int             `json:"quantity"`
	MinThreshold  int             `json:"min_threshold"`
	AvgDailySales decimal.Decimal `json:"avg_daily_sales"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RegisterTransactionRequest entrada para registrar un movimiento de inventario.
type RegisterTransactionRequest struct {
	Type     string `json:"type" validate:"required,oneof=SALE RESTOCK ADJUSTMENT LOSS"`
	Quantity int    `json:"quantity" validate:"required"`
	Note     string `json:"note" validate:"omitempty,max=300"`
}

// TransactionResponse salida de un movimiento registrado.
type TransactionResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Remaining int       `json:"remaining"` // cantidad resultante del producto
}
