package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto de la tienda. La categoría es texto libre
// (ej. "arriendo", "servicios", "transporte").
type Expense struct {
	ID        string
	ShopID    string
	Category  string
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
	CreatedAt time.Time
}
