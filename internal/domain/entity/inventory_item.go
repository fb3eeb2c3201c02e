package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un producto del inventario de la tienda.
//
// Quantity nunca baja de cero: lo garantiza el caso de uso de inventario al
// aplicar transacciones, no el forecaster (que solo lee).
// AvgDailySales es un campo cacheado que mantiene el forecaster en cada
// llamada (ventana móvil de 30 días); siempre ≥ 0.
type InventoryItem struct {
	ID            string
	ShopID        string
	Name          string
	Unit          string // ej. "und", "kg", "lt"
	Quantity      int
	MinThreshold  int
	AvgDailySales decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
