package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago de una venta.
const (
	PaymentMethodCash   = "CASH"
	PaymentMethodOnline = "ONLINE"
	PaymentMethodCredit = "CREDIT" // fiado: genera un Borrowing asociado
)

// Sale representa una venta. CustomerID puede estar vacío (venta anónima de
// mostrador); las ventas CREDIT siempre llevan cliente.
type Sale struct {
	ID            string
	ShopID        string
	CustomerID    string // "" si es venta sin cliente
	Amount        decimal.Decimal
	PaymentMethod string // CASH | ONLINE | CREDIT
	Date          time.Time
	Note          string
	CreatedAt     time.Time
}
