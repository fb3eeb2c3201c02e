package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de riesgo derivados del trust score.
const (
	RiskTierLow    = "low"
	RiskTierMedium = "medium"
	RiskTierHigh   = "high"
)

// Customer representa un cliente de la tienda con su historial de crédito (fiado).
//
// TrustScore (0–100, default 100), RiskTier e IsRisky son campos derivados:
// los mantiene el motor de scoring, nunca se editan a mano.
// Invariante: IsRisky == (RiskTier == "high").
type Customer struct {
	ID             string
	ShopID         string
	Name           string
	Phone          string
	TrustScore     int             // 0–100
	RiskTier       string          // low | medium | high
	IsRisky        bool
	TotalPurchase  decimal.Decimal // compras acumuladas
	BorrowedAmount decimal.Decimal // fiado pendiente de pago
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
