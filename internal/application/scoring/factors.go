package scoring

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// CustomerHistory es la foto inmutable del historial de un cliente sobre la
// que se evalúan los factores. Se arma una sola vez por cálculo: los
// factores son funciones puras de esta estructura.
type CustomerHistory struct {
	Borrowings    []*entity.Borrowing
	TotalPurchase decimal.Decimal
	LatestSale    *entity.Sale // nil si nunca ha comprado
	Now           time.Time
}

// factor es una regla de la tabla de scoring: devuelve un puntaje crudo en
// [0, Weight]. El aporte al score final es RawScore - Weight, de modo que un
// factor "perfecto" no resta nada frente a la base 100.
type factor struct {
	Name   string
	Weight int
	Score  func(h CustomerHistory) decimal.Decimal
}

// factores en orden fijo; el orden es parte del contrato del breakdown.
var factors = []factor{
	{Name: "payment_history", Weight: 40, Score: paymentHistoryScore},
	{Name: "overdue_penalty", Weight: 20, Score: overduePenaltyScore},
	{Name: "purchase_volume", Weight: 20, Score: purchaseVolumeScore},
	{Name: "borrowing_frequency", Weight: 10, Score: borrowingFrequencyScore},
	{Name: "recency", Weight: 10, Score: recencyScore},
}

// paymentHistoryScore (peso 40): proporción de fiados pagados.
// Sin fiados no hay historial que castigar: se retienen los 40 completos.
func paymentHistoryScore(h CustomerHistory) decimal.Decimal {
	total := len(h.Borrowings)
	if total == 0 {
		return decimal.NewFromInt(40)
	}
	paid := 0
	for _, b := range h.Borrowings {
		if b.Status == entity.BorrowingStatusPaid {
			paid++
		}
	}
	return decimal.NewFromInt(40).
		Mul(decimal.NewFromInt(int64(paid))).
		Div(decimal.NewFromInt(int64(total)))
}

// overduePenaltyScore (peso 20, castigo puro): -10 por fiado vencido, tope 20.
// Solo cuentan fiados cuyo status ya es OVERDUE con due_date en el pasado;
// un PENDING con fecha vencida no se infiere como vencido (la transición la
// hace MarkOverdue).
func overduePenaltyScore(h CustomerHistory) decimal.Decimal {
	overdue := 0
	for _, b := range h.Borrowings {
		if b.Status == entity.BorrowingStatusOverdue && b.DueDate != nil && b.DueDate.Before(h.Now) {
			overdue++
		}
	}
	penalty := 10 * overdue
	if penalty > 20 {
		penalty = 20
	}
	return decimal.NewFromInt(int64(20 - penalty))
}

// purchaseVolumeScore (peso 20, por tramos): a más volumen de compra
// acumulado, más puntaje retenido.
func purchaseVolumeScore(h CustomerHistory) decimal.Decimal {
	tp := h.TotalPurchase
	switch {
	case tp.GreaterThan(decimal.NewFromInt(50000)):
		return decimal.NewFromInt(20)
	case tp.GreaterThan(decimal.NewFromInt(10000)):
		return decimal.NewFromInt(15)
	case tp.GreaterThan(decimal.NewFromInt(5000)):
		return decimal.NewFromInt(10)
	case tp.GreaterThan(decimal.Zero):
		return decimal.NewFromInt(5)
	default:
		return decimal.Zero
	}
}

// borrowingFrequencyScore (peso 10, por tramos, inverso): fiar mucho resta.
func borrowingFrequencyScore(h CustomerHistory) decimal.Decimal {
	n := len(h.Borrowings)
	switch {
	case n > 10:
		return decimal.NewFromInt(5)
	case n > 5:
		return decimal.NewFromInt(7)
	default:
		return decimal.NewFromInt(10)
	}
}

// recencyScore (peso 10, por tramos): días desde la última venta.
// Un cliente sin ventas queda en el tramo neutro bajo (3).
func recencyScore(h CustomerHistory) decimal.Decimal {
	if h.LatestSale == nil {
		return decimal.NewFromInt(3)
	}
	days := int(h.Now.Sub(h.LatestSale.Date).Hours() / 24)
	switch {
	case days < 7:
		return decimal.NewFromInt(10)
	case days < 30:
		return decimal.NewFromInt(8)
	case days < 90:
		return decimal.NewFromInt(5)
	default:
		return decimal.NewFromInt(2)
	}
}

// riskTierFor clasifica un score en su nivel de riesgo.
func riskTierFor(score int) string {
	switch {
	case score < 40:
		return entity.RiskTierHigh
	case score < 70:
		return entity.RiskTierMedium
	default:
		return entity.RiskTierLow
	}
}
