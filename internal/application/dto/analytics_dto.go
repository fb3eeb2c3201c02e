package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Scoring ───────────────────────────────────────────────────────────────────

// FactorScoreDTO aporte individual de un factor al trust score.
// Adjustment = RawScore - Weight (cuánto sumó o restó frente a la base 100).
type FactorScoreDTO struct {
	Name       string          `json:"name"`
	Weight     int             `json:"weight"`
	RawScore   decimal.Decimal `json:"raw_score"`
	Adjustment decimal.Decimal `json:"adjustment"`
}

// TrustScoreDTO resultado del motor de scoring para un cliente.
type TrustScoreDTO struct {
	CustomerID string           `json:"customer_id"`
	Score      int              `json:"score"` // 0–100
	RiskTier   string           `json:"risk_tier"`
	IsRisky    bool             `json:"is_risky"`
	Breakdown  []FactorScoreDTO `json:"breakdown"`
	ComputedAt time.Time        `json:"computed_at"`
}

// ── Forecast ──────────────────────────────────────────────────────────────────

// Niveles de urgencia de reposición.
const (
	UrgencyNormal   = "normal"
	UrgencyWarning  = "warning"
	UrgencyCritical = "critical"
)

// ItemForecastDTO predicción de agotamiento para un producto.
//
// Cuando AvgDailySales es cero no hay predicción posible: DaysUntilStockout
// lleva el centinela 999 y Unbounded es true; no tratar 999 como días reales.
type ItemForecastDTO struct {
	ItemID             string          `json:"item_id"`
	Name               string          `json:"name"`
	CurrentStock       int             `json:"current_stock"`
	MinThreshold       int             `json:"min_threshold"`
	AvgDailySales      decimal.Decimal `json:"avg_daily_sales"`
	DaysUntilStockout  int             `json:"days_until_stockout"`
	Unbounded          bool            `json:"unbounded"`
	PredictedRunout    time.Time       `json:"predicted_runout_date"`
	RecommendedRestock int             `json:"recommended_restock_amount"`
	Urgency            string          `json:"urgency"` // normal | warning | critical
}

// ── Reporting ─────────────────────────────────────────────────────────────────

// DailySummaryDTO resumen financiero de un día calendario.
//
// OverdueCount es una foto "a hoy" (status OVERDUE y due_date <= ahora), no
// está acotado a la ventana del día: un resumen histórico no es reproducible
// en ese campo.
type DailySummaryDTO struct {
	Date          string          `json:"date"` // YYYY-MM-DD
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	NewBorrowings int             `json:"new_borrowings"`
	Collections   decimal.Decimal `json:"collections_made"`
	OverdueCount  int             `json:"overdue_count"`
	SummaryText   string          `json:"summary_text"`
}

// WeeklySummaryDTO resumen de los últimos 7 días ([hoy-6, hoy]).
type WeeklySummaryDTO struct {
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	TotalSales        decimal.Decimal   `json:"total_sales"`
	TotalExpenses     decimal.Decimal   `json:"total_expenses"`
	TotalProfit       decimal.Decimal   `json:"total_profit"`
	TotalCollections  decimal.Decimal   `json:"total_collections"`
	AverageDailySales decimal.Decimal   `json:"average_daily_sales"`
	BestDay           *DailySummaryDTO  `json:"best_day,omitempty"`
	WorstDay          *DailySummaryDTO  `json:"worst_day,omitempty"`
	Days              []DailySummaryDTO `json:"days"`
}
