// Package reporting implementa el agregador financiero periódico: resúmenes
// diarios y semanales de ventas, gastos y fiados. Es el único motor de
// analítica que no escribe nada (solo lectura).
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

const weekDays = 7

// UseCase genera los resúmenes financieros. Para un día cerrado (pasado),
// llamadas repetidas sobre los mismos datos devuelven resultados idénticos,
// con la excepción documentada de OverdueCount (foto "a hoy"). El resumen de
// hoy cambia a medida que entran datos; eso es esperado.
type UseCase struct {
	saleRepo      repository.SaleRepository
	expenseRepo   repository.ExpenseRepository
	borrowingRepo repository.BorrowingRepository
	nowFn         func() time.Time
}

// NewUseCase construye el agregador.
func NewUseCase(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	borrowingRepo repository.BorrowingRepository,
) *UseCase {
	return &UseCase{
		saleRepo:      saleRepo,
		expenseRepo:   expenseRepo,
		borrowingRepo: borrowingRepo,
		nowFn:         time.Now,
	}
}

// DailySummary calcula el resumen financiero del día calendario de `date`
// (hora local). La ventana es semiabierta: [00:00 del día, 00:00 del
// siguiente). shopID vacío agrega todas las tiendas.
func (uc *UseCase) DailySummary(ctx context.Context, shopID string, date time.Time) (*dto.DailySummaryDTO, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	now := uc.nowFn()

	sales, err := uc.saleRepo.ListInRange(ctx, shopID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: ventas: %w", err)
	}
	expenses, err := uc.expenseRepo.ListInRange(ctx, shopID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: gastos: %w", err)
	}
	borrowings, err := uc.borrowingRepo.ListInRange(ctx, shopID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: fiados: %w", err)
	}
	// Foto "a hoy": no se acota a la ventana del reporte, incluso para días
	// pasados (ver nota en el DTO).
	overdueCount, err := uc.borrowingRepo.CountOverdueAsOf(ctx, shopID, now)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: fiados vencidos: %w", err)
	}

	var totalSales, totalExpenses, collections decimal.Decimal
	for _, s := range sales {
		totalSales = totalSales.Add(s.Amount)
	}
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}

	// newBorrowings: fiados creados en la ventana que siguen PENDING.
	// collections: fiados creados en la ventana que ya están PAID (no los
	// pagados en la ventana; el modelo solo conoce la fecha de creación).
	newBorrowings := 0
	for _, b := range borrowings {
		switch b.Status {
		case entity.BorrowingStatusPending:
			newBorrowings++
		case entity.BorrowingStatusPaid:
			collections = collections.Add(b.Amount)
		}
	}

	netProfit := totalSales.Sub(totalExpenses)
	summary := &dto.DailySummaryDTO{
		Date:          dayStart.Format("2006-01-02"),
		TotalSales:    totalSales.Round(2),
		TotalExpenses: totalExpenses.Round(2),
		NetProfit:     netProfit.Round(2),
		NewBorrowings: newBorrowings,
		Collections:   collections.Round(2),
		OverdueCount:  overdueCount,
	}
	summary.SummaryText = renderSummaryText(summary)
	return summary, nil
}

// WeeklySummary agrega los resúmenes diarios de [hoy-6, hoy]. Las siete
// consultas van en paralelo; cada una cubre una ventana independiente, así
// que el resultado no depende del orden de llegada.
func (uc *UseCase) WeeklySummary(ctx context.Context, shopID string) (*dto.WeeklySummaryDTO, error) {
	now := uc.nowFn()
	start := now.AddDate(0, 0, -(weekDays - 1))

	type dayResult struct {
		idx     int
		summary *dto.DailySummaryDTO
		err     error
	}
	ch := make(chan dayResult, weekDays)
	for i := 0; i < weekDays; i++ {
		go func(i int) {
			s, err := uc.DailySummary(ctx, shopID, start.AddDate(0, 0, i))
			ch <- dayResult{idx: i, summary: s, err: err}
		}(i)
	}

	days := make([]dto.DailySummaryDTO, weekDays)
	for i := 0; i < weekDays; i++ {
		r := <-ch
		if r.err != nil {
			return nil, fmt.Errorf("reporte semanal: día %d: %w", r.idx, r.err)
		}
		days[r.idx] = *r.summary
	}

	var totalSales, totalExpenses, totalProfit, totalCollections decimal.Decimal
	for _, d := range days {
		totalSales = totalSales.Add(d.TotalSales)
		totalExpenses = totalExpenses.Add(d.TotalExpenses)
		totalProfit = totalProfit.Add(d.NetProfit)
		totalCollections = totalCollections.Add(d.Collections)
	}

	// Mejor y peor día por ventas; en empate gana la primera ocurrencia
	// en orden de fecha.
	best, worst := &days[0], &days[0]
	for i := 1; i < weekDays; i++ {
		if days[i].TotalSales.GreaterThan(best.TotalSales) {
			best = &days[i]
		}
		if days[i].TotalSales.LessThan(worst.TotalSales) {
			worst = &days[i]
		}
	}

	return &dto.WeeklySummaryDTO{
		StartDate:         days[0].Date,
		EndDate:           days[weekDays-1].Date,
		TotalSales:        totalSales.Round(2),
		TotalExpenses:     totalExpenses.Round(2),
		TotalProfit:       totalProfit.Round(2),
		TotalCollections:  totalCollections.Round(2),
		AverageDailySales: totalSales.Div(decimal.NewFromInt(weekDays)).Round(2),
		BestDay:           best,
		WorstDay:          worst,
		Days:              days,
	}, nil
}

// renderSummaryText plantilla fija legible del resumen (presentacional).
func renderSummaryText(s *dto.DailySummaryDTO) string {
	return fmt.Sprintf(
		"Resumen %s: ventas %s, gastos %s, ganancia neta %s, fiados nuevos %d, cobros %s, fiados vencidos %d",
		s.Date,
		s.TotalSales.StringFixed(2),
		s.TotalExpenses.StringFixed(2),
		s.NetProfit.StringFixed(2),
		s.NewBorrowings,
		s.Collections.StringFixed(2),
		s.OverdueCount,
	)
}
