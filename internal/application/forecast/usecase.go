// Package forecast implementa el pronóstico de agotamiento de inventario:
// velocidad de venta (ventana móvil de 30 días), días hasta quiebre de stock
// y urgencia de reposición por producto.
package forecast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
	"github.com/jhoicas/libreta-api/pkg/logger"
)

const (
	velocityWindowDays = 30  // ventana móvil para la velocidad de venta
	restockTargetDays  = 30  // la reposición sugerida cubre 30 días de venta
	warningDays        = 7   // umbral de "warning" en días hasta quiebre
	stockoutSentinel   = 999 // centinela "sin predicción" cuando la velocidad es 0
	batchPage          = 200
)

// UseCase calcula pronósticos de agotamiento. Cada llamada lee el log de
// movimientos, calcula y cachea la velocidad sobre el producto.
type UseCase struct {
	itemRepo repository.InventoryItemRepository
	txRepo   repository.InventoryTransactionRepository
	log      *logger.Logger
	nowFn    func() time.Time
}

// NewUseCase construye el forecaster.
func NewUseCase(
	itemRepo repository.InventoryItemRepository,
	txRepo repository.InventoryTransactionRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		log:      log,
		nowFn:    time.Now,
	}
}

// Failure registra el fallo de un producto dentro del pronóstico batch.
type Failure struct {
	ID  string
	Err error
}

// BatchResult pronósticos de todos los productos más los fallos parciales.
// El orden de Forecasts es contrato: urgencia (critical, warning, normal) y
// dentro de cada urgencia, días hasta quiebre ascendente.
type BatchResult struct {
	Forecasts []dto.ItemForecastDTO
	Failures  []Failure
}

// Forecast calcula el pronóstico de un producto y cachea AvgDailySales
// sobre el registro del producto (efecto colateral de cada llamada).
// El producto debe pertenecer a la tienda indicada (ErrForbidden en otro caso).
func (uc *UseCase) Forecast(ctx context.Context, shopID, itemID string) (*dto.ItemForecastDTO, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("forecast: cargar producto: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.ShopID != shopID {
		return nil, domain.ErrForbidden
	}
	// El invariante quantity >= 0 lo garantiza el caso de uso de inventario;
	// aquí solo se verifica defensivamente.
	if item.Quantity < 0 {
		return nil, domain.ErrInvalidState
	}

	now := uc.nowFn()
	since := now.AddDate(0, 0, -velocityWindowDays)
	txs, err := uc.txRepo.ListByItemSince(ctx, itemID, since)
	if err != nil {
		return nil, fmt.Errorf("forecast: movimientos del producto: %w", err)
	}

	sold := 0
	for _, t := range txs {
		if t.Type == entity.TransactionTypeSale {
			sold += t.Quantity
		}
	}
	avg := decimal.NewFromInt(int64(sold)).
		Div(decimal.NewFromInt(velocityWindowDays))

	if err := uc.itemRepo.UpdateAvgDailySales(ctx, itemID, avg); err != nil {
		return nil, fmt.Errorf("forecast: cachear velocidad: %w", err)
	}

	return buildForecast(item, avg, now), nil
}

// buildForecast es la parte pura del cálculo: a partir del stock, la
// velocidad y el momento actual produce el DTO completo.
func buildForecast(item *entity.InventoryItem, avg decimal.Decimal, now time.Time) *dto.ItemForecastDTO {
	days := stockoutSentinel
	unbounded := true
	if avg.IsPositive() {
		days = int(decimal.NewFromInt(int64(item.Quantity)).Div(avg).Floor().IntPart())
		unbounded = false
	}

	urgency := dto.UrgencyNormal
	switch {
	case item.Quantity <= item.MinThreshold:
		// critical manda sobre el criterio de días, sin importar days
		urgency = dto.UrgencyCritical
	case !unbounded && days <= warningDays:
		urgency = dto.UrgencyWarning
	}

	restock := int(avg.Mul(decimal.NewFromInt(restockTargetDays)).Ceil().IntPart())

	return &dto.ItemForecastDTO{
		ItemID:             item.ID,
		Name:               item.Name,
		CurrentStock:       item.Quantity,
		MinThreshold:       item.MinThreshold,
		AvgDailySales:      avg,
		DaysUntilStockout:  days,
		Unbounded:          unbounded,
		PredictedRunout:    now.AddDate(0, 0, days),
		RecommendedRestock: restock,
		Urgency:            urgency,
	}
}

// ForecastAll pronostica todos los productos de la tienda. Los fallos
// individuales se registran y se devuelven aparte; nunca abortan el batch.
func (uc *UseCase) ForecastAll(ctx context.Context, shopID string) (*BatchResult, error) {
	result := &BatchResult{}
	offset := 0
	for {
		items, err := uc.itemRepo.ListByShop(ctx, shopID, batchPage, offset)
		if err != nil {
			return nil, fmt.Errorf("forecast: listar productos: %w", err)
		}
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			f, err := uc.Forecast(ctx, item.ShopID, item.ID)
			if err != nil {
				uc.log.Warn().
					Str("item_id", item.ID).
					Err(err).
					Msg("forecast batch: producto omitido")
				result.Failures = append(result.Failures, Failure{ID: item.ID, Err: err})
				continue
			}
			result.Forecasts = append(result.Forecasts, *f)
		}
		if len(items) < batchPage {
			break
		}
		offset += batchPage
	}

	sort.SliceStable(result.Forecasts, func(i, j int) bool {
		a, b := result.Forecasts[i], result.Forecasts[j]
		if ra, rb := urgencyRank(a.Urgency), urgencyRank(b.Urgency); ra != rb {
			return ra < rb
		}
		return a.DaysUntilStockout < b.DaysUntilStockout
	})
	return result, nil
}

// CriticalItems devuelve solo los productos con urgencia critical,
// conservando el orden del batch.
func (uc *UseCase) CriticalItems(ctx context.Context, shopID string) ([]dto.ItemForecastDTO, error) {
	all, err := uc.ForecastAll(ctx, shopID)
	if err != nil {
		return nil, err
	}
	critical := make([]dto.ItemForecastDTO, 0)
	for _, f := range all.Forecasts {
		if f.Urgency == dto.UrgencyCritical {
			critical = append(critical, f)
		}
	}
	return critical, nil
}

func urgencyRank(u string) int {
	switch u {
	case dto.UrgencyCritical:
		return 0
	case dto.UrgencyWarning:
		return 1
	default:
		return 2
	}
}
