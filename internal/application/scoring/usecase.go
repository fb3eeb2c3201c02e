// Package scoring implementa el motor de confianza/riesgo de clientes: un
// score compuesto 0–100 calculado a partir del historial de fiados y ventas,
// con cinco factores ponderados independientes (ver factors.go).
package scoring

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
	"github.com/jhoicas/libreta-api/pkg/logger"
)

const (
	baseScore = 100
	batchPage = 200 // tamaño de página para el recálculo masivo
)

// UseCase calcula y persiste trust scores. Los cálculos son síncronos,
// sin estado entre llamadas y deterministas para un mismo historial.
type UseCase struct {
	customerRepo  repository.CustomerRepository
	borrowingRepo repository.BorrowingRepository
	saleRepo      repository.SaleRepository
	log           *logger.Logger
	nowFn         func() time.Time
}

// NewUseCase construye el motor de scoring.
func NewUseCase(
	customerRepo repository.CustomerRepository,
	borrowingRepo repository.BorrowingRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		customerRepo:  customerRepo,
		borrowingRepo: borrowingRepo,
		saleRepo:      saleRepo,
		log:           log,
		nowFn:         time.Now,
	}
}

// Failure registra el fallo de una entidad dentro de una operación batch.
type Failure struct {
	ID  string
	Err error
}

// BatchResult resultado del recálculo masivo: cuántos se actualizaron y qué
// clientes fallaron. Un fallo individual nunca aborta el batch.
type BatchResult struct {
	Updated  int
	Failures []Failure
}

// ComputeTrustScore calcula el score de un cliente sin persistir nada.
// Es una función pura del historial al momento de la llamada: el mismo
// historial produce siempre el mismo resultado. El cliente debe pertenecer
// a la tienda indicada (ErrForbidden en otro caso).
func (uc *UseCase) ComputeTrustScore(ctx context.Context, shopID, customerID string) (*dto.TrustScoreDTO, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("scoring: cargar cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.ShopID != shopID {
		return nil, domain.ErrForbidden
	}

	borrowings, err := uc.borrowingRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("scoring: historial de fiados: %w", err)
	}
	latestSale, err := uc.saleRepo.GetLatestByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("scoring: última venta: %w", err)
	}

	history := CustomerHistory{
		Borrowings:    borrowings,
		TotalPurchase: customer.TotalPurchase,
		LatestSale:    latestSale,
		Now:           uc.nowFn(),
	}
	return uc.scoreFromHistory(customerID, history), nil
}

// scoreFromHistory evalúa la tabla de factores sobre un historial ya cargado.
// Cada ajuste se calcula de forma independiente antes de combinarse; no hay
// composición secuencial entre factores.
func (uc *UseCase) scoreFromHistory(customerID string, history CustomerHistory) *dto.TrustScoreDTO {
	total := decimal.NewFromInt(baseScore)
	breakdown := make([]dto.FactorScoreDTO, 0, len(factors))

	for _, f := range factors {
		raw := f.Score(history)
		adjustment := raw.Sub(decimal.NewFromInt(int64(f.Weight)))
		total = total.Add(adjustment)
		breakdown = append(breakdown, dto.FactorScoreDTO{
			Name:       f.Name,
			Weight:     f.Weight,
			RawScore:   raw,
			Adjustment: adjustment,
		})
	}

	score := clampScore(int(math.Round(total.InexactFloat64())))
	tier := riskTierFor(score)

	return &dto.TrustScoreDTO{
		CustomerID: customerID,
		Score:      score,
		RiskTier:   tier,
		IsRisky:    tier == entity.RiskTierHigh,
		Breakdown:  breakdown,
		ComputedAt: history.Now,
	}
}

// UpdateTrustScore calcula el score y lo persiste junto con risk_tier e
// is_risky en un solo UPDATE atómico. Es la única operación de escritura
// del motor; ante error de cálculo no se escribe nada.
func (uc *UseCase) UpdateTrustScore(ctx context.Context, shopID, customerID string) (*dto.TrustScoreDTO, error) {
	result, err := uc.ComputeTrustScore(ctx, shopID, customerID)
	if err != nil {
		return nil, err
	}
	if err := uc.customerRepo.UpdateScore(ctx, customerID, result.Score, result.RiskTier, result.IsRisky); err != nil {
		return nil, fmt.Errorf("scoring: persistir score: %w", err)
	}
	return result, nil
}

// UpdateAllTrustScores recalcula el score de todos los clientes de la tienda.
// Los fallos individuales se registran y se reportan en el resultado; nunca
// abortan el resto del batch.
func (uc *UseCase) UpdateAllTrustScores(ctx context.Context, shopID string) (*BatchResult, error) {
	result := &BatchResult{}
	offset := 0
	for {
		customers, err := uc.customerRepo.ListByShop(ctx, shopID, batchPage, offset)
		if err != nil {
			return nil, fmt.Errorf("scoring: listar clientes: %w", err)
		}
		if len(customers) == 0 {
			break
		}
		for _, c := range customers {
			if _, err := uc.UpdateTrustScore(ctx, c.ShopID, c.ID); err != nil {
				uc.log.Warn().
					Str("customer_id", c.ID).
					Err(err).
					Msg("scoring batch: cliente omitido")
				result.Failures = append(result.Failures, Failure{ID: c.ID, Err: err})
				continue
			}
			result.Updated++
		}
		if len(customers) < batchPage {
			break
		}
		offset += batchPage
	}
	return result, nil
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
