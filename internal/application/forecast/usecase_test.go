package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items     map[string]*entity.InventoryItem
	order     []string
	avgWrites map[string]decimal.Decimal
}

func newFakeItemRepo(items ...*entity.InventoryItem) *fakeItemRepo {
	r := &fakeItemRepo{
		items:     make(map[string]*entity.InventoryItem),
		avgWrites: make(map[string]decimal.Decimal),
	}
	for _, it := range items {
		r.items[it.ID] = it
		r.order = append(r.order, it.ID)
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	r.items[it.ID] = it
	r.order = append(r.order, it.ID)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) ListByShop(_ context.Context, shopID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var all []*entity.InventoryItem
	for _, id := range r.order {
		it := r.items[id]
		if shopID == "" || it.ShopID == shopID {
			all = append(all, it)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeItemRepo) Update(_ context.Context, _ *entity.InventoryItem) error { return nil }
func (r *fakeItemRepo) Delete(_ context.Context, _ string) error                { return nil }

func (r *fakeItemRepo) GetForUpdate(_ context.Context, id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) UpdateQuantity(_ context.Context, _ string, _ int) error { return nil }

func (r *fakeItemRepo) UpdateAvgDailySales(_ context.Context, id string, avg decimal.Decimal) error {
	r.avgWrites[id] = avg
	return nil
}

type fakeTxRepo struct {
	byItem  map[string][]*entity.InventoryTransaction
	failFor string
}

func (r *fakeTxRepo) Create(_ context.Context, _ *entity.InventoryTransaction) error { return nil }

func (r *fakeTxRepo) ListByItemSince(_ context.Context, itemID string, since time.Time) ([]*entity.InventoryTransaction, error) {
	if r.failFor != "" && itemID == r.failFor {
		return nil, errors.New("fallo simulado")
	}
	var out []*entity.InventoryTransaction
	for _, tx := range r.byItem[itemID] {
		if !tx.CreatedAt.Before(since) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) ListByItem(_ context.Context, itemID string, _, _ int) ([]*entity.InventoryTransaction, error) {
	return r.byItem[itemID], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newForecastUC(items *fakeItemRepo, txs *fakeTxRepo) *UseCase {
	if txs.byItem == nil {
		txs.byItem = map[string][]*entity.InventoryTransaction{}
	}
	uc := NewUseCase(items, txs, logger.Nop())
	uc.nowFn = func() time.Time { return testNow }
	return uc
}

func item(id string, qty, minThreshold int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID: id, ShopID: "shop-1", Name: "Producto " + id,
		Quantity: qty, MinThreshold: minThreshold,
	}
}

// saleTxs genera movimientos SALE repartidos dentro de la ventana de 30 días.
func saleTxs(itemID string, totalQty, count int) []*entity.InventoryTransaction {
	out := make([]*entity.InventoryTransaction, 0, count)
	per := totalQty / count
	for i := 0; i < count; i++ {
		out = append(out, &entity.InventoryTransaction{
			ID: "tx", ItemID: itemID, Type: entity.TransactionTypeSale,
			Quantity: per, CreatedAt: testNow.AddDate(0, 0, -(i + 1)),
		})
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Forecast
// ──────────────────────────────────────────────────────────────────────────────

// 90 unidades vendidas en la ventana de 30 días, stock 48:
// velocidad 3/día, 16 días al quiebre, reposición 90, urgencia normal.
func TestForecast_CalculoBase(t *testing.T) {
	items := newFakeItemRepo(item("i1", 48, 5))
	txs := &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{
		"i1": saleTxs("i1", 90, 9),
	}}
	uc := newForecastUC(items, txs)

	got, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)

	assert.True(t, got.AvgDailySales.Equal(decimal.NewFromInt(3)), "90/30 = 3")
	assert.Equal(t, 16, got.DaysUntilStockout)
	assert.False(t, got.Unbounded)
	assert.Equal(t, 90, got.RecommendedRestock)
	assert.Equal(t, dto.UrgencyNormal, got.Urgency)
	assert.Equal(t, testNow.AddDate(0, 0, 16), got.PredictedRunout)
}

// Cada llamada cachea la velocidad calculada sobre el producto.
func TestForecast_CacheaVelocidad(t *testing.T) {
	items := newFakeItemRepo(item("i1", 48, 5))
	txs := &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{
		"i1": saleTxs("i1", 90, 9),
	}}
	uc := newForecastUC(items, txs)

	_, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)

	avg, ok := items.avgWrites["i1"]
	require.True(t, ok)
	assert.True(t, avg.Equal(decimal.NewFromInt(3)))
}

// Solo los movimientos SALE cuentan para la velocidad.
func TestForecast_SoloVentasCuentanParaVelocidad(t *testing.T) {
	txList := []*entity.InventoryTransaction{
		{ItemID: "i1", Type: entity.TransactionTypeSale, Quantity: 30, CreatedAt: testNow.AddDate(0, 0, -3)},
		{ItemID: "i1", Type: entity.TransactionTypeRestock, Quantity: 500, CreatedAt: testNow.AddDate(0, 0, -4)},
		{ItemID: "i1", Type: entity.TransactionTypeLoss, Quantity: 10, CreatedAt: testNow.AddDate(0, 0, -5)},
		{ItemID: "i1", Type: entity.TransactionTypeAdjustment, Quantity: -7, CreatedAt: testNow.AddDate(0, 0, -6)},
	}
	items := newFakeItemRepo(item("i1", 100, 5))
	uc := newForecastUC(items, &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{"i1": txList}})

	got, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)

	assert.True(t, got.AvgDailySales.Equal(decimal.NewFromInt(1)), "solo 30 unidades SALE / 30 días")
}

// Las ventas fuera de la ventana de 30 días no cuentan.
func TestForecast_VentasFueraDeVentanaNoCuentan(t *testing.T) {
	txList := []*entity.InventoryTransaction{
		{ItemID: "i1", Type: entity.TransactionTypeSale, Quantity: 60, CreatedAt: testNow.AddDate(0, 0, -45)},
		{ItemID: "i1", Type: entity.TransactionTypeSale, Quantity: 30, CreatedAt: testNow.AddDate(0, 0, -10)},
	}
	items := newFakeItemRepo(item("i1", 100, 5))
	uc := newForecastUC(items, &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{"i1": txList}})

	got, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)

	assert.True(t, got.AvgDailySales.Equal(decimal.NewFromInt(1)))
}

// Sin ventas en la ventana: centinela 999 + Unbounded, reposición 0.
func TestForecast_SinVentasCentinela(t *testing.T) {
	items := newFakeItemRepo(item("i1", 50, 5))
	uc := newForecastUC(items, &fakeTxRepo{})

	got, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)

	assert.Equal(t, 999, got.DaysUntilStockout)
	assert.True(t, got.Unbounded, "999 es centinela, no días reales")
	assert.Equal(t, 0, got.RecommendedRestock)
	assert.Equal(t, dto.UrgencyNormal, got.Urgency)
}

// Stock en o bajo el umbral mínimo: critical manda, sin importar la velocidad.
func TestForecast_CriticalPorUmbralManda(t *testing.T) {
	// stock 10 <= umbral 10, con velocidad lenta (días >> 7)
	items := newFakeItemRepo(item("i1", 10, 10))
	txs := &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{
		"i1": {{ItemID: "i1", Type: entity.TransactionTypeSale, Quantity: 3, CreatedAt: testNow.AddDate(0, 0, -1)}},
	}}
	uc := newForecastUC(items, txs)

	got, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)
	assert.Equal(t, dto.UrgencyCritical, got.Urgency)

	// incluso sin velocidad alguna
	items2 := newFakeItemRepo(item("i2", 0, 5))
	uc2 := newForecastUC(items2, &fakeTxRepo{})
	got2, err := uc2.Forecast(context.Background(), "shop-1", "i2")
	require.NoError(t, err)
	assert.Equal(t, dto.UrgencyCritical, got2.Urgency)
	assert.True(t, got2.Unbounded)
}

// Quiebre a 7 días o menos (y stock sobre el umbral): warning.
func TestForecast_WarningPorDias(t *testing.T) {
	// 60 vendidas/30d = 2/día; stock 14 → 7 días
	items := newFakeItemRepo(item("i1", 14, 2))
	txs := &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{
		"i1": saleTxs("i1", 60, 6),
	}}
	uc := newForecastUC(items, txs)

	got, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)

	assert.Equal(t, 7, got.DaysUntilStockout)
	assert.Equal(t, dto.UrgencyWarning, got.Urgency)
}

// La reposición sugerida redondea hacia arriba (cubre 30 días completos).
func TestForecast_ReposicionRedondeaArriba(t *testing.T) {
	// 50/30 ≈ 1.666.. por día → 30 días = 50; 49/30 → ceil(49) = 49
	items := newFakeItemRepo(item("i1", 100, 2))
	txs := &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{
		"i1": {{ItemID: "i1", Type: entity.TransactionTypeSale, Quantity: 7, CreatedAt: testNow.AddDate(0, 0, -1)}},
	}}
	uc := newForecastUC(items, txs)

	got, err := uc.Forecast(context.Background(), "shop-1", "i1")
	require.NoError(t, err)

	// 7/30 * 30 = 7 exacto
	assert.Equal(t, 7, got.RecommendedRestock)
	// días = floor(100 / (7/30)) = floor(428.57) = 428
	assert.Equal(t, 428, got.DaysUntilStockout)
}

func TestForecast_ProductoInexistente(t *testing.T) {
	uc := newForecastUC(newFakeItemRepo(), &fakeTxRepo{})
	_, err := uc.Forecast(context.Background(), "shop-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un producto de otra tienda es inalcanzable y no se cachea nada sobre él.
func TestForecast_ProductoDeOtraTienda(t *testing.T) {
	otro := item("i1", 50, 5)
	otro.ShopID = "shop-2"
	items := newFakeItemRepo(otro)
	uc := newForecastUC(items, &fakeTxRepo{})

	_, err := uc.Forecast(context.Background(), "shop-1", "i1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, items.avgWrites, "no debe cachearse velocidad de un producto ajeno")
}

func TestForecast_StockNegativoEsEstadoInvalido(t *testing.T) {
	uc := newForecastUC(newFakeItemRepo(item("i1", -3, 0)), &fakeTxRepo{})
	_, err := uc.Forecast(context.Background(), "shop-1", "i1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// ForecastAll / CriticalItems
// ──────────────────────────────────────────────────────────────────────────────

func TestForecastAll_OrdenPorUrgenciaYDias(t *testing.T) {
	items := newFakeItemRepo(
		item("normal-lejano", 300, 2),  // normal, muchos días
		item("critical-a", 1, 5),       // critical
		item("warning-b", 14, 2),       // warning, 7 días
		item("warning-a", 6, 2),        // warning, 3 días
		item("normal-cercano", 100, 2), // normal, 50 días
	)
	txs := &fakeTxRepo{byItem: map[string][]*entity.InventoryTransaction{
		"normal-lejano":  saleTxs("normal-lejano", 30, 3),  // 1/día → 300 días
		"critical-a":     saleTxs("critical-a", 30, 3),     // 1/día → 1 día
		"warning-b":      saleTxs("warning-b", 60, 6),      // 2/día → 7 días
		"warning-a":      saleTxs("warning-a", 60, 6),      // 2/día → 3 días
		"normal-cercano": saleTxs("normal-cercano", 60, 6), // 2/día → 50 días
	}}
	uc := newForecastUC(items, txs)

	result, err := uc.ForecastAll(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Len(t, result.Forecasts, 5)

	gotOrder := make([]string, 0, 5)
	for _, f := range result.Forecasts {
		gotOrder = append(gotOrder, f.ItemID)
	}
	assert.Equal(t,
		[]string{"critical-a", "warning-a", "warning-b", "normal-cercano", "normal-lejano"},
		gotOrder)
}

func TestForecastAll_FalloIndividualNoAbortaElBatch(t *testing.T) {
	items := newFakeItemRepo(item("i1", 50, 2), item("i2", 50, 2), item("i3", 50, 2))
	uc := newForecastUC(items, &fakeTxRepo{failFor: "i2"})

	result, err := uc.ForecastAll(context.Background(), "shop-1")
	require.NoError(t, err)

	assert.Len(t, result.Forecasts, 2)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "i2", result.Failures[0].ID)
}

func TestCriticalItems_SoloCriticos(t *testing.T) {
	items := newFakeItemRepo(
		item("ok", 100, 2),
		item("critico-1", 1, 5),
		item("critico-2", 0, 5),
	)
	uc := newForecastUC(items, &fakeTxRepo{})

	critical, err := uc.CriticalItems(context.Background(), "shop-1")
	require.NoError(t, err)

	require.Len(t, critical, 2)
	for _, f := range critical {
		assert.Equal(t, dto.UrgencyCritical, f.Urgency)
	}
}
