package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items      map[string]*entity.InventoryItem
	qtyWrites  map[string]int
	updated    []*entity.InventoryItem
	created    []*entity.InventoryItem
	deletedIDs []string
}

func newFakeItemRepo(items ...*entity.InventoryItem) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*entity.InventoryItem{}, qtyWrites: map[string]int{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.items[item.ID] = item
	r.created = append(r.created, item)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) ListByShop(_ context.Context, shopID string, _, _ int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.ShopID == shopID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	r.updated = append(r.updated, item)
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	r.deletedIDs = append(r.deletedIDs, id)
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) GetForUpdate(_ context.Context, id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.qtyWrites[id] = quantity
	if it, ok := r.items[id]; ok {
		it.Quantity = quantity
	}
	return nil
}

func (r *fakeItemRepo) UpdateAvgDailySales(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}

type fakeTxLogRepo struct {
	entries []*entity.InventoryTransaction
}

func (r *fakeTxLogRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	r.entries = append(r.entries, tx)
	return nil
}

func (r *fakeTxLogRepo) ListByItemSince(_ context.Context, _ string, _ time.Time) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}

func (r *fakeTxLogRepo) ListByItem(_ context.Context, _ string, _, _ int) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes (sin transacción).
type fakeTxRunner struct {
	items *fakeItemRepo
	txLog *fakeTxLogRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	txRepo repository.InventoryTransactionRepository,
) error) error {
	return fn(r.items, r.txLog)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixtures struct {
	uc    *UseCase
	items *fakeItemRepo
	txLog *fakeTxLogRepo
}

func newInventoryFixtures(items ...*entity.InventoryItem) *fixtures {
	ir := newFakeItemRepo(items...)
	lr := &fakeTxLogRepo{}
	uc := NewUseCase(&fakeTxRunner{items: ir, txLog: lr}, ir)
	uc.nowFn = func() time.Time { return testNow }
	return &fixtures{uc: uc, items: ir, txLog: lr}
}

func testItem(id string, qty int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID: id, ShopID: "shop-1", Name: "Arroz 1kg", Unit: "unidad",
		Quantity: qty, MinThreshold: 5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateItem_Basico(t *testing.T) {
	f := newInventoryFixtures()

	got, err := f.uc.CreateItem(context.Background(), "shop-1", dto.CreateItemRequest{
		Name: "Azúcar 500g", Unit: "bolsa", Quantity: 20, MinThreshold: 4,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "shop-1", got.ShopID)
	assert.Equal(t, 20, got.Quantity)
	require.Len(t, f.items.created, 1)
}

func TestCreateItem_Validaciones(t *testing.T) {
	f := newInventoryFixtures()

	cases := []struct {
		name string
		in   dto.CreateItemRequest
	}{
		{"sin nombre", dto.CreateItemRequest{Quantity: 1}},
		{"cantidad negativa", dto.CreateItemRequest{Name: "x", Quantity: -1}},
		{"umbral negativo", dto.CreateItemRequest{Name: "x", MinThreshold: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateItem(context.Background(), "shop-1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateItem_NoTocaLaCantidad(t *testing.T) {
	f := newInventoryFixtures(testItem("i1", 10))
	umbral := 8

	got, err := f.uc.UpdateItem(context.Background(), "shop-1", "i1", dto.UpdateItemRequest{
		Name: "Arroz premium 1kg", MinThreshold: &umbral,
	})
	require.NoError(t, err)

	assert.Equal(t, "Arroz premium 1kg", got.Name)
	assert.Equal(t, 8, got.MinThreshold)
	assert.Equal(t, 10, got.Quantity, "la cantidad solo cambia vía movimientos")
}

func TestDeleteItem_DeOtraTienda(t *testing.T) {
	item := testItem("i1", 10)
	item.ShopID = "shop-2"
	f := newInventoryFixtures(item)

	err := f.uc.DeleteItem(context.Background(), "shop-1", "i1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.items.deletedIDs)
}

func TestGetItem_Inexistente(t *testing.T) {
	f := newInventoryFixtures()
	_, err := f.uc.GetItem(context.Background(), "shop-1", "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterTransaction: deltas por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterTransaction_Deltas(t *testing.T) {
	cases := []struct {
		name      string
		txType    string
		quantity  int
		remaining int
	}{
		{"venta descuenta", entity.TransactionTypeSale, 3, 7},
		{"merma descuenta", entity.TransactionTypeLoss, 2, 8},
		{"reposición suma", entity.TransactionTypeRestock, 5, 15},
		{"ajuste positivo", entity.TransactionTypeAdjustment, 4, 14},
		{"ajuste negativo", entity.TransactionTypeAdjustment, -4, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newInventoryFixtures(testItem("i1", 10))

			got, err := f.uc.RegisterTransaction(context.Background(), "shop-1", "i1", dto.RegisterTransactionRequest{
				Type: tc.txType, Quantity: tc.quantity,
			})
			require.NoError(t, err)

			assert.Equal(t, tc.remaining, got.Remaining)
			assert.Equal(t, tc.remaining, f.items.qtyWrites["i1"])
			require.Len(t, f.txLog.entries, 1)
			entry := f.txLog.entries[0]
			assert.Equal(t, tc.txType, entry.Type)
			assert.Equal(t, tc.quantity, entry.Quantity, "el log guarda la cantidad tal cual, el signo lo da el tipo")
		})
	}
}

func TestRegisterTransaction_StockInsuficiente(t *testing.T) {
	f := newInventoryFixtures(testItem("i1", 2))

	_, err := f.uc.RegisterTransaction(context.Background(), "shop-1", "i1", dto.RegisterTransactionRequest{
		Type: entity.TransactionTypeSale, Quantity: 3,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.items.qtyWrites, "un movimiento rechazado no escribe stock")
	assert.Empty(t, f.txLog.entries, "un movimiento rechazado no deja entrada en el log")
}

func TestRegisterTransaction_VaciarElStockEsValido(t *testing.T) {
	f := newInventoryFixtures(testItem("i1", 3))

	got, err := f.uc.RegisterTransaction(context.Background(), "shop-1", "i1", dto.RegisterTransactionRequest{
		Type: entity.TransactionTypeSale, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Remaining)
}

func TestRegisterTransaction_Validaciones(t *testing.T) {
	f := newInventoryFixtures(testItem("i1", 10))

	cases := []struct {
		name string
		in   dto.RegisterTransactionRequest
	}{
		{"tipo desconocido", dto.RegisterTransactionRequest{Type: "DEVOLUCION", Quantity: 1}},
		{"venta con cantidad cero", dto.RegisterTransactionRequest{Type: entity.TransactionTypeSale, Quantity: 0}},
		{"venta con cantidad negativa", dto.RegisterTransactionRequest{Type: entity.TransactionTypeSale, Quantity: -1}},
		{"reposición negativa", dto.RegisterTransactionRequest{Type: entity.TransactionTypeRestock, Quantity: -5}},
		{"ajuste cero", dto.RegisterTransactionRequest{Type: entity.TransactionTypeAdjustment, Quantity: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.RegisterTransaction(context.Background(), "shop-1", "i1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.txLog.entries)
}

func TestRegisterTransaction_ProductoInexistente(t *testing.T) {
	f := newInventoryFixtures()

	_, err := f.uc.RegisterTransaction(context.Background(), "shop-1", "nada", dto.RegisterTransactionRequest{
		Type: entity.TransactionTypeRestock, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterTransaction_ProductoDeOtraTienda(t *testing.T) {
	item := testItem("i1", 10)
	item.ShopID = "shop-2"
	f := newInventoryFixtures(item)

	_, err := f.uc.RegisterTransaction(context.Background(), "shop-1", "i1", dto.RegisterTransactionRequest{
		Type: entity.TransactionTypeSale, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.items.qtyWrites)
}
