package statement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeShopRepo struct {
	shops map[string]*entity.Shop
}

func (r *fakeShopRepo) Create(_ context.Context, s *entity.Shop) error { r.shops[s.ID] = s; return nil }
func (r *fakeShopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	return r.shops[id], nil
}
func (r *fakeShopRepo) Update(_ context.Context, _ *entity.Shop) error { return nil }
func (r *fakeShopRepo) List(_ context.Context, _, _ int) ([]*entity.Shop, error) {
	return nil, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByShopAndPhone(_ context.Context, _, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) ListByShop(_ context.Context, _ string, _, _ int) ([]*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, _ *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(_ context.Context, _ string) error           { return nil }

func (r *fakeCustomerRepo) UpdateScore(_ context.Context, _ string, _ int, _ string, _ bool) error {
	return nil
}

func (r *fakeCustomerRepo) AddTotals(_ context.Context, _ string, _, _ decimal.Decimal) error {
	return nil
}

type fakeBorrowingRepo struct {
	byCustomer map[string][]*entity.Borrowing
}

func (r *fakeBorrowingRepo) Create(_ context.Context, _ *entity.Borrowing) error { return nil }
func (r *fakeBorrowingRepo) GetByID(_ context.Context, _ string) (*entity.Borrowing, error) {
	return nil, nil
}

func (r *fakeBorrowingRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Borrowing, error) {
	return r.byCustomer[customerID], nil
}

func (r *fakeBorrowingRepo) ListInRange(_ context.Context, _ string, _, _ time.Time) ([]*entity.Borrowing, error) {
	return nil, nil
}

func (r *fakeBorrowingRepo) ListPendingDueBefore(_ context.Context, _ string, _ time.Time) ([]*entity.Borrowing, error) {
	return nil, nil
}

func (r *fakeBorrowingRepo) CountOverdueAsOf(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func (r *fakeBorrowingRepo) UpdateStatus(_ context.Context, _, _ string, _ *time.Time) error {
	return nil
}

type fakeGenerator struct {
	calls int
}

func (g *fakeGenerator) GenerateStatementPDF(
	_ context.Context,
	_ *entity.Shop,
	_ *entity.Customer,
	_ []*entity.Borrowing,
	_ time.Time,
) ([]byte, error) {
	g.calls++
	return []byte("%PDF-falso"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

const (
	testShopID     = "11111111-0000-0000-0000-000000000001"
	testCustomerID = "22222222-0000-0000-0000-000000000002"
)

type fixtures struct {
	uc        *UseCase
	generator *fakeGenerator
}

func newStatementFixtures(shops []*entity.Shop, customers []*entity.Customer) *fixtures {
	sr := &fakeShopRepo{shops: map[string]*entity.Shop{}}
	for _, s := range shops {
		sr.shops[s.ID] = s
	}
	cr := &fakeCustomerRepo{customers: map[string]*entity.Customer{}}
	for _, c := range customers {
		cr.customers[c.ID] = c
	}
	gen := &fakeGenerator{}
	uc := NewUseCase(sr, cr, &fakeBorrowingRepo{byCustomer: map[string][]*entity.Borrowing{}}, gen)
	uc.nowFn = func() time.Time { return testNow }
	return &fixtures{uc: uc, generator: gen}
}

// ──────────────────────────────────────────────────────────────────────────────
// DownloadStatementPDF
// ──────────────────────────────────────────────────────────────────────────────

func TestDownloadStatementPDF_Basico(t *testing.T) {
	f := newStatementFixtures(
		[]*entity.Shop{{ID: testShopID, Name: "Tienda Doña Rosa"}},
		[]*entity.Customer{{ID: testCustomerID, ShopID: testShopID, Name: "Cliente"}},
	)

	pdf, filename, err := f.uc.DownloadStatementPDF(context.Background(), testShopID, testCustomerID)
	require.NoError(t, err)

	assert.NotEmpty(t, pdf)
	assert.Equal(t, "estado-cuenta-22222222-20250615.pdf", filename)
	assert.Equal(t, 1, f.generator.calls)
}

func TestDownloadStatementPDF_ClienteInexistente(t *testing.T) {
	f := newStatementFixtures([]*entity.Shop{{ID: testShopID}}, nil)

	_, _, err := f.uc.DownloadStatementPDF(context.Background(), testShopID, testCustomerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadStatementPDF_ClienteDeOtraTienda(t *testing.T) {
	f := newStatementFixtures(
		[]*entity.Shop{{ID: testShopID}},
		[]*entity.Customer{{ID: testCustomerID, ShopID: "otra-tienda", Name: "Cliente"}},
	)

	_, _, err := f.uc.DownloadStatementPDF(context.Background(), testShopID, testCustomerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, f.generator.calls)
}

// La fila de la tienda puede faltar (borrada entre medias): ErrNotFound.
func TestDownloadStatementPDF_TiendaInexistente(t *testing.T) {
	f := newStatementFixtures(
		nil,
		[]*entity.Customer{{ID: testCustomerID, ShopID: testShopID, Name: "Cliente"}},
	)

	_, _, err := f.uc.DownloadStatementPDF(context.Background(), testShopID, testCustomerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.generator.calls)
}
