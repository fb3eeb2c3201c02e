package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const defaultTrustScore = 100 // todo cliente nuevo arranca con confianza plena

// CustomerUseCase CRUD de clientes de la tienda.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente con score por defecto 100 y tier low.
func (uc *CustomerUseCase) Create(ctx context.Context, shopID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByShopAndPhone(ctx, shopID, in.Phone)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		ShopID:         shopID,
		Name:           in.Name,
		Phone:          in.Phone,
		TrustScore:     defaultTrustScore,
		RiskTier:       entity.RiskTierLow,
		IsRisky:        false,
		TotalPurchase:  decimal.Zero,
		BorrowedAmount: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID devuelve un cliente de la tienda.
func (uc *CustomerUseCase) GetByID(ctx context.Context, shopID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.ShopID != shopID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la tienda.
func (uc *CustomerUseCase) List(ctx context.Context, shopID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByShop(ctx, shopID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza datos de contacto. Los campos derivados (score, tier,
// totales) no se tocan por aquí.
func (uc *CustomerUseCase) Update(ctx context.Context, shopID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.ShopID != shopID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		customer.Name = in.Name
	}
	if in.Phone != "" {
		customer.Phone = in.Phone
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente de la tienda.
func (uc *CustomerUseCase) Delete(ctx context.Context, shopID, id string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("cargar cliente: %w", err)
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.ShopID != shopID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:             c.ID,
		ShopID:         c.ShopID,
		Name:           c.Name,
		Phone:          c.Phone,
		TrustScore:     c.TrustScore,
		RiskTier:       c.RiskTier,
		IsRisky:        c.IsRisky,
		TotalPurchase:  c.TotalPurchase,
		BorrowedAmount: c.BorrowedAmount,
		CreatedAt:      c.CreatedAt,
	}
}
