// Package inventory implementa el CRUD de productos y el registro de
// movimientos (SALE, RESTOCK, ADJUSTMENT, LOSS) con bloqueo de fila y
// transacción. El log de movimientos es append-only: las correcciones se
// registran como ADJUSTMENT, nunca editando entradas anteriores.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

// UseCase casos de uso de inventario.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.InventoryItemRepository
	nowFn    func() time.Time
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(txRunner TxRunner, itemRepo repository.InventoryItemRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, nowFn: time.Now}
}

// CreateItem crea un producto con stock inicial.
func (uc *UseCase) CreateItem(ctx context.Context, shopID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Quantity < 0 || in.MinThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.nowFn()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		ShopID:       shopID,
		Name:         in.Name,
		Unit:         in.Unit,
		Quantity:     in.Quantity,
		MinThreshold: in.MinThreshold,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	return toItemResponse(item), nil
}

// GetItem devuelve un producto de la tienda.
func (uc *UseCase) GetItem(ctx context.Context, shopID, itemID string) (*dto.ItemResponse, error) {
	item, err := uc.loadShopItem(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems lista los productos de la tienda con paginación.
func (uc *UseCase) ListItems(ctx context.Context, shopID string, page dto.PageRequest) ([]*dto.ItemResponse, error) {
	page.DefaultPage()
	items, err := uc.itemRepo.ListByShop(ctx, shopID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

// UpdateItem actualiza nombre, unidad o umbral mínimo. La cantidad no se
// edita por aquí: solo cambia registrando movimientos.
func (uc *UseCase) UpdateItem(ctx context.Context, shopID, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.loadShopItem(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.Unit != "" {
		item.Unit = in.Unit
	}
	if in.MinThreshold != nil {
		if *in.MinThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.MinThreshold = *in.MinThreshold
	}
	item.UpdatedAt = uc.nowFn()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	return toItemResponse(item), nil
}

// DeleteItem elimina un producto.
func (uc *UseCase) DeleteItem(ctx context.Context, shopID, itemID string) error {
	if _, err := uc.loadShopItem(ctx, shopID, itemID); err != nil {
		return err
	}
	return uc.itemRepo.Delete(ctx, itemID)
}

// RegisterTransaction registra un movimiento y aplica su delta al stock
// dentro de una transacción con bloqueo de fila (SELECT FOR UPDATE).
// El stock resultante nunca puede quedar negativo (ErrInsufficientStock).
func (uc *UseCase) RegisterTransaction(ctx context.Context, shopID, itemID string, in dto.RegisterTransactionRequest) (*dto.TransactionResponse, error) {
	if !entity.IsValidTransactionType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	// SALE/RESTOCK/LOSS llevan cantidad positiva; ADJUSTMENT es un delta con
	// signo y solo se exige distinto de cero.
	if in.Type == entity.TransactionTypeAdjustment {
		if in.Quantity == 0 {
			return nil, domain.ErrInvalidInput
		}
	} else if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := uc.nowFn()
	logEntry := &entity.InventoryTransaction{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		ItemID:    itemID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Note:      in.Note,
		CreatedAt: now,
	}

	var remaining int
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.InventoryTransactionRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return fmt.Errorf("bloquear producto: %w", err)
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.ShopID != shopID {
			return domain.ErrForbidden
		}

		newQty := item.Quantity + quantityDelta(in.Type, in.Quantity)
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		if err := itemRepo.UpdateQuantity(ctx, itemID, newQty); err != nil {
			return fmt.Errorf("aplicar delta de stock: %w", err)
		}
		if err := txRepo.Create(ctx, logEntry); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
		remaining = newQty
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransactionResponse{
		ID:        logEntry.ID,
		ItemID:    itemID,
		Type:      logEntry.Type,
		Quantity:  logEntry.Quantity,
		Note:      logEntry.Note,
		CreatedAt: logEntry.CreatedAt,
		Remaining: remaining,
	}, nil
}

// quantityDelta traduce el tipo de movimiento a su efecto sobre el stock.
func quantityDelta(txType string, quantity int) int {
	switch txType {
	case entity.TransactionTypeSale, entity.TransactionTypeLoss:
		return -quantity
	case entity.TransactionTypeRestock:
		return quantity
	default: // ADJUSTMENT: delta con signo
		return quantity
	}
}

func (uc *UseCase) loadShopItem(ctx context.Context, shopID, itemID string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("cargar producto: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.ShopID != shopID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func toItemResponse(item *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            item.ID,
		ShopID:        item.ShopID,
		Name:          item.Name,
		Unit:          item.Unit,
		Quantity:      item.Quantity,
		MinThreshold:  item.MinThreshold,
		AvgDailySales: item.AvgDailySales,
		UpdatedAt:     item.UpdatedAt,
	}
}
