package repository

import (
	"context"

	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop (DIP).
// La implementación vive en infrastructure.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	List(ctx context.Context, limit, offset int) ([]*entity.Shop, error)
}
