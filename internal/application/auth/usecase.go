package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
	"github.com/jhoicas/libreta-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro de tienda, empleados y login.
type UseCase struct {
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, shopRepo repository.ShopRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, shopRepo: shopRepo, jwtCfg: jwtCfg}
}

// RegisterShop crea la tienda y su usuario dueño en un solo paso.
// El teléfono del dueño es el identificador de login.
func (uc *UseCase) RegisterShop(ctx context.Context, in dto.RegisterShopRequest) (*dto.UserResponse, error) {
	if in.ShopName == "" || in.Phone == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.FindByPhone(ctx, in.Phone)
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}

	now := time.Now()
	shop := &entity.Shop{
		ID:         uuid.New().String(),
		Name:       in.ShopName,
		OwnerPhone: in.Phone,
		Address:    in.Address,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.shopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("crear tienda: %w", err)
	}

	name := in.Name
	if name == "" {
		name = in.Phone
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		ShopID:       shop.ID,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleOwner,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("crear usuario dueño: %w", err)
	}
	return toUserResponse(user), nil
}

// RegisterStaff crea un empleado dentro de la tienda indicada.
func (uc *UseCase) RegisterStaff(ctx context.Context, shopID string, in dto.RegisterStaffRequest) (*dto.UserResponse, error) {
	if in.Phone == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.userRepo.FindByPhone(ctx, in.Phone)
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		ShopID:       shopID,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         entity.RoleStaff,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("crear empleado: %w", err)
	}
	return toUserResponse(user), nil
}

// Login verifica teléfono/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.ShopID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		ShopID:    u.ShopID,
		Phone:     u.Phone,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
