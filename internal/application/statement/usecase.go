// Package statement genera el estado de cuenta de fiado de un cliente: el
// extracto imprimible (PDF) que el tendero entrega o envía al cliente con su
// historial y saldo pendiente.
package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
)

// PDFGenerator puerto para la generación del documento; la implementación
// (Maroto) vive en infrastructure.
type PDFGenerator interface {
	GenerateStatementPDF(
		ctx context.Context,
		shop *entity.Shop,
		customer *entity.Customer,
		borrowings []*entity.Borrowing,
		generatedAt time.Time,
	) ([]byte, error)
}

// UseCase arma el estado de cuenta de fiado de un cliente.
type UseCase struct {
	shopRepo      repository.ShopRepository
	customerRepo  repository.CustomerRepository
	borrowingRepo repository.BorrowingRepository
	generator     PDFGenerator
	nowFn         func() time.Time
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	shopRepo repository.ShopRepository,
	customerRepo repository.CustomerRepository,
	borrowingRepo repository.BorrowingRepository,
	generator PDFGenerator,
) *UseCase {
	return &UseCase{
		shopRepo:      shopRepo,
		customerRepo:  customerRepo,
		borrowingRepo: borrowingRepo,
		generator:     generator,
		nowFn:         time.Now,
	}
}

// DownloadStatementPDF genera el PDF del estado de cuenta del cliente.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el cliente no existe.
//   - domain.ErrForbidden       si el cliente no pertenece a la tienda del token.
func (uc *UseCase) DownloadStatementPDF(ctx context.Context, shopID, customerID string) (pdfBytes []byte, filename string, err error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	if customer.ShopID != shopID {
		return nil, "", domain.ErrForbidden
	}

	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: obtener tienda: %w", err)
	}
	if shop == nil {
		return nil, "", domain.ErrNotFound
	}

	borrowings, err := uc.borrowingRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: historial de fiados: %w", err)
	}

	now := uc.nowFn()
	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, shop, customer, borrowings, now)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: generar PDF: %w", err)
	}

	filename = fmt.Sprintf("estado-cuenta-%s-%s.pdf", customer.ID[:8], now.Format("20060102"))
	return pdfBytes, filename, nil
}
