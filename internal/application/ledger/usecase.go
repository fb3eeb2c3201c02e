// Package ledger implementa el registro transaccional del día a día de la
// tienda: ventas, fiados, pagos y gastos. Los motores de analítica (scoring,
// forecast, reporting) solo leen lo que este paquete escribe.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/domain"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
	"github.com/jhoicas/libreta-api/internal/domain/repository"
	"github.com/jhoicas/libreta-api/pkg/logger"
)

// UseCase registra ventas, fiados, pagos y gastos.
type UseCase struct {
	txRunner      TxRunner
	customerRepo  repository.CustomerRepository
	borrowingRepo repository.BorrowingRepository
	expenseRepo   repository.ExpenseRepository
	log           *logger.Logger
	nowFn         func() time.Time
}

// NewUseCase construye el caso de uso del libro diario.
func NewUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	borrowingRepo repository.BorrowingRepository,
	expenseRepo repository.ExpenseRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		customerRepo:  customerRepo,
		borrowingRepo: borrowingRepo,
		expenseRepo:   expenseRepo,
		log:           log,
		nowFn:         time.Now,
	}
}

// RecordSale registra una venta. Si el método es CREDIT, crea además el
// fiado PENDING asociado y actualiza los totales del cliente, todo dentro de
// una sola transacción.
func (uc *UseCase) RecordSale(ctx context.Context, shopID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentMethod {
	case entity.PaymentMethodCash, entity.PaymentMethodOnline:
	case entity.PaymentMethodCredit:
		if in.CustomerID == "" {
			return nil, domain.ErrInvalidInput // fiado sin cliente no existe
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if in.CustomerID != "" {
		if err := uc.checkCustomer(ctx, shopID, in.CustomerID); err != nil {
			return nil, err
		}
	}

	now := uc.nowFn()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ShopID:        shopID,
		CustomerID:    in.CustomerID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Date:          now,
		Note:          in.Note,
		CreatedAt:     now,
	}

	var borrowingID string
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		borrowingRepo repository.BorrowingRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("crear venta: %w", err)
		}
		if in.CustomerID == "" {
			return nil
		}

		borrowedDelta := decimal.Zero
		if in.PaymentMethod == entity.PaymentMethodCredit {
			borrowing := &entity.Borrowing{
				ID:         uuid.New().String(),
				ShopID:     shopID,
				CustomerID: in.CustomerID,
				Amount:     in.Amount,
				Date:       now,
				DueDate:    in.DueDate,
				Status:     entity.BorrowingStatusPending,
				Note:       in.Note,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := borrowingRepo.Create(ctx, borrowing); err != nil {
				return fmt.Errorf("crear fiado de la venta: %w", err)
			}
			borrowingID = borrowing.ID
			borrowedDelta = in.Amount
		}
		if err := customerRepo.AddTotals(ctx, in.CustomerID, in.Amount, borrowedDelta); err != nil {
			return fmt.Errorf("actualizar totales del cliente: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleResponse{
		ID:            sale.ID,
		ShopID:        sale.ShopID,
		CustomerID:    sale.CustomerID,
		Amount:        sale.Amount,
		PaymentMethod: sale.PaymentMethod,
		Date:          sale.Date,
		Note:          sale.Note,
		BorrowingID:   borrowingID,
	}, nil
}

// RecordBorrowing registra un fiado directo (sin venta asociada, ej. préstamo
// en efectivo) y aumenta el saldo fiado del cliente.
func (uc *UseCase) RecordBorrowing(ctx context.Context, shopID string, in dto.RecordBorrowingRequest) (*dto.BorrowingResponse, error) {
	if !in.Amount.IsPositive() || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkCustomer(ctx, shopID, in.CustomerID); err != nil {
		return nil, err
	}

	now := uc.nowFn()
	borrowing := &entity.Borrowing{
		ID:         uuid.New().String(),
		ShopID:     shopID,
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Date:       now,
		DueDate:    in.DueDate,
		Status:     entity.BorrowingStatusPending,
		Note:       in.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.SaleRepository,
		borrowingRepo repository.BorrowingRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := borrowingRepo.Create(ctx, borrowing); err != nil {
			return fmt.Errorf("crear fiado: %w", err)
		}
		if err := customerRepo.AddTotals(ctx, in.CustomerID, decimal.Zero, in.Amount); err != nil {
			return fmt.Errorf("actualizar saldo fiado: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBorrowingResponse(borrowing), nil
}

// RecordPayment marca un fiado como PAID y descuenta el saldo del cliente.
// Solo PENDING u OVERDUE pueden pasar a PAID (ErrInvalidState en otro caso).
func (uc *UseCase) RecordPayment(ctx context.Context, shopID, borrowingID string) (*dto.BorrowingResponse, error) {
	borrowing, err := uc.borrowingRepo.GetByID(ctx, borrowingID)
	if err != nil {
		return nil, fmt.Errorf("cargar fiado: %w", err)
	}
	if borrowing == nil {
		return nil, domain.ErrNotFound
	}
	if borrowing.ShopID != shopID {
		return nil, domain.ErrForbidden
	}
	if !borrowing.CanTransitionTo(entity.BorrowingStatusPaid) {
		return nil, domain.ErrInvalidState
	}

	now := uc.nowFn()
	err = uc.txRunner.Run(ctx, func(
		_ repository.SaleRepository,
		borrowingRepo repository.BorrowingRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := borrowingRepo.UpdateStatus(ctx, borrowingID, entity.BorrowingStatusPaid, &now); err != nil {
			return fmt.Errorf("marcar fiado pagado: %w", err)
		}
		if err := customerRepo.AddTotals(ctx, borrowing.CustomerID, decimal.Zero, borrowing.Amount.Neg()); err != nil {
			return fmt.Errorf("descontar saldo fiado: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	borrowing.Status = entity.BorrowingStatusPaid
	borrowing.PaidAt = &now
	return toBorrowingResponse(borrowing), nil
}

// MarkOverdue transiciona a OVERDUE los fiados PENDING cuya fecha de
// vencimiento ya pasó. Lo invoca un handler o un scheduler externo; el motor
// de scoring nunca infiere vencidos por fecha, depende de este barrido.
// Fallos individuales se registran y no abortan el barrido.
func (uc *UseCase) MarkOverdue(ctx context.Context, shopID string) (int, error) {
	now := uc.nowFn()
	pending, err := uc.borrowingRepo.ListPendingDueBefore(ctx, shopID, now)
	if err != nil {
		return 0, fmt.Errorf("listar fiados por vencer: %w", err)
	}
	marked := 0
	for _, b := range pending {
		if err := uc.borrowingRepo.UpdateStatus(ctx, b.ID, entity.BorrowingStatusOverdue, nil); err != nil {
			uc.log.Warn().Str("borrowing_id", b.ID).Err(err).Msg("mark-overdue: fiado omitido")
			continue
		}
		marked++
	}
	return marked, nil
}

// RecordExpense registra un gasto de la tienda.
func (uc *UseCase) RecordExpense(ctx context.Context, shopID string, in dto.RecordExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.IsPositive() || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.nowFn()
	expense := &entity.Expense{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		Category:  in.Category,
		Amount:    in.Amount,
		Date:      now,
		Note:      in.Note,
		CreatedAt: now,
	}
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("crear gasto: %w", err)
	}
	return &dto.ExpenseResponse{
		ID:       expense.ID,
		ShopID:   expense.ShopID,
		Category: expense.Category,
		Amount:   expense.Amount,
		Date:     expense.Date,
		Note:     expense.Note,
	}, nil
}

// checkCustomer valida que el cliente exista y pertenezca a la tienda.
func (uc *UseCase) checkCustomer(ctx context.Context, shopID, customerID string) error {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("cargar cliente: %w", err)
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.ShopID != shopID {
		return domain.ErrForbidden
	}
	return nil
}

func toBorrowingResponse(b *entity.Borrowing) *dto.BorrowingResponse {
	return &dto.BorrowingResponse{
		ID:         b.ID,
		ShopID:     b.ShopID,
		CustomerID: b.CustomerID,
		Amount:     b.Amount,
		Date:       b.Date,
		DueDate:    b.DueDate,
		Status:     b.Status,
		PaidAt:     b.PaidAt,
		Note:       b.Note,
	}
}
