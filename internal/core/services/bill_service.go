package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/pagination"
)

const (
	defaultBillPageSize = 10
	maxBillPageSize     = 100
)

type billService struct {
	BaseService
	billRepo portsrepo.BillRepository
}

// NewBillService creates a new bill service.
func NewBillService(billRepo portsrepo.BillRepository) portssvc.BillSvcFacade {
	return &billService{
		BaseService: newBaseService(),
		billRepo:    billRepo,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, ownerID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	amount, err := domain.MoneyFromDecimal(req.Amount, currency)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: bill amount must be positive", apperrors.ErrValidation)
	}

	now := s.Now()
	bill := domain.Bill{
		BillID:      s.NewID(),
		OwnerID:     ownerID,
		Name:        req.Name,
		Category:    req.Category,
		Amount:      amount,
		DueDate:     req.DueDate.UTC(),
		Status:      domain.BillPending,
		Recurring:   req.Recurring,
		Description: req.Description,
		Version:     1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}
	if err := s.billRepo.CreateBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to create bill", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return &bill, nil
}

func (s *billService) ListBills(ctx context.Context, ownerID string, params dto.ListBillsParams) (*dto.ListBillsResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit, defaultBillPageSize, maxBillPageSize)
	offset := max(params.Offset, 0)

	bills, hasMore, err := s.billRepo.ListBillsByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills")
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return &dto.ListBillsResponse{
		Bills:   dto.ToBillResponses(bills, s.Now()),
		HasMore: hasMore,
		Offset:  offset,
		Limit:   limit,
	}, nil
}
