package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/pagination"
)

const (
	defaultTransactionPageSize = 10
	maxTransactionPageSize     = 100
)

type transactionService struct {
	BaseService
	journal portsrepo.Journal
}

// NewTransactionService creates a new service over the journal.
func NewTransactionService(journal portsrepo.Journal) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService: newBaseService(),
		journal:     journal,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	listParams := domain.ListParams{
		Limit:     pagination.NormalizeLimit(params.Limit, defaultTransactionPageSize, maxTransactionPageSize),
		Page:      params.Page,
		NextToken: params.NextToken,
	}
	records, nextToken, err := s.journal.ListByOwner(ctx, ownerID, listParams)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(records),
		NextToken:    nextToken,
		HasMore:      nextToken != nil,
	}, nil
}

// GetTransactionByReference returns the owner's record for reference. Records of other
// owners are reported as not found.
func (s *transactionService) GetTransactionByReference(ctx context.Context, ownerID, reference string) (*domain.TransactionRecord, error) {
	record, err := s.journal.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("transaction " + reference)
	}
	return record, nil
}

// SweepStalePending fails records that stayed PENDING longer than maxAge. An operation
// still running when its record is swept fails at commit, because finalizing requires
// the record to be PENDING.
func (s *transactionService) SweepStalePending(ctx context.Context, maxAge time.Duration) (int, error) {
	now := s.Now()
	n, err := s.journal.FailStalePending(ctx, now.Add(-maxAge), now)
	if err != nil {
		s.LogError(ctx, err, "Failed to sweep stale pending records")
		return 0, err
	}
	if n > 0 {
		s.LogWarn(ctx, "Failed stale pending records", slog.Int("count", n), slog.Duration("max_age", maxAge))
	}
	return n, nil
}
