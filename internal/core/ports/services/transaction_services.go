package services

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations over the journal.
type TransactionReaderSvc interface {
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	GetTransactionByReference(ctx context.Context, ownerID, reference string) (*domain.TransactionRecord, error)
}

// PendingSweeperSvc finalizes records left PENDING by an interrupted operation.
type PendingSweeperSvc interface {
	SweepStalePending(ctx context.Context, maxAge time.Duration) (int, error)
}

// TransactionSvcFacade combines all journal service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	PendingSweeperSvc
}
