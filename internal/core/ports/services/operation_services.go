package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// OperationSvc executes balance-mutating operations.
type OperationSvc interface {
	// Execute runs the operation for ownerID all-or-nothing. A reference that already
	// completed returns the earlier result with Replayed set. Failures return both a
	// FAILED result (when a journal record exists) and the classified error.
	Execute(ctx context.Context, ownerID string, req domain.OperationRequest) (*domain.OperationResult, error)
}

// EventPublisher announces committed operations to other systems.
type EventPublisher interface {
	PublishOperationCommitted(ctx context.Context, event domain.OperationCommitted) error
}
