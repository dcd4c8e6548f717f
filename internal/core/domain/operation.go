package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
)

// OperationKind is a balance-mutating operation the engine can execute.
type OperationKind string

const (
	OperationTransfer    OperationKind = "TRANSFER"
	OperationBillPayment OperationKind = "BILL_PAYMENT"
	OperationDeposit     OperationKind = "DEPOSIT"
	OperationWithdrawal  OperationKind = "WITHDRAWAL"
)

// RecordKind is the kind of the journal record written for the source wallet.
func (k OperationKind) RecordKind() TransactionKind {
	switch k {
	case OperationTransfer:
		return KindSend
	case OperationBillPayment:
		return KindBillPayment
	case OperationDeposit:
		return KindDeposit
	default:
		return KindWithdrawal
	}
}

// OperationRequest is a caller's request to move money. Reference is the idempotency key.
type OperationRequest struct {
	Reference      string
	Kind           OperationKind
	SourceWalletID string
	TargetWalletID string
	BillID         string
	// Amount may be left zero for a bill payment, in which case the bill amount is used.
	Amount      Money
	Category    string
	Description string
}

// Validate checks the request shape. It never touches stored state.
func (r OperationRequest) Validate() error {
	if strings.TrimSpace(r.Reference) == "" {
		return fmt.Errorf("%w: reference is required", apperrors.ErrValidation)
	}
	if strings.HasSuffix(r.Reference, ReceiveSuffix) {
		return fmt.Errorf("%w: reference must not end with %s", apperrors.ErrValidation, ReceiveSuffix)
	}
	if r.SourceWalletID == "" {
		return fmt.Errorf("%w: sourceWalletId is required", apperrors.ErrValidation)
	}
	switch r.Kind {
	case OperationTransfer:
		if r.TargetWalletID == "" {
			return fmt.Errorf("%w: targetWalletId is required for a transfer", apperrors.ErrValidation)
		}
	case OperationBillPayment:
		if r.BillID == "" {
			return fmt.Errorf("%w: billId is required for a bill payment", apperrors.ErrValidation)
		}
		if r.Amount.MinorUnits == 0 && r.Amount.Currency == "" {
			return nil
		}
	case OperationDeposit, OperationWithdrawal:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownOperationKind, r.Kind)
	}
	if !IsValidCurrency(r.Amount.Currency) {
		return fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, r.Amount.Currency)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// OperationResult is returned for both fresh executions and idempotent retries.
type OperationResult struct {
	Reference     string            `json:"reference"`
	Kind          OperationKind     `json:"kind"`
	Status        TransactionStatus `json:"status"`
	TransactionID string            `json:"transactionId"`
	ErrorKind     apperrors.Kind    `json:"errorKind,omitempty"`
	// Replayed is set when the result comes from an earlier execution of the same reference.
	Replayed bool `json:"replayed"`
}

// OperationCommitted is announced after an operation's unit of work commits.
type OperationCommitted struct {
	Reference      string        `json:"reference"`
	Kind           OperationKind `json:"kind"`
	TransactionID  string        `json:"transactionId"`
	OwnerID        string        `json:"ownerId"`
	SourceWalletID string        `json:"sourceWalletId"`
	TargetWalletID string        `json:"targetWalletId,omitempty"`
	BillID         string        `json:"billId,omitempty"`
	Amount         Money         `json:"amount"`
	Category       string        `json:"category,omitempty"`
	CommittedAt    time.Time     `json:"committedAt"`
}
