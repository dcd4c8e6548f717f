package domain

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
)

// TransactionKind is the direction and purpose of a journal record.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdrawal  TransactionKind = "WITHDRAWAL"
	KindSend        TransactionKind = "SEND"
	KindReceive     TransactionKind = "RECEIVE"
	KindBillPayment TransactionKind = "BILL_PAYMENT"
)

// IsOutgoing reports whether the kind moves money out of the wallet.
func (k TransactionKind) IsOutgoing() bool {
	return k == KindSend || k == KindWithdrawal || k == KindBillPayment
}

// TransactionStatus is the lifecycle state of a journal record.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// IsTerminal reports whether the status can no longer change.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ReceiveSuffix is appended to a transfer's reference to key its RECEIVE leg.
const ReceiveSuffix = "#RECEIVE"

// ReceiveReference derives the reference of the RECEIVE leg of a transfer.
func ReceiveReference(reference string) string {
	return reference + ReceiveSuffix
}

// TransactionRecord is one append-only journal entry.
type TransactionRecord struct {
	TransactionID  string            `json:"transactionID"`
	WalletID       string            `json:"walletID"`
	OwnerID        string            `json:"ownerID"`
	Kind           TransactionKind   `json:"kind"`
	Amount         Money             `json:"amount"`
	CounterpartyID string            `json:"counterpartyID,omitempty"`
	Reference      string            `json:"reference"`
	Status         TransactionStatus `json:"status"`
	Category       string            `json:"category,omitempty"`
	Description    string            `json:"description,omitempty"`
	BillID         string            `json:"billID,omitempty"`
	ErrorKind      apperrors.Kind    `json:"errorKind,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	FinalizedAt    *time.Time        `json:"finalizedAt,omitempty"`
}

// CountsTowards reports whether the record, once completed, contributes to the budget's
// spent amount. Status is not checked here.
func (r TransactionRecord) CountsTowards(b Budget) bool {
	return r.Kind.IsOutgoing() &&
		r.OwnerID == b.OwnerID &&
		r.Category != "" &&
		r.Category == b.Category &&
		r.Amount.Currency == b.Limit.Currency &&
		b.Period.Contains(r.CreatedAt)
}

// ListParams selects a page of journal records, either by page number or by cursor.
type ListParams struct {
	Limit     int
	Page      int
	NextToken string
}
