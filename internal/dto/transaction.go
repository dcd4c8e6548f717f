package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// ListTransactionsParams are the query parameters of GET /transactions.
// NextToken takes precedence over Page.
type ListTransactionsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	NextToken string `form:"nextToken"`
}

// TransactionResponse defines data returned for a journal record.
type TransactionResponse struct {
	TransactionID  string                   `json:"transactionID"`
	WalletID       string                   `json:"walletID"`
	Kind           domain.TransactionKind   `json:"kind"`
	Amount         MoneyResponse            `json:"amount"`
	CounterpartyID string                   `json:"counterpartyID,omitempty"`
	Reference      string                   `json:"reference"`
	Status         domain.TransactionStatus `json:"status"`
	Category       string                   `json:"category,omitempty"`
	Description    string                   `json:"description,omitempty"`
	BillID         string                   `json:"billID,omitempty"`
	ErrorKind      apperrors.Kind           `json:"errorKind,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	FinalizedAt    *time.Time               `json:"finalizedAt,omitempty"`
}

// ListTransactionsResponse is a page of records, most recent first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
	HasMore      bool                  `json:"hasMore"`
}

// ToTransactionResponse converts a domain.TransactionRecord to TransactionResponse DTO.
func ToTransactionResponse(r *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		TransactionID:  r.TransactionID,
		WalletID:       r.WalletID,
		Kind:           r.Kind,
		Amount:         ToMoneyResponse(r.Amount),
		CounterpartyID: r.CounterpartyID,
		Reference:      r.Reference,
		Status:         r.Status,
		Category:       r.Category,
		Description:    r.Description,
		BillID:         r.BillID,
		ErrorKind:      r.ErrorKind,
		CreatedAt:      r.CreatedAt,
		FinalizedAt:    r.FinalizedAt,
	}
}

// ToTransactionResponses converts a slice of records.
func ToTransactionResponses(records []domain.TransactionRecord) []TransactionResponse {
	responses := make([]TransactionResponse, len(records))
	for i := range records {
		responses[i] = ToTransactionResponse(&records[i])
	}
	return responses
}
