package dto

import (
	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExecuteOperationRequest is the body of POST /operations. The reference may instead be
// supplied in the Idempotency-Key header.
type ExecuteOperationRequest struct {
	Reference      string               `json:"reference"`
	Kind           domain.OperationKind `json:"kind" binding:"required,oneof=TRANSFER BILL_PAYMENT DEPOSIT WITHDRAWAL"`
	SourceWalletID string               `json:"sourceWalletId" binding:"required"`
	TargetWalletID string               `json:"targetWalletId"`
	BillID         string               `json:"billId"`
	// Amount is optional for bill payments; the bill's own amount is used when omitted.
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	Currency    string           `json:"currency" binding:"omitempty,iso4217"`
	Category    string           `json:"category" binding:"max=64"`
	Description string           `json:"description" binding:"max=255"`
}

// ToDomain converts the request into an engine request. Currency defaults to USD.
func (r ExecuteOperationRequest) ToDomain() (domain.OperationRequest, error) {
	req := domain.OperationRequest{
		Reference:      r.Reference,
		Kind:           r.Kind,
		SourceWalletID: r.SourceWalletID,
		TargetWalletID: r.TargetWalletID,
		BillID:         r.BillID,
		Category:       r.Category,
		Description:    r.Description,
	}
	if r.Amount == nil {
		return req, nil
	}
	currency := r.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	amount, err := domain.MoneyFromDecimal(*r.Amount, currency)
	if err != nil {
		return domain.OperationRequest{}, err
	}
	req.Amount = amount
	return req, nil
}

// OperationResponse is returned for fresh and replayed operations alike.
type OperationResponse struct {
	Status        domain.TransactionStatus `json:"status"`
	TransactionID string                   `json:"transactionId"`
	Reference     string                   `json:"reference"`
	Kind          domain.OperationKind     `json:"kind"`
	ErrorKind     apperrors.Kind           `json:"errorKind,omitempty"`
	Replayed      bool                     `json:"replayed"`
}

// ToOperationResponse converts an engine result to its response.
func ToOperationResponse(r *domain.OperationResult) OperationResponse {
	return OperationResponse{
		Status:        r.Status,
		TransactionID: r.TransactionID,
		Reference:     r.Reference,
		Kind:          r.Kind,
		ErrorKind:     r.ErrorKind,
		Replayed:      r.Replayed,
	}
}
