package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBillRequest defines data for creating a bill.
type CreateBillRequest struct {
	Name        string          `json:"name" binding:"required,max=128"`
	Category    string          `json:"category" binding:"required,max=64"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Currency    string          `json:"currency" binding:"omitempty,iso4217"`
	DueDate     time.Time       `json:"dueDate" binding:"required"`
	Recurring   bool            `json:"isRecurring"`
	Description string          `json:"description" binding:"max=255"`
}

// ListBillsParams are the query parameters of GET /bills.
type ListBillsParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// BillResponse defines data returned for a bill. Status is the effective status.
type BillResponse struct {
	BillID      string            `json:"billID"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Amount      MoneyResponse     `json:"amount"`
	DueDate     time.Time         `json:"dueDate"`
	Status      domain.BillStatus `json:"status"`
	Recurring   bool              `json:"isRecurring"`
	Description string            `json:"description,omitempty"`
	PaidAt      *time.Time        `json:"paidAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ListBillsResponse is a page of bills ordered by due date.
type ListBillsResponse struct {
	Bills   []BillResponse `json:"bills"`
	HasMore bool           `json:"hasMore"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
}

// ToBillResponse converts domain.Bill to DTO, deriving OVERDUE at now.
func ToBillResponse(b *domain.Bill, now time.Time) BillResponse {
	return BillResponse{
		BillID:      b.BillID,
		Name:        b.Name,
		Category:    b.Category,
		Amount:      ToMoneyResponse(b.Amount),
		DueDate:     b.DueDate,
		Status:      b.EffectiveStatus(now),
		Recurring:   b.Recurring,
		Description: b.Description,
		PaidAt:      b.PaidAt,
		CreatedAt:   b.CreatedAt,
	}
}

// ToBillResponses converts a slice of bills.
func ToBillResponses(bills []domain.Bill, now time.Time) []BillResponse {
	out := make([]BillResponse, len(bills))
	for i := range bills {
		out[i] = ToBillResponse(&bills[i], now)
	}
	return out
}
