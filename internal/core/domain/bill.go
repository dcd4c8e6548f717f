package domain

import "time"

// BillStatus is the stored status of a bill. OVERDUE is only ever derived.
type BillStatus string

const (
	BillPending BillStatus = "PENDING"
	BillPaid    BillStatus = "PAID"
	BillOverdue BillStatus = "OVERDUE"
)

// Bill is a payable obligation owned by a user.
type Bill struct {
	BillID      string     `json:"billID"`
	OwnerID     string     `json:"ownerID"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Amount      Money      `json:"amount"`
	DueDate     time.Time  `json:"dueDate"`
	Status      BillStatus `json:"status"`
	Recurring   bool       `json:"recurring"`
	Description string     `json:"description,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	Version     int64      `json:"version"`
	AuditFields
}

// EffectiveStatus returns OVERDUE for an unpaid bill past its due date.
func (b Bill) EffectiveStatus(now time.Time) BillStatus {
	if b.Status == BillPending && now.After(b.DueDate) {
		return BillOverdue
	}
	return b.Status
}

// NextOccurrence builds the unpaid bill that follows a paid recurring bill, due one month later.
func (b Bill) NextOccurrence(newID string, now time.Time) Bill {
	return Bill{
		BillID:      newID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Category:    b.Category,
		Amount:      b.Amount,
		DueDate:     b.DueDate.AddDate(0, 1, 0),
		Status:      BillPending,
		Recurring:   true,
		Description: b.Description,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     b.OwnerID,
			LastUpdatedAt: now,
			LastUpdatedBy: b.OwnerID,
		},
	}
}
