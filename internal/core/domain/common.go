package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Touch records an update by userID at now.
func (a *AuditFields) Touch(userID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
}

// EntityType names the kinds of entity a unit of work can lock.
type EntityType string

const (
	EntityWallet EntityType = "WALLET"
	EntityBill   EntityType = "BILL"
	EntityBudget EntityType = "BUDGET"
)

// Rank is the position of the entity type in the canonical lock order.
func (t EntityType) Rank() int {
	switch t {
	case EntityWallet:
		return 0
	case EntityBill:
		return 1
	case EntityBudget:
		return 2
	default:
		return 3
	}
}
