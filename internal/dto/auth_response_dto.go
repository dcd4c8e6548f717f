package dto

import "time"

// IssueTokenRequest asks for a development token for an owner id.
type IssueTokenRequest struct {
	OwnerID string `json:"ownerId" binding:"required,max=128"`
}

// LoginResponse represents the response for a successful token issuance.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
