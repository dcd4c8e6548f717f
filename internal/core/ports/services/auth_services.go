package services

import (
	"context"
	"time"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT whose subject is ownerID.
	GenerateAccessToken(ctx context.Context, ownerID string) (string, time.Time, error)
}
