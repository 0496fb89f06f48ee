package session

import (
	"context"
	"time"
)

// RevocationList remembers logged-out token ids until the token would have
// expired on its own.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
