package sessionRepo

import (
	"context"

	"signup/models"
)

// SessionStore defines keyed, TTL-bound storage for in-progress wizard
// sessions. Absence of a key is a normal outcome (nil session, nil error),
// never an error: it means "no active session". Put resets the TTL to the
// full window from now; Get never refreshes it implicitly.
type SessionStore interface {
	// Put upserts the session and resets its TTL to the full window.
	Put(ctx context.Context, key string, session *models.Session) error
	// Get retrieves the session, or (nil, nil) if unknown or expired.
	Get(ctx context.Context, key string) (*models.Session, error)
	// Delete removes the session immediately; no-op if absent.
	Delete(ctx context.Context, key string) error
	// Close releases the backing resources.
	Close() error
}
