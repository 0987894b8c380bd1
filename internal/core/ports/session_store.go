package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// SessionStore persists password-stripped sessions keyed by token id.
// Only the auth service writes sessions; everything else reads.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, tokenID string) (*domain.Session, error)
	// Delete removes a persisted session. Deleting an absent session is
	// a no-op.
	Delete(ctx context.Context, tokenID string) error
}
