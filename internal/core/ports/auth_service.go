package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Company   string
}

// UpdateProfileInput is a partial update of the caller's own account.
// Identity fields (id, email, role) are pinned from the session and can
// never be overwritten through this input.
type UpdateProfileInput struct {
	FirstName    *string
	LastName     *string
	Company      *string
	About        *string
	ProfilePhoto *string
	Resume       *string
	IntroVideo   *string
	CompanyLogo  *string
	Skills       []string
}

// AuthService is the single source of truth for who is logged in and what
// they may do.
type AuthService interface {
	// Initialize restores and re-validates a persisted session from a
	// bearer token. Every failure path degrades to "logged out": the
	// stale session is cleared and ErrSessionNotFound is returned.
	Initialize(ctx context.Context, token string) (*domain.Session, error)
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	Register(ctx context.Context, input RegisterInput) (string, *domain.Session, error)
	// Logout clears the persisted session. Idempotent.
	Logout(ctx context.Context, tokenID string) error
	UpdateProfile(ctx context.Context, session *domain.Session, input UpdateProfileInput) (*domain.Account, *domain.Session, error)
	// RefreshSession re-reads the account and reinstalls the session
	// projection under the same token.
	RefreshSession(ctx context.Context, session *domain.Session) (*domain.Session, error)
	// GetAllUsers returns every account, passwords stripped. Non-admin
	// callers get an empty result, not an error.
	GetAllUsers(ctx context.Context, session *domain.Session) ([]*domain.Account, error)
	// ToggleSavedJob adds the job id to the caller's saved list when
	// absent and removes it when present. Returns the new list and
	// whether the job is now saved.
	ToggleSavedJob(ctx context.Context, session *domain.Session, jobID string) ([]string, bool, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}
