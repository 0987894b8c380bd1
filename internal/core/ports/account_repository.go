package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts and their
// nested profile drafts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	// Update replaces the mutable published fields of the account.
	Update(ctx context.Context, account *domain.Account) error
	// SaveDraft persists draft as the account's pending draft object.
	SaveDraft(ctx context.Context, id string, draft *domain.ProfileDraft) error
	// ClearDraft removes the pending draft without touching published
	// fields. Clearing an absent draft is a no-op.
	ClearDraft(ctx context.Context, id string) error
	// PublishDraft atomically replaces the published profile fields with
	// the draft's content and clears the draft in the same write.
	PublishDraft(ctx context.Context, id string, draft *domain.ProfileDraft) (*domain.Account, error)
	// SetSavedJobs replaces the account's saved-job id list.
	SetSavedJobs(ctx context.Context, id string, jobIDs []string) error
}
