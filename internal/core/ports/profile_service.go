package ports

import (
	"context"
	"time"

	"github.com/devhire/jobboard/internal/core/domain"
)

// EditOrigin says which profile version seeded the working copy.
type EditOrigin string

const (
	EditFromPublished EditOrigin = "published"
	EditFromDraft     EditOrigin = "draft"
)

// ProfileView names the observable profile-editing states.
type ProfileView string

const (
	ViewingPublished    ProfileView = "published"
	ViewingDraftPending ProfileView = "draft_pending"
	Editing             ProfileView = "editing"
)

// EditState is a snapshot of an edit session handed to the transport
// layer. WorkingCopy is a copy; mutating it has no effect.
type EditState struct {
	View              ProfileView
	Origin            EditOrigin
	WorkingCopy       *domain.ProfileDraft
	HasUnsavedChanges bool
	LastSaved         time.Time
}

// ProfileService owns the editable-vs-visible duality of a profile: an
// auto-saved working draft and the published snapshot everyone else sees,
// with explicit publish and discard transitions between them.
type ProfileService interface {
	// BeginEdit opens an edit session for the account, seeding the
	// working copy from the pending draft when one exists, else from the
	// published profile. No persistence side effect.
	BeginEdit(ctx context.Context, userID string) (*EditState, error)
	// FieldChange updates one field of the working copy and restarts
	// the auto-save debounce. Legal only while editing.
	FieldChange(ctx context.Context, userID, field, value string) (*EditState, error)
	// SkillAdd adds a skill id to the working copy set. Adding a present
	// id is a no-op.
	SkillAdd(ctx context.Context, userID, skillID string) (*EditState, error)
	// SkillRemove removes a skill id from the working copy set. Removing
	// an absent id is a no-op.
	SkillRemove(ctx context.Context, userID, skillID string) (*EditState, error)
	// SaveDraft persists the working copy as the pending draft now,
	// surfacing any persistence error to the caller.
	SaveDraft(ctx context.Context, userID string) (*EditState, error)
	// Publish atomically replaces the published profile with the working
	// copy and clears the draft. The edit session closes only on
	// confirmed remote success; on failure the working copy is restored
	// to its pre-attempt snapshot and the session stays open.
	Publish(ctx context.Context, userID string) (*domain.Account, error)
	// Discard clears the pending draft without touching the published
	// profile and closes the edit session. Idempotent.
	Discard(ctx context.Context, userID string) (*domain.Account, error)
	// Cancel leaves editing without publishing or discarding. A final
	// best-effort flush covers unsaved changes; the pending debounce
	// timer is always stopped.
	Cancel(ctx context.Context, userID string) error
	// Status reports the current view for the account: editing, draft
	// pending, or published.
	Status(ctx context.Context, userID string) (*EditState, error)
	// Close tears down every open edit session. For shutdown.
	Close()
}
