package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// ApplyInput carries the data needed to apply to a job. DeveloperID is
// pinned from the caller's session by the service.
type ApplyInput struct {
	JobID       string
	CoverLetter string
}

// ApplicationService defines use-case operations for job applications.
type ApplicationService interface {
	// Apply creates a pending application. A developer can apply to a
	// job at most once.
	Apply(ctx context.Context, session *domain.Session, input ApplyInput) (*domain.Application, error)
	ListMine(ctx context.Context, session *domain.Session) ([]*domain.Application, error)
	// ListByJob returns a job's applications to the owning employer or
	// an admin.
	ListByJob(ctx context.Context, session *domain.Session, jobID string) ([]*domain.Application, error)
	// UpdateStatus accepts or rejects an application. Restricted to the
	// employer owning the job, or an admin.
	UpdateStatus(ctx context.Context, session *domain.Session, id string, status string) (*domain.Application, error)
	// Withdraw deletes the caller's own application.
	Withdraw(ctx context.Context, session *domain.Session, id string) error
}
