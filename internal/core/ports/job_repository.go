package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// ListJobsFilter carries all query parameters for listing jobs.
type ListJobsFilter struct {
	EmployerID string // empty = no filter
	Status     string // optional: "active" or "closed"
	Type       string // optional: job type
	Search     string // optional: partial match on title, description or location
	Limit      int    // 0 = no limit (capped by the service)
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
}
