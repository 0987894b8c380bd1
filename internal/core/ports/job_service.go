package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// CreateJobInput carries all data needed to post a new job. EmployerID is
// pinned from the caller's session by the service.
type CreateJobInput struct {
	Title           string
	Type            string
	Description     string
	Location        string
	Salary          string
	RequiredSkills  []string
	PreferredSkills []string
}

// UpdateJobInput is a partial update of an existing job posting.
type UpdateJobInput struct {
	Title           *string
	Type            *string
	Description     *string
	Location        *string
	Salary          *string
	RequiredSkills  []string
	PreferredSkills []string
	Status          *string
}

// JobRecommendation pairs a job with how many of the developer's skills
// it matches.
type JobRecommendation struct {
	Job        *domain.Job `json:"job"`
	MatchCount int         `json:"matchCount"`
}

// JobService defines use-case operations for job postings. Mutations are
// restricted to the owning employer or an admin.
type JobService interface {
	Create(ctx context.Context, session *domain.Session, input CreateJobInput) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, error)
	Recommend(ctx context.Context, session *domain.Session) ([]JobRecommendation, error)
	Update(ctx context.Context, session *domain.Session, id string, input UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, session *domain.Session, id string) error
}
