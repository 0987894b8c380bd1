package ports

import (
	"context"

	"github.com/devhire/jobboard/internal/core/domain"
)

// ApplicationRepository defines persistence operations for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	FindByJobAndDeveloper(ctx context.Context, jobID, developerID string) (*domain.Application, error)
	ListByDeveloper(ctx context.Context, developerID string) ([]*domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	Delete(ctx context.Context, id string) error
}
