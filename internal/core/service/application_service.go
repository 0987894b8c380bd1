package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devhire/jobboard/internal/api/metrics"
	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
)

// ApplicationService implements job-application use cases.
type ApplicationService struct {
	apps ports.ApplicationRepository
	jobs ports.JobRepository
	log  zerolog.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, jobs ports.JobRepository, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, log: log}
}

// Apply creates a pending application for the calling developer. A
// developer can hold at most one application per job.
func (s *ApplicationService) Apply(ctx context.Context, session *domain.Session, input ports.ApplyInput) (*domain.Application, error) {
	if !session.HasRole(domain.RoleDeveloper) {
		return nil, domain.ErrForbidden
	}

	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobActive {
		return nil, domain.ErrJobNotFound
	}

	if existing, err := s.apps.FindByJobAndDeveloper(ctx, input.JobID, session.UserID); err == nil && existing != nil {
		return nil, domain.ErrDuplicateApplication
	} else if err != nil && err != domain.ErrApplicationNotFound {
		return nil, fmt.Errorf("apply: %w", err)
	}

	now := time.Now().UTC()
	app := &domain.Application{
		ID:          newID(),
		JobID:       input.JobID,
		DeveloperID: session.UserID,
		CoverLetter: input.CoverLetter,
		Status:      domain.ApplicationPending,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	metrics.ApplicationsCreatedTotal.Inc()
	s.log.Info().Str("job_id", app.JobID).Str("developer_id", app.DeveloperID).Msg("application submitted")
	return app, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, session *domain.Session) ([]*domain.Application, error) {
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.apps.ListByDeveloper(ctx, session.UserID)
}

// ListByJob is visible to the employer owning the job, or an admin.
func (s *ApplicationService) ListByJob(ctx context.Context, session *domain.Session, jobID string) ([]*domain.Application, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != session.UserID && !session.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	return s.apps.ListByJob(ctx, jobID)
}

// UpdateStatus accepts or rejects an application on behalf of the
// employer owning the job.
func (s *ApplicationService) UpdateStatus(ctx context.Context, session *domain.Session, id string, status string) (*domain.Application, error) {
	next := domain.ApplicationStatus(status)
	if next != domain.ApplicationAccepted && next != domain.ApplicationRejected {
		return nil, fmt.Errorf("unsupported application status %q", status)
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != session.UserID && !session.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.apps.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	s.log.Info().Str("application_id", id).Str("status", status).Msg("application reviewed")
	return updated, nil
}

// Withdraw removes the caller's own application.
func (s *ApplicationService) Withdraw(ctx context.Context, session *domain.Session, id string) error {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if app.DeveloperID != session.UserID && !session.HasRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if err := s.apps.Delete(ctx, id); err != nil {
		return fmt.Errorf("withdraw application: %w", err)
	}
	return nil
}
