package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/devhire/jobboard/internal/api/metrics"
	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
)

const maxJobListLimit = 100

// JobService implements job-posting use cases. Mutations are restricted
// to the owning employer or an admin.
type JobService struct {
	repo     ports.JobRepository
	skills   ports.SkillRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewJobService(repo ports.JobRepository, skills ports.SkillRepository, accounts ports.AccountRepository, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, skills: skills, accounts: accounts, log: log}
}

func (s *JobService) Create(ctx context.Context, session *domain.Session, input ports.CreateJobInput) (*domain.Job, error) {
	if !session.HasAnyRole(domain.RoleEmployer, domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	if err := s.validateSkills(ctx, input.RequiredSkills); err != nil {
		return nil, err
	}
	if err := s.validateSkills(ctx, input.PreferredSkills); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &domain.Job{
		ID:              newID(),
		EmployerID:      session.UserID,
		Title:           input.Title,
		Type:            input.Type,
		Description:     input.Description,
		Location:        input.Location,
		Salary:          input.Salary,
		RequiredSkills:  dedupe(input.RequiredSkills),
		PreferredSkills: dedupe(input.PreferredSkills),
		Status:          domain.JobActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.Type).Inc()
	s.log.Info().Str("job_id", job.ID).Str("employer_id", job.EmployerID).Msg("job created")
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *JobService) List(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, error) {
	if filter.Limit <= 0 || filter.Limit > maxJobListLimit {
		filter.Limit = maxJobListLimit
	}
	return s.repo.List(ctx, filter)
}

func (s *JobService) Update(ctx context.Context, session *domain.Session, id string, input ports.UpdateJobInput) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != session.UserID && !session.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Type != nil {
		job.Type = *input.Type
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Salary != nil {
		job.Salary = *input.Salary
	}
	if input.RequiredSkills != nil {
		if err := s.validateSkills(ctx, input.RequiredSkills); err != nil {
			return nil, err
		}
		job.RequiredSkills = dedupe(input.RequiredSkills)
	}
	if input.PreferredSkills != nil {
		if err := s.validateSkills(ctx, input.PreferredSkills); err != nil {
			return nil, err
		}
		job.PreferredSkills = dedupe(input.PreferredSkills)
	}
	if input.Status != nil {
		job.Status = domain.JobStatus(*input.Status)
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Recommend returns active jobs ranked by how many of the calling
// developer's skills they match. Jobs matching none are left out; ties
// keep the listing order.
func (s *JobService) Recommend(ctx context.Context, session *domain.Session) ([]ports.JobRecommendation, error) {
	if !session.HasRole(domain.RoleDeveloper) {
		return nil, domain.ErrForbidden
	}
	account, err := s.accounts.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.List(ctx, ports.ListJobsFilter{Status: string(domain.JobActive), Limit: maxJobListLimit})
	if err != nil {
		return nil, err
	}

	recs := make([]ports.JobRecommendation, 0, len(jobs))
	for _, job := range jobs {
		if n := job.SkillMatchCount(account.Skills); n > 0 {
			recs = append(recs, ports.JobRecommendation{Job: job, MatchCount: n})
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchCount > recs[j].MatchCount
	})
	return recs, nil
}

// validateSkills checks every referenced skill id against the catalog.
func (s *JobService) validateSkills(ctx context.Context, ids []string) error {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil
	}
	known, err := s.skills.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("validate skills: %w", err)
	}
	if len(known) != len(ids) {
		return domain.ErrUnknownSkill
	}
	return nil
}

func (s *JobService) Delete(ctx context.Context, session *domain.Session, id string) error {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if job.EmployerID != session.UserID && !session.HasRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	s.log.Info().Str("job_id", id).Msg("job deleted")
	return nil
}
