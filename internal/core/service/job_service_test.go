package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
)

type stubJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	if j == nil {
		return nil
	}
	clone := *j
	clone.RequiredSkills = append([]string(nil), j.RequiredSkills...)
	clone.PreferredSkills = append([]string(nil), j.PreferredSkills...)
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, filter ports.ListJobsFilter) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if filter.EmployerID != "" && j.EmployerID != filter.EmployerID {
			continue
		}
		if filter.Status != "" && string(j.Status) != filter.Status {
			continue
		}
		if filter.Type != "" && j.Type != filter.Type {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(j.Title), needle) &&
				!strings.Contains(strings.ToLower(j.Description), needle) &&
				!strings.Contains(strings.ToLower(j.Location), needle) {
				continue
			}
		}
		out = append(out, cloneJob(j))
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

// stubSkillRepo is a fixed skill catalog.
type stubSkillRepo struct {
	known map[string]*domain.Skill
}

func newStubSkillRepo(ids ...string) *stubSkillRepo {
	known := make(map[string]*domain.Skill, len(ids))
	for _, id := range ids {
		known[id] = &domain.Skill{ID: id, Name: id}
	}
	return &stubSkillRepo{known: known}
}

func (r *stubSkillRepo) List(context.Context) ([]*domain.Skill, error) {
	out := make([]*domain.Skill, 0, len(r.known))
	for _, s := range r.known {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubSkillRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Skill, error) {
	out := make([]*domain.Skill, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.known[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestJobService(repo *stubJobRepo) *JobService {
	return NewJobService(repo, newStubSkillRepo("go", "mongodb", "react"), newStubAccountRepo(), zerolog.Nop())
}

func sessionFor(userID string, role domain.Role) *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		TokenID:   "tok-" + userID,
		UserID:    userID,
		Email:     userID + "@example.com",
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestJobService_Create_EmployerOnly(t *testing.T) {
	repo := newStubJobRepo()
	svc := newTestJobService(repo)

	if _, err := svc.Create(context.Background(), sessionFor("dev1", domain.RoleDeveloper), ports.CreateJobInput{Title: "x"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for developer, got %v", err)
	}

	job, err := svc.Create(context.Background(), sessionFor("emp1", domain.RoleEmployer), ports.CreateJobInput{
		Title:          "Go Engineer",
		Type:           domain.JobTypeRemote,
		Description:    "Build services.",
		Location:       "Anywhere",
		RequiredSkills: []string{"go", "go", "mongodb"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if job.EmployerID != "emp1" {
		t.Fatalf("employer id not pinned from session: %s", job.EmployerID)
	}
	if job.Status != domain.JobActive {
		t.Fatalf("new job must be active, got %s", job.Status)
	}
	if len(job.RequiredSkills) != 2 {
		t.Fatalf("expected deduped skills, got %v", job.RequiredSkills)
	}
}

func TestJobService_Create_UnknownSkillRejected(t *testing.T) {
	repo := newStubJobRepo()
	svc := newTestJobService(repo)

	_, err := svc.Create(context.Background(), sessionFor("emp1", domain.RoleEmployer), ports.CreateJobInput{
		Title:          "Go Engineer",
		Type:           domain.JobTypeRemote,
		RequiredSkills: []string{"go", "cobol"},
	})
	if err != domain.ErrUnknownSkill {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}

	_, err = svc.Create(context.Background(), sessionFor("emp1", domain.RoleEmployer), ports.CreateJobInput{
		Title:           "Go Engineer",
		Type:            domain.JobTypeRemote,
		RequiredSkills:  []string{"go"},
		PreferredSkills: []string{"cobol"},
	})
	if err != domain.ErrUnknownSkill {
		t.Fatalf("expected ErrUnknownSkill for preferred list, got %v", err)
	}
}

func TestJobService_Recommend_RanksBySkillMatch(t *testing.T) {
	repo := newStubJobRepo()
	accounts := newStubAccountRepo()
	svc := NewJobService(repo, newStubSkillRepo("go", "mongodb", "react"), accounts, zerolog.Nop())

	dev := &domain.Account{
		ID:     "dev1",
		Email:  "dev1@example.com",
		Role:   domain.RoleDeveloper,
		Active: true,
		Skills: []string{"go", "react"},
	}
	if err := accounts.Create(context.Background(), dev); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	employer := sessionFor("emp1", domain.RoleEmployer)
	seed := func(title string, required, preferred []string) *domain.Job {
		t.Helper()
		job, err := svc.Create(context.Background(), employer, ports.CreateJobInput{
			Title:           title,
			Type:            domain.JobTypeRemote,
			RequiredSkills:  required,
			PreferredSkills: preferred,
		})
		if err != nil {
			t.Fatalf("seed job %s: %v", title, err)
		}
		return job
	}

	partial := seed("Backend Engineer", []string{"go"}, nil)
	best := seed("Full Stack Engineer", []string{"go"}, []string{"react"})
	seed("Data Engineer", []string{"mongodb"}, nil)

	stale := seed("Closed Role", []string{"go", "react"}, nil)
	closed := string(domain.JobClosed)
	if _, err := svc.Update(context.Background(), employer, stale.ID, ports.UpdateJobInput{Status: &closed}); err != nil {
		t.Fatalf("close job: %v", err)
	}

	if _, err := svc.Recommend(context.Background(), employer); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for employer, got %v", err)
	}

	recs, err := svc.Recommend(context.Background(), sessionFor("dev1", domain.RoleDeveloper))
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Job.ID != best.ID || recs[0].MatchCount != 2 {
		t.Fatalf("best match must rank first: got %s with count %d", recs[0].Job.Title, recs[0].MatchCount)
	}
	if recs[1].Job.ID != partial.ID || recs[1].MatchCount != 1 {
		t.Fatalf("partial match must rank second: got %s with count %d", recs[1].Job.Title, recs[1].MatchCount)
	}
}

func TestJobService_Update_OwnerOrAdmin(t *testing.T) {
	repo := newStubJobRepo()
	svc := newTestJobService(repo)

	job, err := svc.Create(context.Background(), sessionFor("emp1", domain.RoleEmployer), ports.CreateJobInput{Title: "Go Engineer", Type: domain.JobTypeRemote})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "Senior Go Engineer"
	if _, err := svc.Update(context.Background(), sessionFor("emp2", domain.RoleEmployer), job.ID, ports.UpdateJobInput{Title: &title}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for other employer, got %v", err)
	}

	updated, err := svc.Update(context.Background(), sessionFor("emp1", domain.RoleEmployer), job.ID, ports.UpdateJobInput{Title: &title})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title not applied: %s", updated.Title)
	}

	closed := "closed"
	updated, err = svc.Update(context.Background(), sessionFor("root", domain.RoleAdmin), job.ID, ports.UpdateJobInput{Status: &closed})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Status != domain.JobClosed {
		t.Fatalf("status not applied: %s", updated.Status)
	}
}

func TestJobService_Delete_OwnerOrAdmin(t *testing.T) {
	repo := newStubJobRepo()
	svc := newTestJobService(repo)

	job, err := svc.Create(context.Background(), sessionFor("emp1", domain.RoleEmployer), ports.CreateJobInput{Title: "Go Engineer"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), sessionFor("emp2", domain.RoleEmployer), job.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), sessionFor("emp1", domain.RoleEmployer), job.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), job.ID); err != domain.ErrJobNotFound {
		t.Fatalf("expected job gone, got %v", err)
	}
}

func TestJobService_List_Filters(t *testing.T) {
	repo := newStubJobRepo()
	svc := newTestJobService(repo)
	employer := sessionFor("emp1", domain.RoleEmployer)

	if _, err := svc.Create(context.Background(), employer, ports.CreateJobInput{Title: "Go Engineer", Type: domain.JobTypeRemote, Location: "Berlin"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), employer, ports.CreateJobInput{Title: "Designer", Type: domain.JobTypeFullTime, Location: "Berlin"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	jobs, err := svc.List(context.Background(), ports.ListJobsFilter{Type: domain.JobTypeRemote})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Go Engineer" {
		t.Fatalf("type filter broken: %+v", jobs)
	}

	jobs, err = svc.List(context.Background(), ports.ListJobsFilter{Search: "berlin"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("search filter broken: got %d jobs", len(jobs))
	}
}
