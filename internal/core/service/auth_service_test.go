package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
)

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	saveDraftErr error
	publishErr   error
	saveDrafts   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Skills != nil {
		clone.Skills = append([]string{}, a.Skills...)
	}
	if a.SavedJobs != nil {
		clone.SavedJobs = append([]string{}, a.SavedJobs...)
	}
	clone.Draft = a.Draft.Clone()
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return domain.ErrEmailTaken
		}
	}
	r.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, cloneAccount(a))
	}
	return out, nil
}

func (r *stubAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	// Preserve the pending draft across published-field updates.
	account = cloneAccount(account)
	account.Draft = r.accounts[account.ID].Draft
	r.accounts[account.ID] = account
	return nil
}

func (r *stubAccountRepo) SaveDraft(_ context.Context, id string, draft *domain.ProfileDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveDraftErr != nil {
		return r.saveDraftErr
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Draft = draft.Clone()
	r.saveDrafts++
	return nil
}

func (r *stubAccountRepo) ClearDraft(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Draft = nil
	return nil
}

func (r *stubAccountRepo) PublishDraft(_ context.Context, id string, draft *domain.ProfileDraft) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.publishErr != nil {
		return nil, r.publishErr
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	first, last, _ := strings.Cut(draft.Name, " ")
	a.FirstName = first
	a.LastName = last
	a.About = draft.About
	a.ProfilePhoto = draft.ProfilePhoto
	a.Resume = draft.Resume
	a.IntroVideo = draft.IntroVideo
	a.CompanyLogo = draft.CompanyLogo
	if draft.Skills != nil {
		a.Skills = append([]string(nil), draft.Skills...)
	}
	a.Draft = nil
	a.PublishedAt = time.Now().UTC()
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) SetSavedJobs(_ context.Context, id string, jobIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.SavedJobs = append([]string(nil), jobIDs...)
	return nil
}

func (r *stubAccountRepo) draft(id string) *domain.ProfileDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id].Draft.Clone()
}

func (r *stubAccountRepo) savedDraftCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveDrafts
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.sessions[session.TokenID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, tokenID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[tokenID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenID)
	return nil
}

func newTestAuthService(repo *stubAccountRepo, store *stubSessionStore) *AuthService {
	return NewAuthService(repo, store, "secret", time.Hour, zerolog.Nop())
}

func registerDeveloper(t *testing.T, svc *AuthService, email string) (string, *domain.Session) {
	t.Helper()
	token, session, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     email,
		Password:  "s3cret",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "developer",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return token, session
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	token, session := registerDeveloper(t, svc, "ada@example.com")
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if session.Role != domain.RoleDeveloper {
		t.Fatalf("unexpected role: %s", session.Role)
	}
	if session.Name != "Ada Lovelace" {
		t.Fatalf("unexpected name: %q", session.Name)
	}

	account, err := repo.FindByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("account not stored: %v", err)
	}
	if account.PasswordHash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Skills == nil || len(account.Skills) != 0 {
		t.Fatalf("expected empty skills slice for developer, got %v", account.Skills)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	registerDeveloper(t, svc, "ada@example.com")
	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ada@example.com",
		Password: "other",
		Role:     "employer",
	})
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "x@example.com",
		Password: "pass",
		Role:     "superuser",
	})
	if err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())
	registerDeveloper(t, svc, "ada@example.com")

	token, session, err := svc.Login(context.Background(), "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || session == nil {
		t.Fatalf("expected token and session")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["jti"] != session.TokenID {
		t.Fatalf("token id mismatch: %v vs %s", claims["jti"], session.TokenID)
	}
	if claims["role"] != "developer" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())
	registerDeveloper(t, svc, "ada@example.com")

	if _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())
	registerDeveloper(t, svc, "ada@example.com")

	account, _ := repo.FindByEmail(context.Background(), "ada@example.com")
	account.Active = false
	if err := repo.Update(context.Background(), account); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ada@example.com", "s3cret"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestAuthService_Initialize_RoundTrip(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())
	token, session := registerDeveloper(t, svc, "ada@example.com")

	restored, err := svc.Initialize(context.Background(), token)
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if restored.UserID != session.UserID {
		t.Fatalf("restored wrong user: %s vs %s", restored.UserID, session.UserID)
	}
	if restored.Email != "ada@example.com" {
		t.Fatalf("unexpected email: %s", restored.Email)
	}
}

func TestAuthService_Initialize_GarbageToken(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	if _, err := svc.Initialize(context.Background(), "not-a-jwt"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_Initialize_InactiveAccountClearsSession(t *testing.T) {
	repo := newStubAccountRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store)
	token, session := registerDeveloper(t, svc, "ada@example.com")

	account, _ := repo.FindByEmail(context.Background(), "ada@example.com")
	account.Active = false
	if err := repo.Update(context.Background(), account); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, err := svc.Initialize(context.Background(), token); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.Find(context.Background(), session.TokenID); err != domain.ErrSessionNotFound {
		t.Fatalf("expected stale session cleared, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())
	token, session := registerDeveloper(t, svc, "ada@example.com")

	if err := svc.Logout(context.Background(), session.TokenID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), session.TokenID); err != nil {
		t.Fatalf("second logout should be a no-op, got %v", err)
	}
	if _, err := svc.Initialize(context.Background(), token); err != domain.ErrSessionNotFound {
		t.Fatalf("expected session gone after logout, got %v", err)
	}
}

func TestAuthService_UpdateProfile_PinsIdentity(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())
	_, session := registerDeveloper(t, svc, "ada@example.com")

	about := "Distributed systems."
	first := "Augusta"
	account, refreshed, err := svc.UpdateProfile(context.Background(), session, ports.UpdateProfileInput{
		FirstName: &first,
		About:     &about,
		Skills:    []string{"go", "go", "mongodb"},
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if account.About != about || account.FirstName != "Augusta" {
		t.Fatalf("fields not applied: %+v", account)
	}
	if len(account.Skills) != 2 {
		t.Fatalf("expected deduped skills, got %v", account.Skills)
	}
	if account.ID != session.UserID || account.Email != session.Email || account.Role != session.Role {
		t.Fatalf("identity fields changed: %+v", account)
	}
	if refreshed.TokenID != session.TokenID {
		t.Fatalf("refreshed session must keep the token id")
	}
	if refreshed.Name != "Augusta Lovelace" {
		t.Fatalf("session projection not refreshed: %q", refreshed.Name)
	}
}

func TestAuthService_GetAllUsers_NonAdminGetsEmpty(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())
	_, session := registerDeveloper(t, svc, "ada@example.com")

	users, err := svc.GetAllUsers(context.Background(), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list for non-admin, got %d", len(users))
	}
}

func TestAuthService_ToggleSavedJob(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())
	_, session := registerDeveloper(t, svc, "ada@example.com")

	saved, nowSaved, err := svc.ToggleSavedJob(context.Background(), session, "job-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !nowSaved || len(saved) != 1 || saved[0] != "job-1" {
		t.Fatalf("expected job saved, got %v (%v)", saved, nowSaved)
	}

	saved, nowSaved, err = svc.ToggleSavedJob(context.Background(), session, "job-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if nowSaved || len(saved) != 0 {
		t.Fatalf("expected job unsaved, got %v (%v)", saved, nowSaved)
	}
}
