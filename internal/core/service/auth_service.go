package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devhire/jobboard/internal/api/metrics"
	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
)

// AuthService implements registration, login, session restore and the
// role-gated account operations. It is the only writer of the session
// store.
type AuthService struct {
	accounts   ports.AccountRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts:   accounts,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// Initialize restores a persisted session from a bearer token and
// re-validates it against the account store. Every failure path clears
// the stale session and degrades to "logged out" instead of propagating
// transport detail to the caller.
func (s *AuthService) Initialize(ctx context.Context, token string) (*domain.Session, error) {
	tokenID, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.Find(ctx, tokenID)
	if err != nil || session == nil {
		return nil, domain.ErrSessionNotFound
	}

	account, err := s.accounts.FindByID(ctx, session.UserID)
	if err != nil || !account.Active {
		// The persisted session no longer matches a usable account.
		if delErr := s.sessions.Delete(ctx, tokenID); delErr != nil {
			s.log.Warn().Err(delErr).Str("token_id", tokenID).Msg("failed to clear stale session")
		}
		return nil, domain.ErrSessionNotFound
	}

	return session, nil
}

// Login authenticates by exact email match, password check and active
// flag. The failure is always ErrInvalidCredentials: it never reveals
// which of the two fields was wrong, and the raw password is never
// logged.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil || !account.Active {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, session, err := s.installSession(ctx, account)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", account.ID).Str("role", string(account.Role)).Msg("login")
	return token, session, nil
}

// Register creates a new account and behaves like a successful login for
// it. Skills are initialized only for developers; other roles carry no
// skills field at all.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.Session, error) {
	role := domain.Role(input.Role)
	if input.Email == "" || input.Password == "" || !role.Valid() {
		return "", nil, domain.ErrInvalidRole
	}

	if _, err := s.accounts.FindByEmail(ctx, input.Email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if err != domain.ErrAccountNotFound {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           newID(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == domain.RoleEmployer {
		account.Company = input.Company
	}
	if role == domain.RoleDeveloper {
		account.Skills = []string{}
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if err == domain.ErrEmailTaken {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("register: %w", err)
	}

	token, session, err := s.installSession(ctx, account)
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(role)).Inc()
	s.log.Info().Str("user_id", account.ID).Str("role", string(role)).Msg("account registered")
	return token, session, nil
}

// Logout removes the persisted session. Calling it again for the same
// token is a no-op.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.sessions.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// UpdateProfile merges the partial input into the caller's account.
// Identity fields are pinned from the session; the reinstalled session
// carries the refreshed projection.
func (s *AuthService) UpdateProfile(ctx context.Context, session *domain.Session, input ports.UpdateProfileInput) (*domain.Account, *domain.Session, error) {
	if session == nil {
		return nil, nil, domain.ErrSessionNotFound
	}

	account, err := s.accounts.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&account.FirstName, input.FirstName)
	applyString(&account.LastName, input.LastName)
	applyString(&account.About, input.About)
	applyString(&account.ProfilePhoto, input.ProfilePhoto)
	applyString(&account.Resume, input.Resume)
	applyString(&account.IntroVideo, input.IntroVideo)
	applyString(&account.CompanyLogo, input.CompanyLogo)
	if account.Role == domain.RoleEmployer {
		applyString(&account.Company, input.Company)
	}
	if account.Role == domain.RoleDeveloper && input.Skills != nil {
		account.Skills = dedupe(input.Skills)
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, nil, fmt.Errorf("update profile: %w", err)
	}

	refreshed := domain.NewSession(session.TokenID, account, session.IssuedAt, session.ExpiresAt.Sub(session.IssuedAt))
	if err := s.sessions.Save(ctx, refreshed); err != nil {
		s.log.Warn().Err(err).Str("user_id", account.ID).Msg("failed to reinstall session after profile update")
	}
	return account, refreshed, nil
}

// RefreshSession re-reads the account and reinstalls the projection
// under the same token.
func (s *AuthService) RefreshSession(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	account, err := s.accounts.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	refreshed := domain.NewSession(session.TokenID, account, session.IssuedAt, session.ExpiresAt.Sub(session.IssuedAt))
	if err := s.sessions.Save(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	return refreshed, nil
}

// GetAllUsers is privileged: non-admin callers receive an empty slice,
// not an error. The authorization gate is a predicate.
func (s *AuthService) GetAllUsers(ctx context.Context, session *domain.Session) ([]*domain.Account, error) {
	if !session.HasRole(domain.RoleAdmin) {
		return []*domain.Account{}, nil
	}
	return s.accounts.List(ctx)
}

// ToggleSavedJob flips the presence of jobID on the caller's saved list.
func (s *AuthService) ToggleSavedJob(ctx context.Context, session *domain.Session, jobID string) ([]string, bool, error) {
	if session == nil {
		return nil, false, domain.ErrSessionNotFound
	}
	account, err := s.accounts.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, false, err
	}

	next := make([]string, 0, len(account.SavedJobs)+1)
	found := false
	for _, id := range account.SavedJobs {
		if id == jobID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, jobID)
	}

	if err := s.accounts.SetSavedJobs(ctx, account.ID, next); err != nil {
		return nil, false, fmt.Errorf("toggle saved job: %w", err)
	}
	return next, !found, nil
}

// GetAccount returns one account by id. Password stripping is guaranteed
// by serialization, not by the caller.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

func (s *AuthService) installSession(ctx context.Context, account *domain.Account) (string, *domain.Session, error) {
	now := time.Now().UTC()
	session := domain.NewSession(newID(), account, now, s.sessionTTL)

	claims := jwt.MapClaims{
		"jti":  session.TokenID,
		"sub":  account.ID,
		"role": string(account.Role),
		"iat":  now.Unix(),
		"exp":  session.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return "", nil, fmt.Errorf("persist session: %w", err)
	}
	return token, session, nil
}

// parseToken verifies the JWT signature and expiry and extracts the
// session token id.
func (s *AuthService) parseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return "", domain.ErrSessionNotFound
	}
	return tokenID, nil
}

// newID returns a random 24-hex-char identifier. Collisions are
// practically impossible; on entropy failure the nanosecond clock is the
// fallback.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// dedupe removes duplicate ids preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
