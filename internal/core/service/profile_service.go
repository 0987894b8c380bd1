package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devhire/jobboard/internal/api/metrics"
	"github.com/devhire/jobboard/internal/core/domain"
	"github.com/devhire/jobboard/internal/core/ports"
)

const (
	defaultDebounce    = 2 * time.Second
	defaultSaveTimeout = 10 * time.Second
)

// ProfileService reconciles the two representations of a profile: the
// auto-saved working draft and the published snapshot other users see.
// One edit session exists per account; its mutex serializes auto-saves
// against explicit save/publish/discard so a slow in-flight auto-save can
// never overwrite a just-completed publish.
type ProfileService struct {
	accounts    ports.AccountRepository
	debounce    time.Duration
	saveTimeout time.Duration
	log         zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*editSession
	closed   bool
}

// editSession is the in-memory working state for one account's profile
// editor. All fields are guarded by mu; closed marks the session dead so
// a timer that fires after teardown writes nothing.
type editSession struct {
	mu        sync.Mutex
	userID    string
	origin    ports.EditOrigin
	working   *domain.ProfileDraft
	dirty     bool
	lastSaved time.Time
	timer     *time.Timer
	closed    bool
}

func NewProfileService(accounts ports.AccountRepository, debounce time.Duration, log zerolog.Logger) *ProfileService {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &ProfileService{
		accounts:    accounts,
		debounce:    debounce,
		saveTimeout: defaultSaveTimeout,
		log:         log,
		sessions:    make(map[string]*editSession),
	}
}

// BeginEdit opens (or re-enters) the edit session for an account. The
// working copy is seeded from the pending draft when one exists, else
// from the published profile. Nothing is persisted.
func (s *ProfileService) BeginEdit(ctx context.Context, userID string) (*ports.EditState, error) {
	if es := s.lookup(userID); es != nil {
		es.mu.Lock()
		defer es.mu.Unlock()
		return es.snapshot(), nil
	}

	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	es := &editSession{userID: userID}
	if account.HasDraft() {
		es.origin = ports.EditFromDraft
		es.working = account.Draft.Clone()
		es.lastSaved = account.Draft.LastModified
	} else {
		es.origin = ports.EditFromPublished
		es.working = domain.DraftFromPublished(account)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, domain.ErrNoEditSession
	}
	if existing, ok := s.sessions[userID]; ok {
		// Lost the race to another BeginEdit for the same account.
		s.mu.Unlock()
		existing.mu.Lock()
		defer existing.mu.Unlock()
		return existing.snapshot(), nil
	}
	s.sessions[userID] = es
	s.mu.Unlock()

	metrics.EditSessionsActive.Inc()
	return es.snapshot(), nil
}

// FieldChange updates one working-copy field and restarts the auto-save
// debounce: a burst of rapid edits collapses into a single draft write
// carrying the last value.
func (s *ProfileService) FieldChange(ctx context.Context, userID, field, value string) (*ports.EditState, error) {
	es := s.lookup(userID)
	if es == nil {
		return nil, domain.ErrNoEditSession
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed {
		return nil, domain.ErrNoEditSession
	}

	switch field {
	case "name":
		es.working.Name = value
	case "about":
		es.working.About = value
	case "profilePhoto":
		es.working.ProfilePhoto = value
	case "resume":
		es.working.Resume = value
	case "introVideo":
		es.working.IntroVideo = value
	case "companyLogo":
		es.working.CompanyLogo = value
	default:
		return nil, domain.ErrUnknownDraftField
	}

	es.dirty = true
	s.reschedule(es)
	return es.snapshot(), nil
}

// SkillAdd adds a skill id to the working-copy set. Adding an id that is
// already present is a no-op and does not mark the copy dirty.
func (s *ProfileService) SkillAdd(ctx context.Context, userID, skillID string) (*ports.EditState, error) {
	es := s.lookup(userID)
	if es == nil {
		return nil, domain.ErrNoEditSession
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed {
		return nil, domain.ErrNoEditSession
	}

	for _, id := range es.working.Skills {
		if id == skillID {
			return es.snapshot(), nil
		}
	}
	es.working.Skills = append(es.working.Skills, skillID)
	es.dirty = true
	s.reschedule(es)
	return es.snapshot(), nil
}

// SkillRemove removes a skill id from the working-copy set. Removing an
// absent id is a no-op.
func (s *ProfileService) SkillRemove(ctx context.Context, userID, skillID string) (*ports.EditState, error) {
	es := s.lookup(userID)
	if es == nil {
		return nil, domain.ErrNoEditSession
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed {
		return nil, domain.ErrNoEditSession
	}

	kept := es.working.Skills[:0]
	removed := false
	for _, id := range es.working.Skills {
		if id == skillID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if removed {
		es.working.Skills = kept
		es.dirty = true
		s.reschedule(es)
	}
	return es.snapshot(), nil
}

// SaveDraft persists the working copy as the pending draft immediately.
// Unlike the auto-save tick, persistence errors surface to the caller.
func (s *ProfileService) SaveDraft(ctx context.Context, userID string) (*ports.EditState, error) {
	es := s.lookup(userID)
	if es == nil {
		return nil, domain.ErrNoEditSession
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed {
		return nil, domain.ErrNoEditSession
	}

	if err := s.persistDraft(ctx, es); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	metrics.DraftsSavedTotal.WithLabelValues("manual").Inc()
	return es.snapshot(), nil
}

// Publish atomically replaces the published profile with the working
// copy and clears the draft. The session closes only on confirmed remote
// success; on failure the working copy reverts to its pre-attempt
// snapshot and editing continues.
func (s *ProfileService) Publish(ctx context.Context, userID string) (*domain.Account, error) {
	es := s.lookup(userID)
	if es == nil {
		return nil, domain.ErrNoEditSession
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed {
		return nil, domain.ErrNoEditSession
	}

	snapshot := es.working.Clone()
	es.stopTimer()
	es.working.LastModified = time.Now().UTC()

	account, err := s.accounts.PublishDraft(ctx, userID, es.working)
	if err != nil {
		es.working = snapshot
		s.log.Error().Err(err).Str("user_id", userID).Msg("publish failed, working copy restored")
		return nil, fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}

	es.closed = true
	s.remove(userID)
	metrics.ProfilesPublishedTotal.Inc()
	s.log.Info().Str("user_id", userID).Msg("profile published")
	return account, nil
}

// Discard clears the pending draft without touching the published
// profile and closes any open edit session. Discarding when no draft
// exists succeeds and changes nothing.
func (s *ProfileService) Discard(ctx context.Context, userID string) (*domain.Account, error) {
	discarded := false
	if es := s.lookup(userID); es != nil {
		es.mu.Lock()
		if !es.closed {
			es.stopTimer()
			if err := s.accounts.ClearDraft(ctx, userID); err != nil {
				es.mu.Unlock()
				return nil, fmt.Errorf("discard draft: %w", err)
			}
			es.closed = true
			s.remove(userID)
			discarded = true
		}
		es.mu.Unlock()
	} else {
		account, err := s.accounts.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if account.HasDraft() {
			if err := s.accounts.ClearDraft(ctx, userID); err != nil {
				return nil, fmt.Errorf("discard draft: %w", err)
			}
			discarded = true
		}
	}

	if discarded {
		metrics.DraftsDiscardedTotal.Inc()
	}
	return s.accounts.FindByID(ctx, userID)
}

// Cancel leaves editing without publishing or discarding. The pending
// debounce timer is stopped so nothing writes after teardown; unsaved
// changes get one best-effort flush whose failure is only logged.
func (s *ProfileService) Cancel(ctx context.Context, userID string) error {
	es := s.lookup(userID)
	if es == nil {
		return nil
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed {
		return nil
	}

	es.stopTimer()
	if es.dirty {
		if err := s.persistDraft(ctx, es); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("final draft flush failed on cancel")
		} else {
			metrics.DraftsSavedTotal.WithLabelValues("auto").Inc()
		}
	}
	es.closed = true
	s.remove(userID)
	return nil
}

// Status reports the current view for an account. An open edit session
// wins; otherwise the presence of the draft object decides between
// draft-pending and published.
func (s *ProfileService) Status(ctx context.Context, userID string) (*ports.EditState, error) {
	if es := s.lookup(userID); es != nil {
		es.mu.Lock()
		defer es.mu.Unlock()
		if !es.closed {
			return es.snapshot(), nil
		}
	}

	account, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.HasDraft() {
		return &ports.EditState{
			View:        ports.ViewingDraftPending,
			Origin:      ports.EditFromDraft,
			WorkingCopy: account.Draft.Clone(),
			LastSaved:   account.Draft.LastModified,
		}, nil
	}
	return &ports.EditState{View: ports.ViewingPublished, Origin: ports.EditFromPublished}, nil
}

// Close tears down all open edit sessions and stops their timers. A
// working copy edited inside the debounce window gets the same
// best-effort flush as Cancel; the account store is still open when
// shutdown reaches this point.
func (s *ProfileService) Close() {
	s.mu.Lock()
	s.closed = true
	open := make([]*editSession, 0, len(s.sessions))
	for _, es := range s.sessions {
		open = append(open, es)
	}
	s.sessions = make(map[string]*editSession)
	s.mu.Unlock()

	for _, es := range open {
		es.mu.Lock()
		es.stopTimer()
		if es.dirty {
			ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
			if err := s.persistDraft(ctx, es); err != nil {
				s.log.Warn().Err(err).Str("user_id", es.userID).Msg("final draft flush failed on shutdown")
			} else {
				metrics.DraftsSavedTotal.WithLabelValues("auto").Inc()
			}
			cancel()
		}
		es.closed = true
		es.mu.Unlock()
		metrics.EditSessionsActive.Dec()
	}
}

// reschedule cancels and re-arms the debounce timer. Caller holds es.mu.
func (s *ProfileService) reschedule(es *editSession) {
	es.stopTimer()
	es.timer = time.AfterFunc(s.debounce, func() {
		s.autoSave(es)
	})
}

// autoSave is the debounce timer callback: it silently persists the
// working copy as the draft. Failures are logged and swallowed so active
// editing is never interrupted.
func (s *ProfileService) autoSave(es *editSession) {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.closed || !es.dirty {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.persistDraft(ctx, es); err != nil {
		s.log.Warn().Err(err).Str("user_id", es.userID).Msg("auto-save failed")
		return
	}
	metrics.DraftsSavedTotal.WithLabelValues("auto").Inc()
}

// persistDraft writes the working copy as the account's pending draft.
// Caller holds es.mu.
func (s *ProfileService) persistDraft(ctx context.Context, es *editSession) error {
	es.working.LastModified = time.Now().UTC()
	if err := s.accounts.SaveDraft(ctx, es.userID, es.working); err != nil {
		return err
	}
	es.dirty = false
	es.lastSaved = es.working.LastModified
	return nil
}

func (s *ProfileService) lookup(userID string) *editSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

func (s *ProfileService) remove(userID string) {
	s.mu.Lock()
	if _, ok := s.sessions[userID]; ok {
		delete(s.sessions, userID)
		metrics.EditSessionsActive.Dec()
	}
	s.mu.Unlock()
}

// stopTimer cancels a pending (not yet fired) debounce. Caller holds
// es.mu; a callback that already started will see es.closed or a clean
// dirty flag and back off.
func (es *editSession) stopTimer() {
	if es.timer != nil {
		es.timer.Stop()
		es.timer = nil
	}
}

// snapshot renders the session as an EditState with a cloned working
// copy. Caller holds es.mu.
func (es *editSession) snapshot() *ports.EditState {
	return &ports.EditState{
		View:              ports.Editing,
		Origin:            es.origin,
		WorkingCopy:       es.working.Clone(),
		HasUnsavedChanges: es.dirty,
		LastSaved:         es.lastSaved,
	}
}
