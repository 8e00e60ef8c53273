package services

import (
	"context"
	"errors"
	"stash/internal/backend"
	"stash/internal/models"
	"stash/internal/providers"
	"stash/internal/storage"
)

const (
	sessionStarted      = "started"
	sessionStartFailed  = "start_failed"
	sessionReverted     = "reverted"
	sessionRevertFailed = "revert_failed"
)

type SessionServiceInterface interface {
	StartTemporarySession(ctx context.Context, username string, original, temporary models.SpendingPersonality) bool
	CheckAndManageSession(ctx context.Context, username string) models.SessionStatus
	EndSession(ctx context.Context, username string) bool
	GetCurrentSession(username string) *models.PersonalitySession
	GetTimeRemaining(username string) *models.TimeRemaining
	ExpireSessions(ctx context.Context) int
}

// SessionService lets a user try another spending personality for a limited
// time. The backend is always updated first; local state follows only after
// it confirmed the change.
type SessionService struct {
	backend  backend.ClientInterface
	sessions storage.SessionRepositoryInterface
	profiles ProfileServiceInterface
	clock    providers.ClockInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewSessionService(
	client backend.ClientInterface,
	sessions storage.SessionRepositoryInterface,
	profiles ProfileServiceInterface,
	clock providers.ClockInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) SessionServiceInterface {
	return &SessionService{
		backend:  client,
		sessions: sessions,
		profiles: profiles,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// StartTemporarySession replaces any existing session for username without
// reverting it first.
func (ss *SessionService) StartTemporarySession(ctx context.Context, username string, original, temporary models.SpendingPersonality) bool {
	if err := ss.backend.UpdateSpendingPersonality(ctx, username, temporary); err != nil {
		ss.metrics.IncSessionTransitions(sessionStartFailed)
		ss.logger.Errorf(providers.TypeSession, "Failed to switch %s to %s: %s", username, temporary, err)
		return false
	}

	session := models.NewPersonalitySession(username, original, temporary, ss.clock.Now())
	if err := ss.sessions.Put(session); err != nil {
		ss.metrics.IncSessionTransitions(sessionStartFailed)
		ss.logger.Errorf(providers.TypeSession, "Failed to store session for %s: %s", username, err)
		return false
	}
	ss.profiles.SetPersonality(username, temporary)

	ss.metrics.IncSessionTransitions(sessionStarted)
	ss.logger.Infof(providers.TypeSession, "Temporary session for %s started: %s -> %s", username, original, temporary)
	return true
}

// load returns the stored session or nil. Malformed records read as absent.
func (ss *SessionService) load(username string) *models.PersonalitySession {
	session, err := ss.sessions.Get(username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			ss.logger.Warnf(providers.TypeSession, "Ignoring session for %s: %s", username, err)
		}
		return nil
	}
	return session
}

func (ss *SessionService) CheckAndManageSession(ctx context.Context, username string) models.SessionStatus {
	session := ss.load(username)
	if session == nil {
		return models.SessionStatus{}
	}
	if !session.IsExpired(ss.clock.Now()) {
		return models.SessionStatus{HasActiveSession: true, Session: session}
	}

	ss.logger.Infof(providers.TypeSession, "Session for %s expired, reverting to %s", username, session.OriginalPersonality)
	ss.revert(ctx, session)
	return models.SessionStatus{Session: session, WasExpired: true}
}

// EndSession reports true when there is nothing to end.
func (ss *SessionService) EndSession(ctx context.Context, username string) bool {
	session := ss.load(username)
	if session == nil {
		return true
	}
	return ss.revert(ctx, session)
}

// revert restores the original personality. On failure the record stays in
// place so a later check retries.
func (ss *SessionService) revert(ctx context.Context, session *models.PersonalitySession) bool {
	if err := ss.backend.UpdateSpendingPersonality(ctx, session.Username, session.OriginalPersonality); err != nil {
		ss.metrics.IncSessionTransitions(sessionRevertFailed)
		ss.logger.Errorf(providers.TypeSession, "Failed to revert %s to %s: %s", session.Username, session.OriginalPersonality, err)
		return false
	}

	ss.profiles.SetPersonality(session.Username, session.OriginalPersonality)
	if err := ss.sessions.Delete(session.Username); err != nil {
		ss.metrics.IncSessionTransitions(sessionRevertFailed)
		ss.logger.Errorf(providers.TypeSession, "Failed to remove session for %s: %s", session.Username, err)
		return false
	}

	ss.metrics.IncSessionTransitions(sessionReverted)
	ss.logger.Infof(providers.TypeSession, "Session for %s ended, personality back to %s", session.Username, session.OriginalPersonality)
	return true
}

// GetCurrentSession never reverts; expired sessions read as nil.
func (ss *SessionService) GetCurrentSession(username string) *models.PersonalitySession {
	session := ss.load(username)
	if session == nil || session.IsExpired(ss.clock.Now()) {
		return nil
	}
	return session
}

func (ss *SessionService) GetTimeRemaining(username string) *models.TimeRemaining {
	session := ss.GetCurrentSession(username)
	if session == nil {
		return nil
	}
	remaining := session.Remaining(ss.clock.Now())
	if remaining <= 0 {
		return nil
	}
	return models.NewTimeRemaining(remaining)
}

// ExpireSessions reverts every stored session whose time is up and returns
// how many were reverted.
func (ss *SessionService) ExpireSessions(ctx context.Context) int {
	reverted := 0
	now := ss.clock.Now()
	for _, username := range ss.sessions.Usernames() {
		session := ss.load(username)
		if session == nil || !session.IsExpired(now) {
			continue
		}
		if ss.revert(ctx, session) {
			reverted++
		}
	}
	if reverted > 0 {
		ss.logger.Infof(providers.TypeSession, "Reverted %d expired sessions", reverted)
	}
	return reverted
}
