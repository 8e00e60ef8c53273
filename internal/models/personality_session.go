package models

import "time"

// SessionDuration is the lifetime of a temporary personality override.
const SessionDuration = 48 * time.Hour

// PersonalitySession is a time-boxed override of a user's spending personality.
// Timestamps are Unix milliseconds.
type PersonalitySession struct {
	OriginalPersonality  SpendingPersonality `json:"originalPersonality"`
	TemporaryPersonality SpendingPersonality `json:"temporaryPersonality"`
	Username             string              `json:"username"`
	CreatedAt            int64               `json:"createdAt"`
	ExpiresAt            int64               `json:"expiresAt"`
}

func NewPersonalitySession(username string, original, temporary SpendingPersonality, now time.Time) *PersonalitySession {
	return &PersonalitySession{
		OriginalPersonality:  original,
		TemporaryPersonality: temporary,
		Username:             username,
		CreatedAt:            now.UnixMilli(),
		ExpiresAt:            now.Add(SessionDuration).UnixMilli(),
	}
}

func (s *PersonalitySession) IsExpired(now time.Time) bool {
	return now.UnixMilli() > s.ExpiresAt
}

func (s *PersonalitySession) Remaining(now time.Time) time.Duration {
	return time.Duration(s.ExpiresAt-now.UnixMilli()) * time.Millisecond
}

type SessionStatus struct {
	HasActiveSession bool                `json:"hasActiveSession"`
	Session          *PersonalitySession `json:"session,omitempty"`
	WasExpired       bool                `json:"wasExpired,omitempty"`
}

type TimeRemaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func NewTimeRemaining(d time.Duration) *TimeRemaining {
	return &TimeRemaining{
		Hours:   int(d / time.Hour),
		Minutes: int((d % time.Hour) / time.Minute),
	}
}
