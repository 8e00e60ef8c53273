package storage

import (
	"fmt"
	"stash/internal/models"

	json "github.com/goccy/go-json"
)

type SessionRepositoryInterface interface {
	Get(username string) (*models.PersonalitySession, error)
	Put(session *models.PersonalitySession) error
	Delete(username string) error
	Usernames() []string
}

type SessionRepository struct {
	store KeyValueStore
}

func NewSessionRepository(store KeyValueStore) SessionRepositoryInterface {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Get(username string) (*models.PersonalitySession, error) {
	raw, ok := r.store.Get(sessionKey(username))
	if !ok || raw == "" {
		return nil, ErrNotFound
	}
	var session models.PersonalitySession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("%w: personality session %s: %v", ErrCorrupt, username, err)
	}
	return &session, nil
}

// Put stores the session under its username, replacing any previous one.
func (r *SessionRepository) Put(session *models.PersonalitySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := r.store.Set(sessionKey(session.Username), string(data)); err != nil {
		return fmt.Errorf("save personality session %s: %w", session.Username, err)
	}
	return nil
}

func (r *SessionRepository) Delete(username string) error {
	return r.store.Remove(sessionKey(username))
}

func (r *SessionRepository) Usernames() []string {
	keys := r.store.Keys(namespacePrefix(NamespaceSession))
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if name, ok := parseSessionKey(key); ok {
			names = append(names, name)
		}
	}
	return names
}
