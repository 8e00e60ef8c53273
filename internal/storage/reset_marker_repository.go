package storage

import "fmt"

type ResetMarkerRepositoryInterface interface {
	Get(userID string) (string, bool)
	Put(userID, monthKey string) error
	Delete(userID string) error
}

type ResetMarkerRepository struct {
	store KeyValueStore
}

func NewResetMarkerRepository(store KeyValueStore) ResetMarkerRepositoryInterface {
	return &ResetMarkerRepository{store: store}
}

func (r *ResetMarkerRepository) Get(userID string) (string, bool) {
	v, ok := r.store.Get(resetMarkerKey(userID))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *ResetMarkerRepository) Put(userID, monthKey string) error {
	if err := r.store.Set(resetMarkerKey(userID), monthKey); err != nil {
		return fmt.Errorf("save monthly reset marker for %s: %w", userID, err)
	}
	return nil
}

func (r *ResetMarkerRepository) Delete(userID string) error {
	return r.store.Remove(resetMarkerKey(userID))
}
