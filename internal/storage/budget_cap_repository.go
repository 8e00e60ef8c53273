package storage

import (
	"fmt"
	"stash/internal/models"

	json "github.com/goccy/go-json"
)

type BudgetCapKey struct {
	Username string
	Category string
}

type BudgetCapRepositoryInterface interface {
	Get(username, category string) (*models.BudgetCapEntry, error)
	Put(username, category string, entry *models.BudgetCapEntry) error
	Delete(username, category string) error
	Categories(username string) []string
	Keys() []BudgetCapKey
}

type BudgetCapRepository struct {
	store KeyValueStore
}

func NewBudgetCapRepository(store KeyValueStore) BudgetCapRepositoryInterface {
	return &BudgetCapRepository{store: store}
}

// Get returns ErrNotFound for a missing key and ErrCorrupt for a payload that
// does not decode.
func (r *BudgetCapRepository) Get(username, category string) (*models.BudgetCapEntry, error) {
	raw, ok := r.store.Get(budgetCapKey(username, category))
	if !ok || raw == "" {
		return nil, ErrNotFound
	}
	var entry models.BudgetCapEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("%w: budget cap %s/%s: %v", ErrCorrupt, username, category, err)
	}
	return &entry, nil
}

func (r *BudgetCapRepository) Put(username, category string, entry *models.BudgetCapEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := r.store.Set(budgetCapKey(username, category), string(data)); err != nil {
		return fmt.Errorf("save budget cap %s/%s: %w", username, category, err)
	}
	return nil
}

func (r *BudgetCapRepository) Delete(username, category string) error {
	return r.store.Remove(budgetCapKey(username, category))
}

// Categories lists the categories stored for username, live or not.
func (r *BudgetCapRepository) Categories(username string) []string {
	keys := r.store.Keys(budgetCapUserPrefix(username))
	categories := make([]string, 0, len(keys))
	for _, key := range keys {
		user, category, ok := parseBudgetCapKey(key)
		if ok && user == username {
			categories = append(categories, category)
		}
	}
	return categories
}

// Keys lists every budget cap key across all users.
func (r *BudgetCapRepository) Keys() []BudgetCapKey {
	raw := r.store.Keys(namespacePrefix(NamespaceBudgetCap))
	keys := make([]BudgetCapKey, 0, len(raw))
	for _, key := range raw {
		if user, category, ok := parseBudgetCapKey(key); ok {
			keys = append(keys, BudgetCapKey{Username: user, Category: category})
		}
	}
	return keys
}
