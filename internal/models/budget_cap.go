package models

import "time"

// BudgetCapTTL is how long a user override of a category budget stays live.
const BudgetCapTTL = 48 * time.Hour

// BudgetCapEntry is the stored form of one (username, category) override.
// Timestamps are Unix milliseconds.
type BudgetCapEntry struct {
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
	ExpiresAt int64   `json:"expiresAt"`
}

func NewBudgetCapEntry(value float64, now time.Time) *BudgetCapEntry {
	return &BudgetCapEntry{
		Value:     value,
		Timestamp: now.UnixMilli(),
		ExpiresAt: now.Add(BudgetCapTTL).UnixMilli(),
	}
}

// IsExpired reports whether now is strictly past ExpiresAt.
func (e *BudgetCapEntry) IsExpired(now time.Time) bool {
	return now.UnixMilli() > e.ExpiresAt
}

func (e *BudgetCapEntry) CreatedTime() time.Time {
	return time.UnixMilli(e.Timestamp)
}

func (e *BudgetCapEntry) ExpiresTime() time.Time {
	return time.UnixMilli(e.ExpiresAt)
}
