package services

import (
	"errors"
	"stash/internal/models"
	"stash/internal/providers"
	"stash/internal/storage"
	"time"
)

type BudgetCapServiceInterface interface {
	SetBudgetCap(username, category string, value float64) error
	GetBudgetCap(username, category string) (float64, bool)
	GetAllBudgetCaps(username string) map[string]float64
	RemoveBudgetCap(username, category string) error
	ClearExpiredBudgetCaps() int
	ClearAllBudgetCaps(username string) int
	ApplyOverrides(username string, rows []models.BudgetCategory) []models.BudgetCategory
}

// BudgetCapService holds per-user category budget overrides that lapse
// after models.BudgetCapTTL.
type BudgetCapService struct {
	caps    storage.BudgetCapRepositoryInterface
	clock   providers.ClockInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewBudgetCapService(
	caps storage.BudgetCapRepositoryInterface,
	clock providers.ClockInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) BudgetCapServiceInterface {
	return &BudgetCapService{caps: caps, clock: clock, logger: logger, metrics: metrics}
}

func (bs *BudgetCapService) SetBudgetCap(username, category string, value float64) error {
	entry := models.NewBudgetCapEntry(value, bs.clock.Now())
	if err := bs.caps.Put(username, category, entry); err != nil {
		bs.logger.Errorf(providers.TypeBudget, "Failed to set budget cap: %s", err)
		return err
	}
	bs.logger.Debugf(providers.TypeBudget, "Budget cap %s/%s set to %v", username, category, value)
	return nil
}

// GetBudgetCap deletes an expired entry on read.
func (bs *BudgetCapService) GetBudgetCap(username, category string) (float64, bool) {
	entry, err := bs.caps.Get(username, category)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			bs.logger.Warnf(providers.TypeBudget, "Ignoring budget cap: %s", err)
		}
		return 0, false
	}
	if entry.IsExpired(bs.clock.Now()) {
		if err := bs.caps.Delete(username, category); err != nil {
			bs.logger.Errorf(providers.TypeBudget, "Failed to drop expired cap %s/%s: %s", username, category, err)
		}
		return 0, false
	}
	return entry.Value, true
}

func (bs *BudgetCapService) GetAllBudgetCaps(username string) map[string]float64 {
	out := make(map[string]float64)
	for _, category := range bs.caps.Categories(username) {
		if v, ok := bs.GetBudgetCap(username, category); ok {
			out[category] = v
		}
	}
	return out
}

func (bs *BudgetCapService) RemoveBudgetCap(username, category string) error {
	return bs.caps.Delete(username, category)
}

// ClearExpiredBudgetCaps sweeps every user's caps, removing expired and
// unreadable entries.
func (bs *BudgetCapService) ClearExpiredBudgetCaps() int {
	now := bs.clock.Now()
	cleared := 0
	for _, key := range bs.caps.Keys() {
		entry, err := bs.caps.Get(key.Username, key.Category)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			continue
		case err == nil && !entry.IsExpired(now):
			continue
		case err == nil:
			bs.logger.Debugf(providers.TypeBudget, "Cap %s/%s set %s expired %s",
				key.Username, key.Category, entry.CreatedTime().UTC().Format(time.RFC3339), entry.ExpiresTime().UTC().Format(time.RFC3339))
		default:
			bs.logger.Warnf(providers.TypeBudget, "Dropping malformed cap %s/%s: %s", key.Username, key.Category, err)
		}
		if err := bs.caps.Delete(key.Username, key.Category); err != nil {
			bs.logger.Errorf(providers.TypeBudget, "Failed to drop cap %s/%s: %s", key.Username, key.Category, err)
			continue
		}
		cleared++
	}
	if cleared > 0 {
		bs.metrics.AddBudgetCapsExpired(cleared)
		bs.logger.Infof(providers.TypeBudget, "Cleared %d expired budget caps", cleared)
	}
	return cleared
}

func (bs *BudgetCapService) ClearAllBudgetCaps(username string) int {
	cleared := 0
	for _, category := range bs.caps.Categories(username) {
		if err := bs.caps.Delete(username, category); err != nil {
			bs.logger.Errorf(providers.TypeBudget, "Failed to drop cap %s/%s: %s", username, category, err)
			continue
		}
		cleared++
	}
	return cleared
}

// ApplyOverrides returns rows with live overrides applied. Nothing is written back.
func (bs *BudgetCapService) ApplyOverrides(username string, rows []models.BudgetCategory) []models.BudgetCategory {
	caps := bs.GetAllBudgetCaps(username)
	out := make([]models.BudgetCategory, len(rows))
	for i, row := range rows {
		if v, ok := caps[row.Category]; ok {
			out[i] = row.WithCap(v)
			continue
		}
		out[i] = row
	}
	return out
}
