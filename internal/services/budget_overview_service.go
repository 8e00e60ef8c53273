package services

import (
	"context"
	"stash/internal/backend"
	"stash/internal/models"
	"stash/internal/providers"
)

type Source string

const (
	SourceServer   Source = "server"
	SourceFallback Source = "fallback"
)

type BudgetOverviewServiceInterface interface {
	GetOverview(ctx context.Context, username string, personality models.SpendingPersonality) ([]models.BudgetCategory, Source)
	ComputeFromTransactions(username string, personality models.SpendingPersonality, transactions []models.Transaction) []models.BudgetCategory
	DefaultCaps(personality models.SpendingPersonality) map[string]float64
}

type BudgetOverviewService struct {
	backend backend.ClientInterface
	caps    BudgetCapServiceInterface
	logger  providers.Logger
}

func NewBudgetOverviewService(client backend.ClientInterface, caps BudgetCapServiceInterface, logger providers.Logger) BudgetOverviewServiceInterface {
	return &BudgetOverviewService{backend: client, caps: caps, logger: logger}
}

// GetOverview serves the server overview, or the persona fallback when the
// server has nothing, with the user's live overrides applied on top.
func (bo *BudgetOverviewService) GetOverview(ctx context.Context, username string, personality models.SpendingPersonality) ([]models.BudgetCategory, Source) {
	bo.caps.ClearExpiredBudgetCaps()

	source := SourceServer
	rows, err := bo.backend.GetBudgetOverview(ctx, username)
	if err != nil {
		bo.logger.Warnf(providers.TypeBudget, "Budget overview for %s unavailable, using fallback: %s", username, err)
	}
	if err != nil || len(rows) == 0 {
		rows = models.FallbackBudget(personality)
		source = SourceFallback
	}
	return bo.caps.ApplyOverrides(username, rows), source
}

// ComputeFromTransactions totals a client-supplied transaction list against the
// persona caps, with the user's live overrides applied on top.
func (bo *BudgetOverviewService) ComputeFromTransactions(username string, personality models.SpendingPersonality, transactions []models.Transaction) []models.BudgetCategory {
	bo.caps.ClearExpiredBudgetCaps()
	return bo.caps.ApplyOverrides(username, models.BudgetFromTransactions(personality, transactions))
}

func (bo *BudgetOverviewService) DefaultCaps(personality models.SpendingPersonality) map[string]float64 {
	return models.DefaultBudgetCaps(personality)
}
