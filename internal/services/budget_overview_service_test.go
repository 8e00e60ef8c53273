package services

import (
	"context"
	"stash/internal/backend"
	"stash/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverviewService(f *fixture) (BudgetOverviewServiceInterface, *BudgetCapService) {
	caps := f.capService(f.store)
	return NewBudgetOverviewService(f.backend, caps, f.logger), caps
}

func TestGetOverview_ServerRowsWithOverrides(t *testing.T) {
	f := newFixture()
	f.backend.Overview = []models.BudgetCategory{
		models.NewBudgetCategory("Dining", 6000, 5000),
		models.NewBudgetCategory("Groceries", 4000, 7000),
	}
	svc, caps := newOverviewService(f)
	require.NoError(t, caps.SetBudgetCap("test1", "Dining", 8000))

	rows, source := svc.GetOverview(context.Background(), "test1", models.MediumSpender)

	assert.Equal(t, SourceServer, source)
	require.Len(t, rows, 2)
	assert.Equal(t, 75.0, rows[0].Percentage)
	assert.False(t, rows[0].IsOverBudget)
	assert.Equal(t, f.backend.Overview[1], rows[1])
	assert.Equal(t, []string{"test1"}, f.backend.OverviewCalls)
}

func TestGetOverview_FallbackOnError(t *testing.T) {
	f := newFixture()
	f.backend.OverviewErr = backend.ErrNetwork
	svc, _ := newOverviewService(f)

	rows, source := svc.GetOverview(context.Background(), "test1", models.HeavySpender)

	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, models.FallbackBudget(models.HeavySpender), rows)
}

func TestGetOverview_FallbackOnEmpty(t *testing.T) {
	f := newFixture()
	svc, caps := newOverviewService(f)
	require.NoError(t, caps.SetBudgetCap("test1", "Transport", 6000))

	rows, source := svc.GetOverview(context.Background(), "test1", models.MaxSaver)

	assert.Equal(t, SourceFallback, source)
	require.Equal(t, "Transport", rows[0].Category)
	assert.Equal(t, 6000.0, rows[0].BudgetCap)
	assert.Equal(t, 249.43, rows[0].Percentage)
}

func TestGetOverview_SweepsExpiredCaps(t *testing.T) {
	f := newFixture()
	svc, caps := newOverviewService(f)
	require.NoError(t, caps.SetBudgetCap("test2", "Dining", 100))
	f.clock.Advance(49 * time.Hour)

	svc.GetOverview(context.Background(), "test1", models.MaxSaver)

	assert.Equal(t, 0, f.store.Len())
}

func TestComputeFromTransactions(t *testing.T) {
	f := newFixture()
	svc, _ := newOverviewService(f)

	rows := svc.ComputeFromTransactions("test1", models.MediumSpender, []models.Transaction{
		{Category: "Food & Dining", Amount: 2500},
		{Category: "food", Amount: 500},
		{Category: "transport", Amount: 6600},
		{Category: "", Amount: 999},
	})

	assert.Equal(t, models.NewBudgetCategory("Dining", 3000, 6000), rows[0])
	assert.Equal(t, 50.0, rows[0].Percentage)
	assert.True(t, rows[4].IsOverBudget)
	assert.Equal(t, 110.0, rows[4].Percentage)
}

func TestComputeFromTransactions_AppliesLiveOverrides(t *testing.T) {
	f := newFixture()
	svc, caps := newOverviewService(f)
	require.NoError(t, caps.SetBudgetCap("test1", "Dining", 4000))
	require.NoError(t, caps.SetBudgetCap("test1", "Transport", 1000))
	f.clock.Advance(47 * time.Hour)
	require.NoError(t, caps.SetBudgetCap("test2", "Dining", 100))
	f.clock.Advance(2 * time.Hour)

	rows := svc.ComputeFromTransactions("test1", models.MediumSpender, []models.Transaction{
		{Category: "Dining", Amount: 3000},
		{Category: "Transport", Amount: 600},
	})

	// test1's overrides are past 48h; only the persona caps remain.
	assert.Equal(t, models.NewBudgetCategory("Dining", 3000, 6000), rows[0])
	assert.Equal(t, 1, f.store.Len())

	require.NoError(t, caps.SetBudgetCap("test1", "Dining", 4000))
	rows = svc.ComputeFromTransactions("test1", models.MediumSpender, []models.Transaction{
		{Category: "Dining", Amount: 3000},
	})
	assert.Equal(t, 75.0, rows[0].Percentage)
	assert.Equal(t, 4000.0, rows[0].BudgetCap)
}

func TestDefaultCaps(t *testing.T) {
	f := newFixture()
	svc, _ := newOverviewService(f)

	assert.Equal(t, 12000.0, svc.DefaultCaps(models.HeavySpender)["Entertainment"])
	assert.Equal(t, svc.DefaultCaps(models.MaxSaver), svc.DefaultCaps("Spendthrift"))
}
