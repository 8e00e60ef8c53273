package services

import (
	"context"
	"stash/internal/backend"
	"stash/internal/models"
	"stash/internal/providers"
	"stash/internal/storage"

	"golang.org/x/sync/singleflight"
)

const (
	resetKindAuto   = "auto"
	resetKindManual = "manual"

	clearLegTransactions = "transactions"
	clearLegSalary       = "salary"
)

type MonthlyResetServiceInterface interface {
	CheckAndResetIfNeeded(ctx context.Context, userID string) bool
	ManualReset(ctx context.Context, userID string) bool
	GetLastResetInfo(userID string) models.ResetInfo
}

// MonthlyResetService wipes a user's manual transactions and salary once per
// calendar month. The month that was last handled is kept as a marker in the
// client store.
type MonthlyResetService struct {
	backend backend.ClientInterface
	markers storage.ResetMarkerRepositoryInterface
	clock   providers.ClockInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	group   singleflight.Group
}

func NewMonthlyResetService(
	client backend.ClientInterface,
	markers storage.ResetMarkerRepositoryInterface,
	clock providers.ClockInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) MonthlyResetServiceInterface {
	return &MonthlyResetService{
		backend: client,
		markers: markers,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckAndResetIfNeeded returns true when this call performed a reset.
// Concurrent calls for the same user share one execution. A caller that is
// already gone starts nothing; once started, the clears and the marker write
// run to completion even if the caller disconnects.
func (rs *MonthlyResetService) CheckAndResetIfNeeded(ctx context.Context, userID string) bool {
	if err := ctx.Err(); err != nil {
		rs.logger.Warnf(providers.TypeReset, "Skipping monthly reset check for %s: %s", userID, err)
		return false
	}
	detached := context.WithoutCancel(ctx)
	v, _, _ := rs.group.Do(userID, func() (interface{}, error) {
		return rs.checkAndReset(detached, userID), nil
	})
	return v.(bool)
}

func (rs *MonthlyResetService) checkAndReset(ctx context.Context, userID string) bool {
	currentMonth := models.MonthKey(rs.clock.Now())
	if last, ok := rs.markers.Get(userID); ok && last == currentMonth {
		return false
	}

	rs.logger.Infof(providers.TypeReset, "New month %s detected for %s, clearing manual data", currentMonth, userID)
	rs.clearAll(ctx, userID)

	// The marker is written even if a clear failed, so a failed month is not retried.
	if err := rs.markers.Put(userID, currentMonth); err != nil {
		rs.logger.Errorf(providers.TypeReset, "Monthly reset for %s: %s", userID, err)
		return false
	}
	rs.metrics.IncMonthlyResets(resetKindAuto)
	rs.logger.Infof(providers.TypeReset, "Monthly reset completed for %s", userID)
	return true
}

// clearAll issues both clears in order; a failed leg does not stop the other.
func (rs *MonthlyResetService) clearAll(ctx context.Context, userID string) {
	if err := rs.backend.ClearManualTransactions(ctx, userID); err != nil {
		rs.metrics.IncResetClearFailures(clearLegTransactions)
		rs.logger.Errorf(providers.TypeReset, "Failed to clear manual transactions for %s: %s", userID, err)
	}
	if err := rs.backend.ClearSalary(ctx, userID); err != nil {
		rs.metrics.IncResetClearFailures(clearLegSalary)
		rs.logger.Errorf(providers.TypeReset, "Failed to clear salary for %s: %s", userID, err)
	}
}

// ManualReset clears unconditionally and forgets the marker, so the next
// check treats the month as new again.
func (rs *MonthlyResetService) ManualReset(ctx context.Context, userID string) bool {
	if err := ctx.Err(); err != nil {
		rs.logger.Warnf(providers.TypeReset, "Skipping manual reset for %s: %s", userID, err)
		return false
	}
	rs.clearAll(context.WithoutCancel(ctx), userID)
	if err := rs.markers.Delete(userID); err != nil {
		rs.logger.Errorf(providers.TypeReset, "Manual reset for %s: remove marker: %s", userID, err)
		return false
	}
	rs.metrics.IncMonthlyResets(resetKindManual)
	rs.logger.Infof(providers.TypeReset, "Manual reset completed for %s", userID)
	return true
}

func (rs *MonthlyResetService) GetLastResetInfo(userID string) models.ResetInfo {
	info := models.ResetInfo{CurrentMonth: models.MonthKey(rs.clock.Now())}
	if last, ok := rs.markers.Get(userID); ok {
		info.LastReset = &last
	}
	return info
}
