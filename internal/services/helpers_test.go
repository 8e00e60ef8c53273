package services

import (
	"stash/internal/models"
	"stash/internal/storage"
	"stash/internal/testutil"
	"time"
)

// 2024-07-10 09:00 UTC; month key "2024-6".
var julyTenth = time.Date(2024, time.July, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store   *storage.MemoryStore
	clock   *testutil.FakeClock
	backend *testutil.MockBackend
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	cache   *testutil.MockCache
}

func newFixture() *fixture {
	return &fixture{
		store:   storage.NewMemoryStore(0),
		clock:   testutil.NewFakeClock(julyTenth),
		backend: &testutil.MockBackend{Profiles: map[string]*models.UserProfile{}},
		logger:  &testutil.MockLogger{},
		metrics: testutil.NewMockMetrics(),
		cache:   testutil.NewMockCache(),
	}
}

func (f *fixture) resetService(store storage.KeyValueStore) *MonthlyResetService {
	return NewMonthlyResetService(f.backend, storage.NewResetMarkerRepository(store), f.clock, f.logger, f.metrics).(*MonthlyResetService)
}

func (f *fixture) profileService() ProfileServiceInterface {
	return NewProfileService(f.backend, f.cache, f.logger)
}

func (f *fixture) sessionService() *SessionService {
	return NewSessionService(f.backend, storage.NewSessionRepository(f.store), f.profileService(), f.clock, f.logger, f.metrics).(*SessionService)
}

func (f *fixture) capService(store storage.KeyValueStore) *BudgetCapService {
	return NewBudgetCapService(storage.NewBudgetCapRepository(store), f.clock, f.logger, f.metrics).(*BudgetCapService)
}

// failingStore lets tests simulate storage write failures.
type failingStore struct {
	storage.KeyValueStore
	setErr    error
	removeErr error
}

func (s *failingStore) Set(key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.KeyValueStore.Set(key, value)
}

func (s *failingStore) Remove(key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	return s.KeyValueStore.Remove(key)
}
