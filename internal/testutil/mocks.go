package testutil

import (
	"context"
	"stash/internal/backend"
	"stash/internal/models"
	"stash/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements storage.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// FakeClock implements providers.ClockInterface with a hand-driven time.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                  sync.Mutex
	Requests            map[string]int
	CacheHits           int
	CacheMisses         int
	PersistenceObserved int
	StoreEntries        map[string]int
	MonthlyResets       map[string]int
	ResetClearFailures  map[string]int
	SessionTransitions  map[string]int
	BudgetCapsExpired   int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:           make(map[string]int),
		StoreEntries:       make(map[string]int),
		MonthlyResets:      make(map[string]int),
		ResetClearFailures: make(map[string]int),
		SessionTransitions: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceObserved++
}

func (m *MockMetrics) SetStoreEntries(namespace string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreEntries[namespace] = count
}

func (m *MockMetrics) IncMonthlyResets(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MonthlyResets[kind]++
}

func (m *MockMetrics) IncResetClearFailures(leg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetClearFailures[leg]++
}

func (m *MockMetrics) IncSessionTransitions(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionTransitions[event]++
}

func (m *MockMetrics) AddBudgetCapsExpired(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BudgetCapsExpired += count
}

// Snapshot helpers read counters under the lock.
func (m *MockMetrics) Resets(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.MonthlyResets[kind]
}

func (m *MockMetrics) Transitions(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SessionTransitions[event]
}

// MockBackend implements backend.ClientInterface and records calls.
type MockBackend struct {
	mu sync.Mutex

	ClearTransactionsErr error
	ClearSalaryErr       error
	UpdatePersonalityErr error
	// UpdatePersonalityFn overrides UpdatePersonalityErr when set.
	UpdatePersonalityFn func(userID string, p models.SpendingPersonality) error
	ProfileErr          error
	OverviewErr         error

	Profiles map[string]*models.UserProfile
	Overview []models.BudgetCategory

	// Delay is slept before each clear call; it lets tests overlap callers.
	// A clear whose context is done by then fails without being recorded.
	Delay time.Duration

	// Ops records every clear call in issue order, as "<op>:<userID>".
	Ops                    []string
	ClearTransactionsCalls []string
	ClearSalaryCalls       []string
	PersonalityCalls       []PersonalityCall
	ProfileCalls           []string
	OverviewCalls          []string
}

type PersonalityCall struct {
	UserID      string
	Personality models.SpendingPersonality
}

var _ backend.ClientInterface = (*MockBackend)(nil)

func (m *MockBackend) ClearManualTransactions(ctx context.Context, userID string) error {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearTransactionsCalls = append(m.ClearTransactionsCalls, userID)
	m.Ops = append(m.Ops, "transactions:"+userID)
	return m.ClearTransactionsErr
}

func (m *MockBackend) ClearSalary(ctx context.Context, userID string) error {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearSalaryCalls = append(m.ClearSalaryCalls, userID)
	m.Ops = append(m.Ops, "salary:"+userID)
	return m.ClearSalaryErr
}

func (m *MockBackend) UpdateSpendingPersonality(_ context.Context, userID string, p models.SpendingPersonality) error {
	m.mu.Lock()
	m.PersonalityCalls = append(m.PersonalityCalls, PersonalityCall{UserID: userID, Personality: p})
	fn, err := m.UpdatePersonalityFn, m.UpdatePersonalityErr
	m.mu.Unlock()
	if fn != nil {
		return fn(userID, p)
	}
	return err
}

func (m *MockBackend) GetUserProfile(_ context.Context, username string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProfileCalls = append(m.ProfileCalls, username)
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	if p, ok := m.Profiles[username]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, backend.ErrRejected
}

func (m *MockBackend) GetBudgetOverview(_ context.Context, userID string) ([]models.BudgetCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OverviewCalls = append(m.OverviewCalls, userID)
	if m.OverviewErr != nil {
		return nil, m.OverviewErr
	}
	out := make([]models.BudgetCategory, len(m.Overview))
	copy(out, m.Overview)
	return out, nil
}

// Calls returns copies of the recorded clear calls.
func (m *MockBackend) Calls() (transactions, salary []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ClearTransactionsCalls...), append([]string(nil), m.ClearSalaryCalls...)
}

func (m *MockBackend) Personalities() []PersonalityCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PersonalityCall(nil), m.PersonalityCalls...)
}
