package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"stash/internal/models"
	"stash/internal/services"
	"stash/internal/storage"
	"stash/internal/testutil"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.July, 10, 9, 0, 0, 0, time.UTC)

type env struct {
	store    *storage.MemoryStore
	clock    *testutil.FakeClock
	backend  *testutil.MockBackend
	logger   *testutil.MockLogger
	cache    *testutil.MockCache
	resets   services.MonthlyResetServiceInterface
	profiles services.ProfileServiceInterface
	sessions services.SessionServiceInterface
	caps     services.BudgetCapServiceInterface
	overview services.BudgetOverviewServiceInterface
}

func newEnv() *env {
	e := &env{
		store:   storage.NewMemoryStore(0),
		clock:   testutil.NewFakeClock(now),
		backend: &testutil.MockBackend{Profiles: map[string]*models.UserProfile{}},
		logger:  &testutil.MockLogger{},
		cache:   testutil.NewMockCache(),
	}
	metrics := testutil.NewMockMetrics()
	e.resets = services.NewMonthlyResetService(e.backend, storage.NewResetMarkerRepository(e.store), e.clock, e.logger, metrics)
	e.profiles = services.NewProfileService(e.backend, e.cache, e.logger)
	e.sessions = services.NewSessionService(e.backend, storage.NewSessionRepository(e.store), e.profiles, e.clock, e.logger, metrics)
	e.caps = services.NewBudgetCapService(storage.NewBudgetCapRepository(e.store), e.clock, e.logger, metrics)
	e.overview = services.NewBudgetOverviewService(e.backend, e.caps, e.logger)
	return e
}

// call invokes handler with the given path values set, as the mux would.
func call(handler http.HandlerFunc, method, body string, pathValues map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", reader)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func user(name string) map[string]string {
	return map[string]string{"userId": name, "username": name}
}
