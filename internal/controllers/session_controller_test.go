package controllers

import (
	"net/http"
	"stash/internal/backend"
	"stash/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startBody = `{"originalPersonality":"Heavy Spender","temporaryPersonality":"Max Saver"}`

func TestSessionController_StartAndCurrent(t *testing.T) {
	e := newEnv()
	sc := NewSessionController(e.sessions)

	rr := call(sc.Start, http.MethodPost, startBody, user("test1"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, rr))

	session := decode[models.PersonalitySession](t, call(sc.Current, http.MethodGet, "", user("test1")))
	assert.Equal(t, "test1", session.Username)
	assert.Equal(t, models.MaxSaver, session.TemporaryPersonality)

	remaining := decode[models.TimeRemaining](t, call(sc.Remaining, http.MethodGet, "", user("test1")))
	assert.Equal(t, models.TimeRemaining{Hours: 48, Minutes: 0}, remaining)
}

func TestSessionController_StartBackendFailure(t *testing.T) {
	e := newEnv()
	e.backend.UpdatePersonalityErr = backend.ErrNetwork
	sc := NewSessionController(e.sessions)

	rr := call(sc.Start, http.MethodPost, startBody, user("test1"))
	assert.Equal(t, map[string]bool{"success": false}, decode[map[string]bool](t, rr))
	assert.Equal(t, "null", call(sc.Current, http.MethodGet, "", user("test1")).Body.String())
}

func TestSessionController_StartValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing temporary", `{"originalPersonality":"Heavy Spender"}`},
		{"unknown personality", `{"originalPersonality":"Heavy Spender","temporaryPersonality":"Big Saver"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			sc := NewSessionController(e.sessions)

			rr := call(sc.Start, http.MethodPost, tt.body, user("test1"))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, e.backend.Personalities())
		})
	}
}

func TestSessionController_CheckExpired(t *testing.T) {
	e := newEnv()
	sc := NewSessionController(e.sessions)
	call(sc.Start, http.MethodPost, startBody, user("test1"))

	rr := call(sc.Check, http.MethodGet, "", user("test1"))
	status := decode[models.SessionStatus](t, rr)
	assert.True(t, status.HasActiveSession)

	e.clock.Advance(49 * time.Hour)
	rr = call(sc.Check, http.MethodGet, "", user("test1"))
	status = decode[models.SessionStatus](t, rr)
	assert.False(t, status.HasActiveSession)
	assert.True(t, status.WasExpired)
	require.NotNil(t, status.Session)
	assert.Equal(t, models.HeavySpender, status.Session.OriginalPersonality)
	assert.Equal(t, models.MaxSaver, status.Session.TemporaryPersonality)
}

func TestSessionController_End(t *testing.T) {
	e := newEnv()
	sc := NewSessionController(e.sessions)

	rr := call(sc.End, http.MethodDelete, "", user("test1"))
	assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, rr))

	call(sc.Start, http.MethodPost, startBody, user("test1"))
	rr = call(sc.End, http.MethodDelete, "", user("test1"))
	assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, rr))
	assert.Equal(t, "null", call(sc.Remaining, http.MethodGet, "", user("test1")).Body.String())
}
