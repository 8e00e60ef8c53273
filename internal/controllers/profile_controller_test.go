package controllers

import (
	"net/http"
	"stash/internal/backend"
	"stash/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileController_Get(t *testing.T) {
	e := newEnv()
	e.backend.Profiles["test1"] = &models.UserProfile{Username: "test1", Name: "Asha", Age: 29, Theme: "light", SpendingPersonality: models.HeavySpender}
	pc := NewProfileController(e.logger, e.profiles)

	rr := call(pc.Get, http.MethodGet, "", user("test1"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"username":"test1","name":"Asha","age":29,"theme":"light","spendingPersonality":"Heavy Spender"}`, rr.Body.String())
}

func TestProfileController_GetErrors(t *testing.T) {
	e := newEnv()
	pc := NewProfileController(e.logger, e.profiles)

	assert.Equal(t, http.StatusNotFound, call(pc.Get, http.MethodGet, "", user("ghost")).Code)

	e.backend.ProfileErr = backend.ErrNetwork
	assert.Equal(t, http.StatusBadGateway, call(pc.Get, http.MethodGet, "", user("ghost")).Code)
}

func TestProfileController_Forget(t *testing.T) {
	e := newEnv()
	e.backend.Profiles["test1"] = &models.UserProfile{Username: "test1"}
	pc := NewProfileController(e.logger, e.profiles)
	call(pc.Get, http.MethodGet, "", user("test1"))
	assert.NotEmpty(t, e.cache.Data)

	rr := call(pc.Forget, http.MethodDelete, "", user("test1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, e.cache.Data)
}
