package controllers

import (
	"errors"
	"net/http"
	"stash/internal/backend"
	"stash/internal/providers"
	"stash/internal/services"
)

type ProfileController struct {
	logger  providers.Logger
	service services.ProfileServiceInterface
}

func NewProfileController(logger providers.Logger, service services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{logger: logger, service: service}
}

func (pc *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	profile, err := pc.service.Get(r.Context(), username)
	switch {
	case errors.Is(err, backend.ErrRejected):
		writeError(w, http.StatusNotFound, "profile not found")
	case err != nil:
		pc.logger.Errorf(providers.TypeApp, "Failed to load profile for %s: %s", username, err)
		writeError(w, http.StatusBadGateway, "backend unavailable")
	default:
		writeJSON(w, http.StatusOK, profile)
	}
}

// Forget drops the cached profile, which is what logging out does.
func (pc *ProfileController) Forget(w http.ResponseWriter, r *http.Request) {
	pc.service.Forget(r.PathValue("username"))
	w.WriteHeader(http.StatusNoContent)
}
