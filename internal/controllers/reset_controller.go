package controllers

import (
	"net/http"
	"stash/internal/services"
)

type ResetController struct {
	service services.MonthlyResetServiceInterface
}

func NewResetController(service services.MonthlyResetServiceInterface) *ResetController {
	return &ResetController{service: service}
}

func (rc *ResetController) Check(w http.ResponseWriter, r *http.Request) {
	reset := rc.service.CheckAndResetIfNeeded(r.Context(), r.PathValue("userId"))
	writeJSON(w, http.StatusOK, map[string]bool{"reset": reset})
}

func (rc *ResetController) Manual(w http.ResponseWriter, r *http.Request) {
	ok := rc.service.ManualReset(r.Context(), r.PathValue("userId"))
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (rc *ResetController) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rc.service.GetLastResetInfo(r.PathValue("userId")))
}
