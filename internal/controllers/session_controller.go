package controllers

import (
	"net/http"
	"stash/internal/models"
	"stash/internal/services"
)

type SessionController struct {
	service services.SessionServiceInterface
}

func NewSessionController(service services.SessionServiceInterface) *SessionController {
	return &SessionController{service: service}
}

type startSessionRequest struct {
	OriginalPersonality  string `json:"originalPersonality" validate:"required|personality"`
	TemporaryPersonality string `json:"temporaryPersonality" validate:"required|personality"`
}

func (sc *SessionController) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ok := sc.service.StartTemporarySession(
		r.Context(),
		r.PathValue("username"),
		models.SpendingPersonality(req.OriginalPersonality),
		models.SpendingPersonality(req.TemporaryPersonality),
	)
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (sc *SessionController) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.service.CheckAndManageSession(r.Context(), r.PathValue("username")))
}

func (sc *SessionController) End(w http.ResponseWriter, r *http.Request) {
	ok := sc.service.EndSession(r.Context(), r.PathValue("username"))
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// Current answers null when there is no live session.
func (sc *SessionController) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.service.GetCurrentSession(r.PathValue("username")))
}

func (sc *SessionController) Remaining(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.service.GetTimeRemaining(r.PathValue("username")))
}
