package controllers

import (
	"net/http"
	"stash/internal/models"
	"stash/internal/providers"
	"stash/internal/services"
)

type BudgetController struct {
	logger   providers.Logger
	caps     services.BudgetCapServiceInterface
	overview services.BudgetOverviewServiceInterface
}

func NewBudgetController(logger providers.Logger, caps services.BudgetCapServiceInterface, overview services.BudgetOverviewServiceInterface) *BudgetController {
	return &BudgetController{logger: logger, caps: caps, overview: overview}
}

type setBudgetCapRequest struct {
	Value *float64 `json:"value"`
}

type budgetCapResponse struct {
	Category string   `json:"category"`
	Value    *float64 `json:"value"`
}

type computeBudgetRequest struct {
	Personality  string               `json:"personality" validate:"required|personality"`
	Transactions []models.Transaction `json:"transactions"`
}

type overviewResponse struct {
	Source     services.Source         `json:"source"`
	Categories []models.BudgetCategory `json:"categories"`
}

func (bc *BudgetController) GetAll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bc.caps.GetAllBudgetCaps(r.PathValue("username")))
}

func (bc *BudgetController) ClearAll(w http.ResponseWriter, r *http.Request) {
	cleared := bc.caps.ClearAllBudgetCaps(r.PathValue("username"))
	writeJSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}

func (bc *BudgetController) Get(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	resp := budgetCapResponse{Category: category}
	if v, ok := bc.caps.GetBudgetCap(r.PathValue("username"), category); ok {
		resp.Value = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (bc *BudgetController) Set(w http.ResponseWriter, r *http.Request) {
	var req setBudgetCapRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}
	if *req.Value < 0 {
		writeError(w, http.StatusBadRequest, "value must not be negative")
		return
	}
	category := r.PathValue("category")
	if err := bc.caps.SetBudgetCap(r.PathValue("username"), category, *req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, budgetCapResponse{Category: category, Value: req.Value})
}

func (bc *BudgetController) Remove(w http.ResponseWriter, r *http.Request) {
	if err := bc.caps.RemoveBudgetCap(r.PathValue("username"), r.PathValue("category")); err != nil {
		bc.logger.Errorf(providers.TypeBudget, "Failed to remove budget cap: %s", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (bc *BudgetController) Sweep(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"cleared": bc.caps.ClearExpiredBudgetCaps()})
}

// personalityParam reads ?personality=, defaulting to Max Saver. It writes the
// 400 itself for an unknown value.
func personalityParam(w http.ResponseWriter, r *http.Request) (models.SpendingPersonality, bool) {
	personality := models.SpendingPersonality(r.URL.Query().Get("personality"))
	if personality == "" {
		return models.MaxSaver, true
	}
	if !personality.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown personality")
		return "", false
	}
	return personality, true
}

func (bc *BudgetController) Overview(w http.ResponseWriter, r *http.Request) {
	personality, ok := personalityParam(w, r)
	if !ok {
		return
	}
	rows, source := bc.overview.GetOverview(r.Context(), r.PathValue("username"), personality)
	writeJSON(w, http.StatusOK, overviewResponse{Source: source, Categories: rows})
}

// Compute totals the posted transactions against the persona caps and the
// user's live overrides.
func (bc *BudgetController) Compute(w http.ResponseWriter, r *http.Request) {
	var req computeBudgetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rows := bc.overview.ComputeFromTransactions(r.PathValue("username"), models.SpendingPersonality(req.Personality), req.Transactions)
	writeJSON(w, http.StatusOK, rows)
}

func (bc *BudgetController) Defaults(w http.ResponseWriter, r *http.Request) {
	personality, ok := personalityParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, bc.overview.DefaultCaps(personality))
}
