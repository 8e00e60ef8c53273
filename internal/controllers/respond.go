package controllers

import (
	"net/http"
	"stash/internal/models"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const maxRequestBodySize = 1 << 20 // 1 MB

func init() {
	validate.AddValidator("personality", func(val any) bool {
		s, ok := val.(string)
		return ok && models.SpendingPersonality(s).IsValid()
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody reads a JSON body into dst and runs its validate tags. It writes
// the 400 response itself and returns false on any problem.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		writeError(w, http.StatusBadRequest, v.Errors.One())
		return false
	}
	return true
}
