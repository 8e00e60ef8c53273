package controllers

import (
	"fmt"
	"net/http"
	"stash/internal/storage"
	"time"
)

type HealthController struct {
	store     storage.KeyValueStore
	startTime time.Time
}

type healthResponse struct {
	Status        string         `json:"status"`
	Uptime        string         `json:"uptime"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Entries       int            `json:"entries"`
	Namespaces    map[string]int `json:"namespaces"`
	Unsaved       bool           `json:"unsaved"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Entries:       hc.store.Len(),
		Namespaces:    storage.CountByNamespace(hc.store),
		Unsaved:       hc.store.Dirty(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store storage.KeyValueStore) *HealthController {
	return &HealthController{
		store:     store,
		startTime: time.Now(),
	}
}
