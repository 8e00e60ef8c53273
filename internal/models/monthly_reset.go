package models

import (
	"strconv"
	"time"
)

// MonthKey encodes the calendar month of t as "<year>-<zero-based month>",
// so July 2024 is "2024-6".
func MonthKey(t time.Time) string {
	return strconv.Itoa(t.Year()) + "-" + strconv.Itoa(int(t.Month())-1)
}

type ResetInfo struct {
	LastReset    *string `json:"lastReset"`
	CurrentMonth string  `json:"currentMonth"`
}
