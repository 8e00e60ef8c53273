package storage

import (
	"net/url"
	"strings"
)

const (
	NamespaceBudgetCap   = "budget_cap"
	NamespaceSession     = "personality_session"
	NamespaceResetMarker = "monthly_reset"

	keySep = "/"
)

// Segments are query-escaped so that a separator inside a username or
// category can never produce a key belonging to someone else.
func escape(segment string) string {
	return url.QueryEscape(segment)
}

func namespacePrefix(namespace string) string {
	return namespace + keySep
}

func budgetCapUserPrefix(username string) string {
	return namespacePrefix(NamespaceBudgetCap) + escape(username) + keySep
}

func budgetCapKey(username, category string) string {
	return budgetCapUserPrefix(username) + escape(category)
}

func parseBudgetCapKey(key string) (username, category string, ok bool) {
	rest, found := strings.CutPrefix(key, namespacePrefix(NamespaceBudgetCap))
	if !found {
		return "", "", false
	}
	rawUser, rawCategory, found := strings.Cut(rest, keySep)
	if !found {
		return "", "", false
	}
	username, err := url.QueryUnescape(rawUser)
	if err != nil {
		return "", "", false
	}
	category, err = url.QueryUnescape(rawCategory)
	if err != nil {
		return "", "", false
	}
	return username, category, true
}

func sessionKey(username string) string {
	return namespacePrefix(NamespaceSession) + escape(username)
}

func parseSessionKey(key string) (string, bool) {
	rest, found := strings.CutPrefix(key, namespacePrefix(NamespaceSession))
	if !found {
		return "", false
	}
	username, err := url.QueryUnescape(rest)
	if err != nil {
		return "", false
	}
	return username, true
}

func resetMarkerKey(userID string) string {
	return namespacePrefix(NamespaceResetMarker) + escape(userID)
}

// CountByNamespace reports how many keys each namespace holds.
func CountByNamespace(store KeyValueStore) map[string]int {
	counts := make(map[string]int, 3)
	for _, ns := range []string{NamespaceBudgetCap, NamespaceSession, NamespaceResetMarker} {
		counts[ns] = len(store.Keys(namespacePrefix(ns)))
	}
	return counts
}
