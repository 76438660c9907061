package eutils

import (
	"fmt"
	"strings"
	"time"
)

// History tracks Entrez history server state: the current WebEnv and
// QueryKey plus a log of the calls that produced them.
type History struct {
	WebEnv   string
	QueryKey int
	Log      []HistoryEntry
}

// HistoryEntry records one search or post that touched the history
// server.
type HistoryEntry struct {
	WebEnv    string
	QueryKey  int
	Database  string
	Term      string
	Operation string
	Count     int
	Timestamp time.Time
}

// SaveSearch records a search result stored on the history server.
func (h *History) SaveSearch(webEnv string, queryKey int, db, term string, count int) {
	h.WebEnv = webEnv
	h.QueryKey = queryKey
	h.Log = append(h.Log, HistoryEntry{
		WebEnv:    webEnv,
		QueryKey:  queryKey,
		Database:  db,
		Term:      term,
		Operation: "search",
		Count:     count,
		Timestamp: time.Now(),
	})
}

// SavePost records a UID upload to the history server.
func (h *History) SavePost(webEnv string, queryKey int, db string, idCount int) {
	h.WebEnv = webEnv
	h.QueryKey = queryKey
	h.Log = append(h.Log, HistoryEntry{
		WebEnv:    webEnv,
		QueryKey:  queryKey,
		Database:  db,
		Operation: "post",
		Count:     idCount,
		Timestamp: time.Now(),
	})
}

// Active reports whether a WebEnv/QueryKey pair is available for reuse.
func (h *History) Active() bool {
	return h.WebEnv != "" && h.QueryKey != 0
}

// Clear drops the current WebEnv/QueryKey but keeps the log.
func (h *History) Clear() {
	h.WebEnv = ""
	h.QueryKey = 0
}

// ClearAll drops the current state and the log.
func (h *History) ClearAll() {
	h.Clear()
	h.Log = nil
}

// EntryByKey returns the logged entry for a query key, or nil.
func (h *History) EntryByKey(queryKey int) *HistoryEntry {
	for i := range h.Log {
		if h.Log[i].QueryKey == queryKey {
			return &h.Log[i]
		}
	}
	return nil
}

// CombineQueries builds a history-server term that combines earlier
// query keys with a boolean operator ("AND", "OR", "NOT").
func CombineQueries(queryKeys []int, operator string) (string, error) {
	if len(queryKeys) < 2 {
		return "", fmt.Errorf("need at least 2 query keys to combine, got %d", len(queryKeys))
	}

	terms := make([]string, len(queryKeys))
	for i, key := range queryKeys {
		terms[i] = fmt.Sprintf("#%d", key)
	}
	return strings.Join(terms, fmt.Sprintf(" %s ", operator)), nil
}
