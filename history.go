package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// historyRetention bounds how far back per-domain entries are kept.
const historyRetention = 30 * 24 * time.Hour

// historyEntry is one rolled-up data point for a domain.
type historyEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	TotalSize      int64     `json:"total_size"`
	ScriptCount    int       `json:"script_count"`
	ThirdPartySize int64     `json:"third_party_size"`
}

// historyStore keeps a bounded-retention per-domain time series of snapshot
// rollups, sorted newest-first, backed by one JSON file. The engine never
// touches it; the caller appends after each snapshot.
type historyStore struct {
	path    string
	domains map[string][]historyEntry
}

// openHistoryStore loads the store from disk; a missing file yields an
// empty store.
func openHistoryStore(path string) (*historyStore, error) {
	store := &historyStore{path: path, domains: map[string][]historyEntry{}}

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if err := json.Unmarshal(content, &store.domains); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}

	return store, nil
}

// Append rolls a snapshot into the domain's series, pruning entries older
// than the retention window and keeping the series newest-first.
func (h *historyStore) Append(domain string, snapshot AnalysisSnapshot) {
	entries := append(h.domains[domain], historyEntry{
		Timestamp:      snapshot.CapturedAt,
		TotalSize:      snapshot.Totals.TotalSize,
		ScriptCount:    len(snapshot.Scripts),
		ThirdPartySize: snapshot.Totals.ThirdPartySize,
	})

	cutoff := snapshot.CapturedAt.Add(-historyRetention)
	kept := entries[:0]
	for _, e := range entries {
		if e.Timestamp.After(cutoff) {
			kept = append(kept, e)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Timestamp.After(kept[j].Timestamp) })
	h.domains[domain] = kept
}

// Entries returns the stored series for a domain, newest-first.
func (h *historyStore) Entries(domain string) []historyEntry {
	return h.domains[domain]
}

// Save writes the store back to disk.
func (h *historyStore) Save() error {
	content, err := json.MarshalIndent(h.domains, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	if err := os.WriteFile(h.path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}
