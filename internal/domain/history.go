package domain

import "time"

// HistoryEntry is one line in a contract's append-only audit log. Every
// successful mutating operation on the aggregate appends exactly one entry.
type HistoryEntry struct {
	ID        string
	Timestamp time.Time
	Action    string
	Actor     string
	Notes     string
}
