package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures storage.
//
// Driver values:
//   - "file": JSON Lines journal
//   - "sqlite": SQLite database file (modernc.org/sqlite, pure Go)
//
// If Driver is empty or "none", storage is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// Kind of a journaled notification.
const (
	KindStatus     = "status"
	KindDiagnostic = "diagnostic"
)

// Record is one notification attempt.
// Keep it compact and schema-stable.
type Record struct {
	At       time.Time `json:"at"`
	Kind     string    `json:"kind"`
	ChatID   int64     `json:"chat_id"`
	Homework string    `json:"homework,omitempty"`
	Status   string    `json:"status,omitempty"`
	Text     string    `json:"text"`
	OK       bool      `json:"ok"`
	Error    string    `json:"error,omitempty"`
	TookMS   int64     `json:"took_ms"`
}
