package storage

import (
	"context"
	"errors"
	"strings"

	logx "homeworkbot/pkg/logx"
)

// Store is the journal API used by the notifier and the history command.
type Store interface {
	AppendNotification(ctx context.Context, r Record) error
	// RecentNotifications returns up to limit records, newest first.
	RecentNotifications(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if storage is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown storage driver: " + driver)
	}
}
