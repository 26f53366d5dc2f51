package notifier

import (
	"context"
	"time"

	"homeworkbot/internal/storage"
	kit "homeworkbot/internal/transport"
)

const (
	KindStatus     = storage.KindStatus
	KindDiagnostic = storage.KindDiagnostic
)

// Message is one outbound notification.
type Message struct {
	Kind     string
	Text     string
	Homework string // status messages only
	Status   string // status messages only
}

// Notifier sends a message to the operator. Implementations must not retry
// through the same channel on failure.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}

// Config controls the Telegram-backed Service.
type Config struct {
	Target      kit.ChatTarget
	RatePerSec  int
	SendTimeout time.Duration
}
