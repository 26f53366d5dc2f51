package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"homeworkbot/internal/storage"
	kit "homeworkbot/internal/transport"
	logx "homeworkbot/pkg/logx"
)

var ErrEmptyMessage = errors.New("notifier: empty message")

// Service implements Notifier on top of a transport.Sender.
//
// It is safe for concurrent use; Apply may be called from the config reload
// goroutine while the loop sends.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	limiter *rate.Limiter

	sender kit.Sender
	store  storage.Store
	log    logx.Logger

	now func() time.Time
}

// New builds a Service. store may be nil (no journal).
func New(cfg Config, sender kit.Sender, store storage.Store, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Service{sender: sender, store: store, log: log, now: time.Now}
	s.applyLocked(cfg)
	return s
}

func (s *Service) Apply(cfg Config) {
	s.mu.Lock()
	s.applyLocked(cfg)
	s.mu.Unlock()
}

func (s *Service) applyLocked(cfg Config) {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	s.cfg = cfg
	// Token bucket: burst = rate per sec.
	s.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
}

// Send delivers m.Text to the configured chat.
//
// The returned error is informational: callers log it and move on.
func (s *Service) Send(ctx context.Context, m Message) error {
	text := strings.TrimSpace(m.Text)
	if text == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	cfg := s.cfg
	lim := s.limiter
	s.mu.Unlock()

	if s.sender == nil {
		return errors.New("notifier: no sender configured")
	}

	start := s.now()
	err := func() error {
		if err := lim.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
		callCtx, cancel := context.WithTimeout(ctx, cfg.SendTimeout)
		defer cancel()
		_, err := s.sender.SendText(callCtx, cfg.Target, text, &kit.SendOptions{DisablePreview: true})
		return err
	}()
	took := s.now().Sub(start)

	fields := []logx.Field{
		logx.String("kind", m.Kind),
		logx.Int64("chat_id", cfg.Target.ChatID),
		logx.Duration("took", took),
	}
	if err != nil {
		s.log.Error("message send failed", append(fields, logx.Err(err), logx.String("text", text))...)
	} else {
		s.log.Debug("message sent", fields...)
	}

	s.journal(ctx, m, text, cfg.Target.ChatID, start, took, err)
	return err
}

func (s *Service) journal(ctx context.Context, m Message, text string, chatID int64, at time.Time, took time.Duration, sendErr error) {
	if s.store == nil {
		return
	}
	r := storage.Record{
		At:       at,
		Kind:     m.Kind,
		ChatID:   chatID,
		Homework: m.Homework,
		Status:   m.Status,
		Text:     text,
		OK:       sendErr == nil,
		TookMS:   took.Milliseconds(),
	}
	if sendErr != nil {
		r.Error = sendErr.Error()
	}
	// Journal even when the loop context is already canceled.
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.store.AppendNotification(jctx, r); err != nil {
		s.log.Warn("notification journal append failed", logx.Err(err))
	}
}
