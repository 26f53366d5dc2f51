package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"homeworkbot/internal/eventbus"
	"homeworkbot/internal/homework"
	"homeworkbot/internal/notifier"
	logx "homeworkbot/pkg/logx"
)

// Fetcher performs one poll for the window. poller.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, window int64) (any, error)
}

// Schedule yields the earliest start of the next iteration.
type Schedule interface {
	Next(t time.Time) time.Time
}

type Config struct {
	Lookback time.Duration
	Schedule Schedule
	Locale   string
	// ReportRepeatedFailures sends a diagnostic even when it equals the
	// previous one.
	ReportRepeatedFailures bool
}

type Option func(*Loop)

func WithLogger(log logx.Logger) Option { return func(l *Loop) { l.log = log } }

func WithBus(b eventbus.Bus) Option { return func(l *Loop) { l.bus = b } }

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option { return func(l *Loop) { l.now = now } }

type Loop struct {
	fetcher   Fetcher
	notifier  notifier.Notifier
	extractor homework.Extractor
	prefix    string
	bus       eventbus.Bus
	log       logx.Logger
	now       func() time.Time

	// Owned by the loop goroutine.
	window int64
	prior  homework.Status
	gate   notifier.Gate
	diag   notifier.Gate

	// cfgMu guards values that hot reload may change.
	cfgMu          sync.Mutex
	sched          Schedule
	reportRepeated bool

	snapMu sync.Mutex
	snap   Snapshot
}

// New builds a loop whose first window is now - cfg.Lookback.
func New(cfg Config, f Fetcher, n notifier.Notifier, opts ...Option) (*Loop, error) {
	if f == nil || n == nil {
		return nil, errors.New("loop: fetcher and notifier are required")
	}
	verdicts, err := homework.Verdicts(cfg.Locale)
	if err != nil {
		return nil, err
	}
	if cfg.Schedule == nil {
		return nil, errors.New("loop: schedule is required")
	}
	l := &Loop{
		fetcher:        f,
		notifier:       n,
		extractor:      homework.NewExtractor(verdicts),
		prefix:         homework.FailurePrefix(cfg.Locale),
		bus:            eventbus.Nop{},
		log:            logx.Nop(),
		now:            time.Now,
		sched:          cfg.Schedule,
		reportRepeated: cfg.ReportRepeatedFailures,
	}
	for _, o := range opts {
		o(l)
	}
	if l.log.IsZero() {
		l.log = logx.Nop()
	}
	l.window = l.now().Add(-cfg.Lookback).Unix()
	l.publishState(nil, false)
	return l, nil
}

// SetSchedule changes the cadence from the next sleep on.
func (l *Loop) SetSchedule(s Schedule) {
	if s == nil {
		return
	}
	l.cfgMu.Lock()
	l.sched = s
	l.cfgMu.Unlock()
}

func (l *Loop) SetReportRepeatedFailures(v bool) {
	l.cfgMu.Lock()
	l.reportRepeated = v
	l.cfgMu.Unlock()
}

func (l *Loop) settings() (Schedule, bool) {
	l.cfgMu.Lock()
	defer l.cfgMu.Unlock()
	return l.sched, l.reportRepeated
}

// Run iterates until ctx is canceled. The gap to the next iteration is
// measured from the end of the previous one. Run returns nil on shutdown.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("poll loop started", logx.Int64("window", l.window))
	for {
		_ = l.RunOnce(ctx)

		sched, _ := l.settings()
		end := l.now()
		wait := sched.Next(end).Sub(end)
		if wait < 0 {
			wait = 0
		}
		l.log.Debug("sleeping", logx.Duration("for", wait))

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			l.log.Info("poll loop stopped", logx.Int64("window", l.window))
			return nil
		case <-t.C:
		}
	}
}

// RunOnce performs one iteration and returns its failure, if any. Send
// failures are not iteration failures.
func (l *Loop) RunOnce(ctx context.Context) error {
	iter := uuid.NewString()
	log := l.log.With(logx.String("iter", iter))
	start := l.now()

	raw, err := l.fetcher.Fetch(ctx, l.window)
	if err != nil {
		return l.fail(ctx, log, iter, err)
	}
	resp, err := homework.Validate(raw)
	if err != nil {
		return l.fail(ctx, log, iter, err)
	}

	if len(resp.Items) > 0 {
		ex, err := l.extractor.Extract(resp.Items[0], l.prior)
		if err != nil {
			return l.fail(ctx, log, iter, err)
		}
		if ex.Changed() {
			l.bus.Publish(eventbus.Event{Type: eventbus.TypeStatusChanged, Data: eventbus.StatusChanged{
				Iteration: iter, Homework: ex.Name, From: string(l.prior), To: string(ex.Status),
			}})
			log.Info("status changed", logx.String("homework", ex.Name), logx.String("from", string(l.prior)), logx.String("to", string(ex.Status)))
			l.deliver(ctx, log, iter, &l.gate, notifier.Message{
				Kind: notifier.KindStatus, Text: ex.Message, Homework: ex.Name, Status: string(ex.Status),
			})
		}
		l.prior = ex.Status
	}

	l.advance(log, resp)
	l.diag.Reset()

	log.Debug("poll ok", logx.Int("items", len(resp.Items)), logx.Int64("window", l.window), logx.Duration("took", l.now().Sub(start)))
	l.bus.Publish(eventbus.Event{Type: eventbus.TypePollSucceeded, Data: eventbus.PollSucceeded{
		Iteration: iter, Window: l.window, Items: len(resp.Items),
	}})
	l.publishState(nil, true)
	return nil
}

// advance moves the window to the server cursor, or to now when the cursor
// is not a Unix timestamp. The window never moves backwards.
func (l *Loop) advance(log logx.Logger, resp homework.Response) {
	next, ok := resp.CursorUnix()
	if !ok {
		next = l.now().Unix()
		log.Warn("cursor is not a unix timestamp; using local clock", logx.Any("cursor", resp.Cursor))
	}
	if next < l.window {
		log.Warn("server cursor is behind the window; keeping window", logx.Int64("cursor", next), logx.Int64("window", l.window))
		return
	}
	l.window = next
}

// deliver sends m when gate allows it and records it regardless of the outcome.
func (l *Loop) deliver(ctx context.Context, log logx.Logger, iter string, gate *notifier.Gate, m notifier.Message) {
	if !gate.ShouldSend(m.Text) {
		log.Debug("duplicate message suppressed", logx.String("kind", m.Kind))
		return
	}
	if err := l.notifier.Send(ctx, m); err != nil {
		log.Error("notification not delivered", logx.String("kind", m.Kind), logx.Err(err))
		l.bus.Publish(eventbus.Event{Type: eventbus.TypeNotifyFailed, Data: eventbus.NotifyFailed{
			Iteration: iter, Kind: m.Kind, Err: err.Error(),
		}})
	}
	gate.RecordSent(m.Text)
}

func (l *Loop) fail(ctx context.Context, log logx.Logger, iter string, err error) error {
	a := Classify(ctx, err)
	log.Log(a.Level, "poll iteration failed", logx.String("kind", a.Kind), logx.Err(err), logx.Int64("window", l.window))

	reported := false
	if a.Report {
		text := fmt.Sprintf("%s: %v", l.prefix, err)
		_, repeat := l.settings()
		if repeat {
			l.diag.Reset()
		}
		reported = l.diag.ShouldSend(text)
		l.deliver(ctx, log, iter, &l.diag, notifier.Message{Kind: notifier.KindDiagnostic, Text: text})
	}

	l.bus.Publish(eventbus.Event{Type: eventbus.TypePollFailed, Data: eventbus.PollFailed{
		Iteration: iter, Kind: a.Kind, Err: err.Error(), Reported: reported,
	}})
	l.publishState(err, true)
	return err
}
