package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"homeworkbot/internal/config"
	"homeworkbot/internal/eventbus"
	"homeworkbot/internal/loop"
	"homeworkbot/internal/notifier"
	"homeworkbot/internal/poller"
	"homeworkbot/internal/runtime/supervisor"
	"homeworkbot/internal/storage"
	"homeworkbot/internal/systemd"
	kit "homeworkbot/internal/transport"
	telegram "homeworkbot/internal/transport/telegram/adapter"
	logx "homeworkbot/pkg/logx"
)

type Options struct {
	ConfigPath string
	EnvFile    string

	// TelegramURL and Offline are for tests and dry runs.
	TelegramURL string
	Offline     bool
}

type App struct {
	cfgm  *config.ConfigManager
	creds config.Credentials
	set   *config.Settings

	logs *logx.Service
	log  logx.Logger

	bus   eventbus.Bus
	store storage.Store

	client *poller.Client
	notif  *notifier.Service
	loop   *loop.Loop
	sd     *systemd.Notifier

	loopAlive atomic.Bool
}

// New loads credentials and config and builds every component. Any error is
// a startup failure.
func New(opts Options) (*App, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}
	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, err
	}
	cfgm := config.NewConfigManager(opts.ConfigPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	set, err := cfg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logSvc, log := logx.New(set.Logging)
	a := &App{cfgm: cfgm, creds: creds, set: set, logs: logSvc, log: log.With(logx.String("comp", "app")), bus: eventbus.New()}
	cfgm.SetLogger(log.With(logx.String("comp", "config")))

	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	if a.store, err = storage.Open(set.Storage, log.With(logx.String("comp", "storage"))); err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	ad, err := telegram.New(telegram.Config{
		Token:          creds.TelegramToken,
		RequestTimeout: set.SendTimeout,
		Offline:        opts.Offline,
		URL:            opts.TelegramURL,
	}, log.With(logx.String("comp", "telegram")))
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	a.notif = notifier.New(a.notifierConfig(set), ad, a.store, log.With(logx.String("comp", "notifier")))

	if a.client, err = poller.NewClient(poller.Config{
		Endpoint: set.Endpoint,
		Token:    creds.PracticumToken,
		Timeout:  set.RequestTimeout,
	}, log.With(logx.String("comp", "poller"))); err != nil {
		return nil, err
	}

	if a.loop, err = loop.New(loop.Config{
		Lookback:               set.Lookback,
		Schedule:               set.Schedule,
		Locale:                 set.Locale,
		ReportRepeatedFailures: set.ReportRepeatedFailures,
	}, a.client, a.notif, loop.WithLogger(log.With(logx.String("comp", "loop"))), loop.WithBus(a.bus)); err != nil {
		return nil, err
	}

	a.sd = systemd.New(set.Systemd, log.With(logx.String("comp", "systemd")))
	ok = true
	return a, nil
}

func (a *App) notifierConfig(set *config.Settings) notifier.Config {
	return notifier.Config{
		Target:      kit.ChatTarget{ChatID: a.creds.TelegramChatID, ThreadID: set.ThreadID},
		RatePerSec:  set.RatePerSec,
		SendTimeout: set.SendTimeout,
	}
}

// Loop exposes the poll loop (status output, tests).
func (a *App) Loop() *loop.Loop { return a.loop }

// Run blocks until ctx is canceled or a component fails for good.
func (a *App) Run(ctx context.Context) error {
	sup := supervisor.New(ctx, supervisor.WithLogger(a.log), supervisor.WithCancelOnError(true))
	a.log.Info("homeworkbot starting",
		logx.Int64("chat_id", a.creds.TelegramChatID),
		logx.String("schedule", a.set.ScheduleSpec),
		logx.String("locale", a.set.Locale),
		logx.String("storage", a.set.Storage.Driver),
	)

	a.cfgm.SetValidator(func(_ context.Context, cfg *config.Config) error {
		_, err := cfg.Resolve()
		return err
	})

	events, unsub := a.bus.Subscribe(64)
	sup.Go0("events", func(c context.Context) {
		defer unsub()
		a.followEvents(c, events)
	})

	sup.GoRestart("poll.loop", func(c context.Context) error {
		a.loopAlive.Store(true)
		defer a.loopAlive.Store(false)
		return a.loop.Run(c)
	}, supervisor.WithRestartBackoff(time.Second, time.Minute))

	reloads := a.cfgm.Subscribe(4)
	sup.Go0("config.reload", func(c context.Context) {
		defer a.cfgm.Unsubscribe(reloads)
		a.applyReloads(c, reloads)
	})
	sup.Go("config.watch", a.cfgm.Watch)
	sup.Go("systemd.watchdog", func(c context.Context) error {
		return a.sd.RunWatchdog(c, a.loopAlive.Load)
	})

	a.sd.Ready()

	<-sup.Context().Done()
	a.sd.Stopping()
	a.log.Info("shutting down")

	wctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := sup.Wait(wctx)
	a.close()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown timed out: %w", err)
	}
	return err
}

func (a *App) close() {
	a.client.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("storage close failed", logx.Err(err))
		}
	}
	if a.logs != nil {
		_ = a.logs.Close()
	}
}
