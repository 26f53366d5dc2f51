package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"homeworkbot/internal/homework"
	"homeworkbot/internal/storage"
	logx "homeworkbot/pkg/logx"
)

// Settings is a Config with every field parsed and checked.
type Settings struct {
	Endpoint       string
	RequestTimeout time.Duration
	Lookback       time.Duration

	Schedule               Schedule
	ScheduleSpec           string
	ReportRepeatedFailures bool

	Locale      string
	RatePerSec  int
	SendTimeout time.Duration
	ThreadID    int

	Logging logx.Config
	Storage storage.Config
	Systemd bool
}

// Resolve validates c and returns the parsed settings. All problems are
// reported together.
func (c *Config) Resolve() (*Settings, error) {
	if c == nil {
		c = Default()
	}
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	s := &Settings{
		Endpoint:               strings.TrimSpace(c.Practicum.Endpoint),
		ScheduleSpec:           strings.TrimSpace(c.Poll.Interval),
		ReportRepeatedFailures: c.Poll.ReportRepeatedFailures,
		Locale:                 strings.ToLower(strings.TrimSpace(c.Notify.Locale)),
		RatePerSec:             c.Notify.RatePerSec,
		ThreadID:               c.Notify.ThreadID,
		Systemd:                c.Systemd.Enabled == nil || *c.Systemd.Enabled,
	}

	if s.Endpoint == "" {
		s.Endpoint = Default().Practicum.Endpoint
	}
	if u, err := url.Parse(s.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add(fmt.Errorf("practicum.endpoint: %q is not an http(s) URL", s.Endpoint))
	}

	var err error
	s.RequestTimeout, err = ParseDurationOrDefault("practicum.request_timeout", c.Practicum.RequestTimeout, 30*time.Second)
	add(err)
	s.Lookback, err = ParseDurationOrDefault("practicum.lookback", c.Practicum.Lookback, 720*time.Hour)
	add(err)

	if s.ScheduleSpec == "" {
		s.ScheduleSpec = Default().Poll.Interval
	}
	if s.Schedule, err = ParseSchedule(s.ScheduleSpec); err != nil {
		add(fmt.Errorf("poll.interval: %w", err))
	}

	if s.Locale == "" {
		s.Locale = homework.DefaultLocale
	}
	if _, err := homework.Verdicts(s.Locale); err != nil {
		add(fmt.Errorf("notify.locale: %w", err))
	}
	if s.RatePerSec < 0 {
		add(errors.New("notify.rate_per_sec: must be >= 0"))
	}
	if s.RatePerSec == 0 {
		s.RatePerSec = 1
	}
	s.SendTimeout, err = ParseDurationOrDefault("notify.send_timeout", c.Notify.SendTimeout, 10*time.Second)
	add(err)
	if s.ThreadID < 0 {
		add(errors.New("notify.thread_id: must be >= 0"))
	}

	if _, ok := logx.ParseLevel(c.Logging.Level); !ok {
		add(fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	if _, ok := logx.ParseLevel(c.Logging.File.MinLevel); !ok {
		add(fmt.Errorf("logging.file.min_level: unknown level %q", c.Logging.File.MinLevel))
	}
	s.Logging = logx.Config{
		Level:   c.Logging.Level,
		Console: c.Logging.Console,
		File: logx.FileConfig{
			Enabled:    c.Logging.File.Enabled,
			Path:       c.Logging.File.Path,
			MinLevel:   c.Logging.File.MinLevel,
			MaxSizeMB:  c.Logging.File.MaxSizeMB,
			MaxBackups: c.Logging.File.MaxBackups,
			MaxAgeDays: c.Logging.File.MaxAgeDays,
		},
	}

	s.Storage = storage.Config{
		Driver: strings.ToLower(strings.TrimSpace(c.Storage.Driver)),
		Path:   strings.TrimSpace(c.Storage.Path),
	}
	switch s.Storage.Driver {
	case "", "none":
		s.Storage.Driver = "none"
	case "file", "sqlite":
		if s.Storage.Path == "" {
			s.Storage.Path = "./data/homeworkbot"
		}
	default:
		add(fmt.Errorf("storage.driver: unknown driver %q (use none, file or sqlite)", c.Storage.Driver))
	}
	s.Storage.BusyTimeout, err = ParseDurationField("storage.busy_timeout", c.Storage.BusyTimeout)
	add(err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}
