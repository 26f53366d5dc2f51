package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefaultResolves(t *testing.T) {
	t.Parallel()
	s, err := Default().Resolve()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, s.RequestTimeout)
	assert.Equal(t, 720*time.Hour, s.Lookback)
	assert.Equal(t, Every(10*time.Minute), s.Schedule)
	assert.Equal(t, "ru", s.Locale)
	assert.Equal(t, 1, s.RatePerSec)
	assert.Equal(t, "none", s.Storage.Driver)
	assert.True(t, s.Systemd)
	assert.False(t, s.ReportRepeatedFailures)
}

func TestParseYAMLOverDefaults(t *testing.T) {
	t.Parallel()
	p := writeFile(t, "bot.yaml", `
poll:
  interval: "*/5 * * * *"
notify:
  locale: en
storage:
  driver: sqlite
  path: /tmp/hw
systemd:
  enabled: false
`)
	cfg, err := NewConfigManager(p).Parse()
	require.NoError(t, err)
	assert.Equal(t, "720h", cfg.Practicum.Lookback, "omitted fields keep defaults")

	s, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "en", s.Locale)
	assert.Equal(t, "sqlite", s.Storage.Driver)
	assert.False(t, s.Systemd)

	from := time.Date(2024, 1, 1, 10, 2, 0, 0, time.Local)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 10, 5, 0, 0, time.Local), s.Schedule.Next(from), 0)
}

func TestParseRejectsUnknownAndTrailing(t *testing.T) {
	t.Parallel()
	_, err := NewConfigManager(writeFile(t, "a.json", `{"pol": {}}`)).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")

	_, err = NewConfigManager(writeFile(t, "b.json", `{} {}`)).Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing data")
}

func TestParseEmptyYAMLIsDefault(t *testing.T) {
	t.Parallel()
	cfg, err := NewConfigManager(writeFile(t, "empty.yml", "")).Parse()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolveReportsEveryProblem(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Practicum.Endpoint = "ftp://x"
	cfg.Practicum.Lookback = "forever"
	cfg.Poll.Interval = "soon"
	cfg.Notify.Locale = "de"
	cfg.Storage.Driver = "redis"

	_, err := cfg.Resolve()
	require.Error(t, err)
	for _, want := range []string{"practicum.endpoint", "practicum.lookback", "poll.interval", "notify.locale", "storage.driver"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 3, 1, 12, 0, 30, 0, time.Local)
	cases := []struct {
		in   string
		next time.Time
	}{
		{"10m", base.Add(10 * time.Minute)},
		{"00:15", base.Add(15 * time.Minute)},
		{"interval:1h", base.Add(time.Hour)},
		{"every:90s", base.Add(90 * time.Second)},
		{"@every 10m", base.Add(10 * time.Minute)},
		{"cron:0 13 * * *", time.Date(2024, 3, 1, 13, 0, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			s, err := ParseSchedule(tc.in)
			require.NoError(t, err)
			assert.WithinDuration(t, tc.next, s.Next(base), 0)
		})
	}

	for _, bad := range []string{"", "0s", "-5m", "00:75", "cron:", "* * *", "soon"} {
		_, err := ParseSchedule(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("PRACTICUM_TOKEN", "p-token")
	t.Setenv("TELEGRAM_TOKEN", "t-token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	c, err := LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "p-token", c.PracticumToken)
	assert.Equal(t, int64(-100123), c.TelegramChatID)
}

func TestLoadCredentialsMissing(t *testing.T) {
	t.Setenv("PRACTICUM_TOKEN", "")
	t.Setenv("TELEGRAM_TOKEN", "x")
	t.Setenv("TELEGRAM_CHAT_ID", " ")

	_, err := LoadCredentials()
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), "PRACTICUM_TOKEN")
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
	assert.NotContains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestLoadCredentialsBadChatID(t *testing.T) {
	t.Setenv("PRACTICUM_TOKEN", "p")
	t.Setenv("TELEGRAM_TOKEN", "t")
	t.Setenv("TELEGRAM_CHAT_ID", "@channel")

	_, err := LoadCredentials()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingCredential))
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "from-env")
	t.Setenv("PRACTICUM_TOKEN", "")
	p := writeFile(t, "test.env", "PRACTICUM_TOKEN=from-file\nTELEGRAM_TOKEN=from-file\n")

	// godotenv.Load only fills unset variables.
	require.NoError(t, os.Unsetenv("PRACTICUM_TOKEN"))
	require.NoError(t, LoadDotEnv(p))
	assert.Equal(t, "from-file", os.Getenv("PRACTICUM_TOKEN"))
	assert.Equal(t, "from-env", os.Getenv("TELEGRAM_TOKEN"))

	assert.Error(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestRedact(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "********cdef", Redact("0123456789abcdef"))
	assert.Equal(t, "***", Redact("abc"))
}

func TestRestartRequired(t *testing.T) {
	t.Parallel()
	a, b := Default(), Default()
	b.Poll.Interval = "5m"
	b.Logging.Level = "debug"
	assert.Empty(t, RestartRequired(a, b))

	b.Storage.Driver = "file"
	off := false
	b.Systemd.Enabled = &off
	assert.Equal(t, []string{"storage", "systemd"}, RestartRequired(a, b))
}

func TestWatchPublishesValidChanges(t *testing.T) {
	p := writeFile(t, "bot.json", `{"poll":{"interval":"10m"}}`)
	m := NewConfigManager(p)
	m.debounce = 10 * time.Millisecond
	m.SetValidator(func(_ context.Context, c *Config) error {
		_, err := c.Resolve()
		return err
	})
	_, err := m.Load()
	require.NoError(t, err)
	ch := m.Subscribe(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = m.Watch(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte(`{"poll":{"interval":"bogus"}}`), 0o600))
	time.Sleep(150 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte(`{"poll":{"interval":"5m"}}`), 0o600))

	select {
	case cfg := <-ch:
		assert.Equal(t, "5m", cfg.Poll.Interval)
		assert.Equal(t, "5m", m.Get().Poll.Interval)
	case <-time.After(3 * time.Second):
		t.Fatal("config not published")
	}
}

func TestWatchWithoutPathReturns(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NewConfigManager("").Watch(context.Background()))
}
