package config

// Config is the optional on-disk configuration.
//
// Credentials never live here; they come from the environment (see
// Credentials). All durations are Go duration strings ("30s", "10m", "720h").
// Omitted fields keep the values from Default.
type Config struct {
	Practicum PracticumConfig `json:"practicum"`
	Poll      PollConfig      `json:"poll"`
	Notify    NotifyConfig    `json:"notify"`
	Logging   LoggingConfig   `json:"logging"`
	Storage   StorageConfig   `json:"storage"`
	Systemd   SystemdConfig   `json:"systemd"`
}

type PracticumConfig struct {
	Endpoint       string `json:"endpoint,omitempty"`
	RequestTimeout string `json:"request_timeout,omitempty"`
	// Lookback sets the first poll window to now - lookback.
	Lookback string `json:"lookback,omitempty"`
}

// PollConfig controls the loop cadence.
//
// Interval accepts a Go duration ("10m"), HH:MM ("00:10"), "interval:<d>",
// or a cron expression ("*/10 * * * *", "@every 10m", "cron:<expr>").
type PollConfig struct {
	Interval string `json:"interval,omitempty"`
	// ReportRepeatedFailures re-sends an identical diagnostic on every
	// failing iteration. Off by default: one report per distinct failure.
	ReportRepeatedFailures bool `json:"report_repeated_failures,omitempty"`
}

type NotifyConfig struct {
	Locale      string `json:"locale,omitempty"` // ru | en
	RatePerSec  int    `json:"rate_per_sec,omitempty"`
	SendTimeout string `json:"send_timeout,omitempty"`
	ThreadID    int    `json:"thread_id,omitempty"` // telegram forum topic
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled    bool   `json:"enabled"`
	Path       string `json:"path,omitempty"`
	MinLevel   string `json:"min_level,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
}

// StorageConfig controls the notification journal.
//
// Example:
//
//	storage: { driver: sqlite, path: ./data/homeworkbot }
type StorageConfig struct {
	Driver      string `json:"driver"` // none | file | sqlite
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // sqlite only
}

type SystemdConfig struct {
	Enabled *bool `json:"enabled,omitempty"` // default true
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Practicum: PracticumConfig{
			Endpoint:       "https://practicum.yandex.ru/api/user_api/homework_statuses/",
			RequestTimeout: "30s",
			Lookback:       "720h",
		},
		Poll:   PollConfig{Interval: "10m"},
		Notify: NotifyConfig{Locale: "ru", RatePerSec: 1, SendTimeout: "10s"},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			File: LoggingFile{
				Path:       "./logs/homeworkbot.log",
				MinLevel:   "error",
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
		Storage: StorageConfig{Driver: "none"},
	}
}
