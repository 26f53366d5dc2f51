package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule yields the next poll time after t. cron.Schedule satisfies it.
type Schedule interface {
	Next(t time.Time) time.Time
}

// Every is a fixed gap schedule.
type Every time.Duration

func (e Every) Next(t time.Time) time.Time { return t.Add(time.Duration(e)) }

var (
	reHHMM     = regexp.MustCompile(`^\s*(\d{1,3}):(\d{2})\s*$`)
	cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
)

// ParseSchedule parses poll.interval.
//
// Forms:
//   - "10m", "1h30m" (Go duration)
//   - "00:10" (HH:MM as a duration)
//   - "interval:<d>" / "every:<d>" forces interval parsing
//   - "*/10 * * * *", "@hourly", "@every 10m" (cron)
//   - "cron:<expr>" forces cron parsing
func ParseSchedule(raw string) (Schedule, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("schedule required")
	}

	low := strings.ToLower(s)
	switch {
	case strings.HasPrefix(low, "cron:"):
		return parseCron(strings.TrimSpace(s[len("cron:"):]))
	case strings.HasPrefix(low, "interval:"):
		return parseInterval(s[len("interval:"):])
	case strings.HasPrefix(low, "every:"):
		return parseInterval(s[len("every:"):])
	}

	if strings.ContainsAny(s, " \t") || strings.HasPrefix(s, "@") {
		return parseCron(s)
	}
	if sched, err := parseInterval(s); err == nil {
		return sched, nil
	}
	return nil, fmt.Errorf("invalid schedule %q (use a duration like '10m', HH:MM like '00:10', or cron like '*/10 * * * *')", raw)
}

func parseCron(expr string) (Schedule, error) {
	if expr == "" {
		return nil, fmt.Errorf("cron expression required")
	}
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron %q: %w", expr, err)
	}
	return sched, nil
}

func parseInterval(v string) (Schedule, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, fmt.Errorf("interval required")
	}
	var d time.Duration
	if m := reHHMM.FindStringSubmatch(v); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if mm > 59 {
			return nil, fmt.Errorf("invalid minutes in %q", v)
		}
		d = time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
	} else {
		var err error
		if d, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid interval %q: %w", v, err)
		}
	}
	if d <= 0 {
		return nil, fmt.Errorf("interval must be > 0")
	}
	return Every(d), nil
}
