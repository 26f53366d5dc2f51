package app

import (
	"context"
	"strings"

	"homeworkbot/internal/config"
	logx "homeworkbot/pkg/logx"
)

// applyReloads applies validated config updates: logging, poll schedule,
// repeated failure reporting and notifier rate. Other sections need a restart.
func (a *App) applyReloads(ctx context.Context, sub chan *config.Config) {
	last := a.cfgm.Get()
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-sub:
			if !ok {
				return
			}
			// Coalesce bursts.
			for drained := false; !drained; {
				select {
				case newer := <-sub:
					if newer != nil {
						cfg = newer
					}
				default:
					drained = true
				}
			}
			if err := a.apply(last, cfg); err != nil {
				a.log.Warn("config update ignored", logx.Err(err))
				continue
			}
			last = cfg
		}
	}
}

func (a *App) apply(prev, cfg *config.Config) error {
	set, err := cfg.Resolve()
	if err != nil {
		return err
	}
	if stale := config.RestartRequired(prev, cfg); len(stale) > 0 {
		a.log.Warn("config changed in sections that need a restart", logx.String("sections", strings.Join(stale, ",")))
	}

	a.logs.Apply(set.Logging)
	a.loop.SetSchedule(set.Schedule)
	a.loop.SetReportRepeatedFailures(set.ReportRepeatedFailures)
	// Locale and thread id are restart-only; keep the running target.
	keep := *a.set
	keep.RatePerSec = set.RatePerSec
	keep.SendTimeout = set.SendTimeout
	keep.Logging = set.Logging
	keep.Schedule = set.Schedule
	keep.ScheduleSpec = set.ScheduleSpec
	keep.ReportRepeatedFailures = set.ReportRepeatedFailures
	a.notif.Apply(a.notifierConfig(&keep))
	a.set = &keep

	a.log.Info("config applied",
		logx.String("schedule", set.ScheduleSpec),
		logx.Int("rate_per_sec", set.RatePerSec),
		logx.String("log_level", set.Logging.Level),
	)
	return nil
}
