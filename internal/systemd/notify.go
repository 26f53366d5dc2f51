// Package systemd reports service state to systemd via sd_notify.
//
// Every call is a no-op when the process is not started by systemd
// (NOTIFY_SOCKET unset) or when the integration is disabled.
package systemd

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	logx "homeworkbot/pkg/logx"
)

type Notifier struct {
	enabled bool
	log     logx.Logger

	notify   func(unsetEnv bool, state string) (bool, error)
	watchdog func(unsetEnv bool) (time.Duration, error)
}

func New(enabled bool, log logx.Logger) *Notifier {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Notifier{
		enabled:  enabled,
		log:      log,
		notify:   daemon.SdNotify,
		watchdog: daemon.SdWatchdogEnabled,
	}
}

func (n *Notifier) send(state string) {
	if n == nil || !n.enabled {
		return
	}
	sent, err := n.notify(false, state)
	if err != nil {
		n.log.Warn("sd_notify failed", logx.String("state", state), logx.Err(err))
		return
	}
	if sent {
		n.log.Trace("sd_notify", logx.String("state", state))
	}
}

func (n *Notifier) Ready()    { n.send(daemon.SdNotifyReady) }
func (n *Notifier) Stopping() { n.send(daemon.SdNotifyStopping) }

// Status sets the one-line text shown by systemctl status.
func (n *Notifier) Status(text string) { n.send("STATUS=" + text) }

// RunWatchdog pings WATCHDOG=1 at half the unit's WatchdogSec while alive
// reports true. It returns immediately when no watchdog is configured.
func (n *Notifier) RunWatchdog(ctx context.Context, alive func() bool) error {
	if n == nil || !n.enabled {
		return nil
	}
	interval, err := n.watchdog(false)
	if err != nil {
		n.log.Warn("watchdog settings invalid", logx.Err(err))
		return nil
	}
	if interval <= 0 {
		return nil
	}
	tick := interval / 2
	n.log.Info("systemd watchdog enabled", logx.Duration("interval", interval))

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if alive == nil || alive() {
				n.send(daemon.SdNotifyWatchdog)
			} else {
				n.log.Warn("poll loop not alive; withholding watchdog ping")
			}
		}
	}
}
