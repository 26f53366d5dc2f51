package app

import (
	"context"
	"fmt"

	"homeworkbot/internal/eventbus"
	logx "homeworkbot/pkg/logx"
)

// followEvents mirrors loop events into the systemd status line.
func (a *App) followEvents(ctx context.Context, events <-chan eventbus.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			a.log.Trace("event", logx.String("type", e.Type), logx.Time("time", e.Time))
			if line := statusLine(e); line != "" {
				a.sd.Status(line)
			}
		}
	}
}

func statusLine(e eventbus.Event) string {
	ts := e.Time.Format("15:04:05")
	switch d := e.Data.(type) {
	case eventbus.PollSucceeded:
		return fmt.Sprintf("last poll ok at %s, window %d, %d item(s)", ts, d.Window, d.Items)
	case eventbus.PollFailed:
		return fmt.Sprintf("last poll failed at %s: %s", ts, d.Kind)
	case eventbus.StatusChanged:
		return fmt.Sprintf("%s: %s -> %s at %s", d.Homework, orNone(d.From), d.To, ts)
	default:
		return ""
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
