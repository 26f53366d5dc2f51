package loop

import "time"

// Snapshot is a copy of the loop state for status output.
type Snapshot struct {
	Window      int64
	PriorStatus string
	LastSent    string
	Iterations  uint64
	LastError   string
	LastRunAt   time.Time
}

// Snapshot is safe to call from any goroutine.
func (l *Loop) Snapshot() Snapshot {
	l.snapMu.Lock()
	defer l.snapMu.Unlock()
	return l.snap
}

// publishState copies loop-owned state under snapMu. Only the loop goroutine
// calls it; counted is false for the initial copy made by New.
func (l *Loop) publishState(iterErr error, counted bool) {
	last, _ := l.gate.Last()
	l.snapMu.Lock()
	defer l.snapMu.Unlock()
	l.snap.Window = l.window
	l.snap.PriorStatus = string(l.prior)
	l.snap.LastSent = last
	l.snap.LastError = ""
	if iterErr != nil {
		l.snap.LastError = iterErr.Error()
	}
	if counted {
		l.snap.Iterations++
		l.snap.LastRunAt = l.now()
	}
}
