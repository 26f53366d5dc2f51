package eventbus

// Poll loop event types.
const (
	TypePollSucceeded = "poll.succeeded"
	TypePollFailed    = "poll.failed"
	TypeStatusChanged = "status.changed"
	TypeNotifyFailed  = "notify.failed"
)

// PollSucceeded is the Data of TypePollSucceeded.
type PollSucceeded struct {
	Iteration string
	Window    int64 // window after advancing
	Items     int
}

// PollFailed is the Data of TypePollFailed.
type PollFailed struct {
	Iteration string
	Kind      string
	Err       string
	Reported  bool
}

// StatusChanged is the Data of TypeStatusChanged.
type StatusChanged struct {
	Iteration string
	Homework  string
	From      string
	To        string
}

// NotifyFailed is the Data of TypeNotifyFailed.
type NotifyFailed struct {
	Iteration string
	Kind      string
	Err       string
}
