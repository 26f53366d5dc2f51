// Package poller performs the single outbound call of each loop iteration:
// GET the homework statuses updated since a window start, and classify the
// outcome into the PollError kinds the loop's escalation policy understands.
//
// The client never retries. The loop polls again on its next tick.
package poller
