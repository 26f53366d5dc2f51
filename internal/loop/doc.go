// Package loop runs the poll-diff-notify cycle.
//
// One goroutine owns the poll window, the prior status and both duplicate
// gates. Each iteration fetches the window, validates the response, extracts
// the first homework, sends a notification when its status changed, and only
// then advances the window to the server cursor. Any failure before the
// window moves is turned into one diagnostic message according to the
// escalation policy in policy.go; the window stays where it was.
package loop
