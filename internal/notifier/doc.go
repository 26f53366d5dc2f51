// Package notifier delivers operator-facing messages and decides which ones
// are worth sending.
//
// # Gate
//
// Gate is the single-slot duplicate filter: it remembers the last message
// handed to a Notifier and rejects an identical candidate. It is owned by one
// goroutine (the poll loop) and is not safe for concurrent use.
//
// # Service
//
// Service is the Telegram-backed Notifier. It rate limits sends, bounds each
// send with a timeout, journals the attempt to storage (when configured), and
// logs failures. Failures are returned to the caller but never re-sent
// through the same channel.
package notifier
