package loop

import (
	"context"
	"errors"

	"homeworkbot/internal/homework"
	"homeworkbot/internal/poller"
	logx "homeworkbot/pkg/logx"
)

// Action says how a failed iteration is handled.
type Action struct {
	Kind   string
	Level  logx.Level
	Report bool // send a diagnostic to the operator
}

var policy = map[string]Action{
	"poll." + poller.ConnectionFailure.String(): {Level: logx.LevelError, Report: true},
	"poll." + poller.Timeout.String():           {Level: logx.LevelError, Report: true},
	"poll." + poller.HTTPError.String():         {Level: logx.LevelError, Report: true},
	"poll." + poller.EmptyResponse.String():     {Level: logx.LevelInfo, Report: true},
	"poll." + poller.DecodeFailure.String():     {Level: logx.LevelError, Report: true},
	"validation":                                {Level: logx.LevelError, Report: true},
	"extraction":                                {Level: logx.LevelError, Report: true},
	"canceled":                                  {Level: logx.LevelDebug, Report: false},
	"unknown":                                   {Level: logx.LevelError, Report: true},
}

// Classify maps an iteration error to its policy entry. ctx decides whether a
// failure is really a shutdown.
func Classify(ctx context.Context, err error) Action {
	kind := "unknown"
	var (
		pe *poller.PollError
		ve *homework.ValidationError
		ee *homework.ExtractionError
	)
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		kind = "canceled"
	case errors.As(err, &pe):
		kind = "poll." + pe.Kind.String()
	case errors.As(err, &ve):
		kind = "validation"
	case errors.As(err, &ee):
		kind = "extraction"
	}
	a, ok := policy[kind]
	if !ok {
		a = policy["unknown"]
	}
	a.Kind = kind
	return a
}
