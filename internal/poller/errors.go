package poller

import "fmt"

// Kind classifies a failed fetch.
type Kind int

const (
	ConnectionFailure Kind = iota + 1
	Timeout
	HTTPError
	EmptyResponse
	DecodeFailure
)

func (k Kind) String() string {
	switch k {
	case ConnectionFailure:
		return "connection_failure"
	case Timeout:
		return "timeout"
	case HTTPError:
		return "http_error"
	case EmptyResponse:
		return "empty_response"
	case DecodeFailure:
		return "decode_failure"
	default:
		return "unknown"
	}
}

// PollError is returned by Client.Fetch for every non-success outcome.
type PollError struct {
	Kind       Kind
	StatusCode int // HTTPError, EmptyResponse
	Endpoint   string
	Err        error
}

func (e *PollError) Error() string {
	switch e.Kind {
	case ConnectionFailure:
		return fmt.Sprintf("connection to %s failed: %v", e.Endpoint, e.Err)
	case Timeout:
		return fmt.Sprintf("request to %s timed out", e.Endpoint)
	case HTTPError:
		return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.StatusCode)
	case EmptyResponse:
		return fmt.Sprintf("%s returned no content", e.Endpoint)
	case DecodeFailure:
		return fmt.Sprintf("response from %s is not valid JSON: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("poll %s failed: %v", e.Endpoint, e.Err)
	}
}

func (e *PollError) Unwrap() error { return e.Err }
