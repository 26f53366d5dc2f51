package homework

import "fmt"

// ValidationKind classifies structural problems with a poll response.
type ValidationKind int

const (
	NotAMapping ValidationKind = iota + 1
	MissingKey
	WrongType
)

func (k ValidationKind) String() string {
	switch k {
	case NotAMapping:
		return "not_a_mapping"
	case MissingKey:
		return "missing_key"
	case WrongType:
		return "wrong_type"
	default:
		return "unknown"
	}
}

// ValidationError is returned by Validate. Field names the offending key for
// MissingKey and WrongType.
type ValidationError struct {
	Kind  ValidationKind
	Field string
	Got   string // dynamic type observed, for NotAMapping / WrongType
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case NotAMapping:
		return fmt.Sprintf("API response is not an object (got %s)", e.Got)
	case MissingKey:
		return fmt.Sprintf("API response is missing key %q", e.Field)
	case WrongType:
		return fmt.Sprintf("API response key %q has unexpected type %s", e.Field, e.Got)
	default:
		return "API response is invalid"
	}
}

// ExtractionKind classifies problems with a single homework record.
type ExtractionKind int

const (
	MissingField ExtractionKind = iota + 1
	UnknownStatus
	MalformedItem
)

func (k ExtractionKind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case UnknownStatus:
		return "unknown_status"
	case MalformedItem:
		return "malformed_item"
	default:
		return "unknown"
	}
}

// ExtractionError is returned by Extractor.Extract.
type ExtractionError struct {
	Kind  ExtractionKind
	Field string // MissingField
	Value string // UnknownStatus: the raw status; MalformedItem: the dynamic type
}

func (e *ExtractionError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("homework record is missing field %q", e.Field)
	case UnknownStatus:
		return fmt.Sprintf("unexpected homework status %q", e.Value)
	case MalformedItem:
		return fmt.Sprintf("homework record is not an object (got %s)", e.Value)
	default:
		return "homework record is invalid"
	}
}
