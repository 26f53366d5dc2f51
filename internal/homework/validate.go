package homework

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Wire keys of the Practicum homework_statuses response.
const (
	KeyItems  = "homeworks"
	KeyCursor = "current_date"

	FieldName   = "homework_name"
	FieldStatus = "status"
)

// Response is a poll response that passed Validate.
type Response struct {
	Items  []any
	Cursor any // passed through as decoded; see CursorUnix
}

// Validate checks the top-level shape of a decoded poll response.
//
// raw is the output of a JSON decoder (map[string]any, []any, json.Number, ...).
// Only the presence of both keys and the sequence type of the items are
// checked; the cursor is not interpreted.
func Validate(raw any) (Response, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Response{}, &ValidationError{Kind: NotAMapping, Got: typeName(raw)}
	}
	for _, key := range []string{KeyItems, KeyCursor} {
		if v, ok := m[key]; !ok || v == nil {
			return Response{}, &ValidationError{Kind: MissingKey, Field: key}
		}
	}
	items, ok := m[KeyItems].([]any)
	if !ok {
		return Response{}, &ValidationError{Kind: WrongType, Field: KeyItems, Got: typeName(m[KeyItems])}
	}
	return Response{Items: items, Cursor: m[KeyCursor]}, nil
}

// CursorUnix interprets the cursor as Unix seconds. Integral numbers and
// numeric strings are accepted.
func (r Response) CursorUnix() (int64, bool) {
	switch v := r.Cursor.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		return floatToUnix(f, err == nil)
	case float64:
		return floatToUnix(v, true)
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func floatToUnix(f float64, ok bool) (int64, bool) {
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
