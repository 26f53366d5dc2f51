package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestValidateAccepts(t *testing.T) {
	t.Parallel()
	raw := decode(t, `{"homeworks":[{"homework_name":"hw1","status":"reviewing"}],"current_date":1000}`)
	resp, err := Validate(raw)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	cur, ok := resp.CursorUnix()
	require.True(t, ok)
	assert.Equal(t, int64(1000), cur)
}

func TestValidateEmptyItems(t *testing.T) {
	t.Parallel()
	resp, err := Validate(decode(t, `{"homeworks":[],"current_date":"opaque"}`))
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	_, ok := resp.CursorUnix()
	assert.False(t, ok, "opaque cursor is passed through, not interpreted")
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		body  string
		kind  ValidationKind
		field string
	}{
		{name: "array", body: `[]`, kind: NotAMapping},
		{name: "string", body: `"x"`, kind: NotAMapping},
		{name: "null", body: `null`, kind: NotAMapping},
		{name: "empty object", body: `{}`, kind: MissingKey, field: KeyItems},
		{name: "no items", body: `{"current_date":1}`, kind: MissingKey, field: KeyItems},
		{name: "null items", body: `{"homeworks":null,"current_date":1}`, kind: MissingKey, field: KeyItems},
		{name: "no cursor", body: `{"homeworks":[]}`, kind: MissingKey, field: KeyCursor},
		{name: "null cursor", body: `{"homeworks":[],"current_date":null}`, kind: MissingKey, field: KeyCursor},
		{name: "items object", body: `{"homeworks":{},"current_date":1}`, kind: WrongType, field: KeyItems},
		{name: "items string", body: `{"homeworks":"hw","current_date":1}`, kind: WrongType, field: KeyItems},
		{name: "items number", body: `{"homeworks":3,"current_date":1}`, kind: WrongType, field: KeyItems},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(decode(t, tt.body))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestCursorUnixVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cursor any
		want   int64
		ok     bool
	}{
		{json.Number("1700000000"), 1700000000, true},
		{json.Number("12.0"), 12, true},
		{json.Number("12.5"), 0, false},
		{float64(42), 42, true},
		{int64(7), 7, true},
		{" 99 ", 99, true},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := Response{Cursor: tt.cursor}.CursorUnix()
		assert.Equal(t, tt.ok, ok, "%v", tt.cursor)
		assert.Equal(t, tt.want, got, "%v", tt.cursor)
	}
}
