// FILE: format_test.go
package qlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

// TestSerializeTxt verifies the default text layout
func TestSerializeTxt(t *testing.T) {
	s := newSerializer("txt", time.RFC3339, true, true)
	out := string(s.serialize(testTime, LevelInfo, []any{"hello", 42, true}))

	assert.Equal(t, "2025-06-01T12:30:45Z INFO hello 42 true\n", out)
}

// TestSerializeTxtBareMessage verifies timestamp and level can be disabled
func TestSerializeTxtBareMessage(t *testing.T) {
	s := newSerializer("txt", time.RFC3339, false, false)
	out := string(s.serialize(testTime, LevelError, []any{"just the message"}))

	assert.Equal(t, "just the message\n", out)
}

// TestSerializeTxtValueTypes verifies per-type text rendering
func TestSerializeTxtValueTypes(t *testing.T) {
	s := newSerializer("txt", time.RFC3339, false, false)

	tests := []struct {
		name string
		arg  any
		want string
	}{
		{"string", "plain", "plain\n"},
		{"int", 7, "7\n"},
		{"int64", int64(-9), "-9\n"},
		{"uint64", uint64(12), "12\n"},
		{"float", 3.5, "3.5\n"},
		{"bool", false, "false\n"},
		{"nil", nil, "null\n"},
		{"error", errors.New("boom"), "boom\n"},
		{"error with space", errors.New("it broke"), "\"it broke\"\n"},
		{"stringer", LevelWarn, "WARN\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(s.serialize(testTime, LevelInfo, []any{tt.arg}))
			assert.Equal(t, tt.want, out)
		})
	}
}

// TestSerializeJSON verifies the JSON record shape parses and carries the
// expected members
func TestSerializeJSON(t *testing.T) {
	s := newSerializer("json", time.RFC3339, true, true)
	out := s.serialize(testTime, LevelWarn, []any{"disk low", "free_mb", 12})

	var record struct {
		Time   string `json:"time"`
		Level  string `json:"level"`
		Fields []any  `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(out, &record))

	assert.Equal(t, "2025-06-01T12:30:45Z", record.Time)
	assert.Equal(t, "WARN", record.Level)
	require.Len(t, record.Fields, 3)
	assert.Equal(t, "disk low", record.Fields[0])
	assert.Equal(t, "free_mb", record.Fields[1])
	assert.Equal(t, float64(12), record.Fields[2])
}

// TestSerializeJSONEscaping verifies special characters survive a
// marshal/parse round trip
func TestSerializeJSONEscaping(t *testing.T) {
	s := newSerializer("json", time.RFC3339, false, false)
	nasty := "line1\nline2\ttab \"quoted\" back\\slash \x01ctrl"
	out := s.serialize(testTime, LevelInfo, []any{nasty})

	var record struct {
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(out, &record))
	require.Len(t, record.Fields, 1)
	assert.Equal(t, nasty, record.Fields[0])
}

// TestSerializeRaw verifies raw output carries no metadata or newline
func TestSerializeRaw(t *testing.T) {
	s := newSerializer("raw", time.RFC3339, true, true)
	out := string(s.serialize(testTime, LevelError, []any{"a", 1, "b"}))

	assert.Equal(t, "a 1 b", out)
	assert.False(t, strings.HasSuffix(out, "\n"))
}

// TestSerializeRawBytes verifies byte slices are hex-encoded
func TestSerializeRawBytes(t *testing.T) {
	s := newSerializer("raw", time.RFC3339, false, false)
	out := string(s.serialize(testTime, LevelInfo, []any{[]byte{0xde, 0xad, 0xbe, 0xef}}))

	assert.Equal(t, "deadbeef", out)
}

// TestSerializeRawStruct verifies the spew fallback renders composite values
func TestSerializeRawStruct(t *testing.T) {
	type point struct {
		X, Y int
	}
	s := newSerializer("raw", time.RFC3339, false, false)
	out := string(s.serialize(testTime, LevelInfo, []any{point{X: 1, Y: 2}}))

	assert.Contains(t, out, "X")
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "Y")
	assert.Contains(t, out, "2")
}

// TestSerializeTimeArgument verifies time values honor the timestamp format
func TestSerializeTimeArgument(t *testing.T) {
	s := newSerializer("txt", "2006-01-02", false, false)
	out := string(s.serialize(testTime, LevelInfo, []any{testTime}))

	assert.Equal(t, "2025-06-01\n", out)
}

// TestSerializerReuse verifies the buffer resets between records
func TestSerializerReuse(t *testing.T) {
	s := newSerializer("txt", time.RFC3339, false, false)

	first := string(s.serialize(testTime, LevelInfo, []any{"first"}))
	second := string(s.serialize(testTime, LevelInfo, []any{"second"}))

	assert.Equal(t, "first\n", first)
	assert.Equal(t, "second\n", second)
}

// TestSerializeEmptyArgs verifies metadata-only records still terminate
func TestSerializeEmptyArgs(t *testing.T) {
	s := newSerializer("txt", time.RFC3339, false, true)
	out := string(s.serialize(testTime, LevelMessage, nil))

	assert.Equal(t, "MESSAGE\n", out)
}

// TestSerializeFormatterIndependence verifies formats do not leak state
// into one another across instances
func TestSerializeFormatterIndependence(t *testing.T) {
	txt := newSerializer("txt", time.RFC3339, false, false)
	raw := newSerializer("raw", time.RFC3339, false, false)

	assert.Equal(t, "x\n", string(txt.serialize(testTime, LevelInfo, []any{"x"})))
	assert.Equal(t, "x", string(raw.serialize(testTime, LevelInfo, []any{"x"})))
}

var _ fmt.Stringer = LevelInfo
