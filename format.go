// FILE: format.go
package qlog

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
)

const hexChars = "0123456789abcdef"

// serializer renders log arguments into entry text. Instances are pooled
// by the Logger because rendering happens on producer goroutines.
type serializer struct {
	buf             []byte
	format          string
	timestampFormat string
	showTimestamp   bool
	showLevel       bool
}

// newSerializer creates a serializer instance.
func newSerializer(format, timestampFormat string, showTimestamp, showLevel bool) *serializer {
	if timestampFormat == "" {
		timestampFormat = time.RFC3339Nano
	}
	return &serializer{
		buf:             make([]byte, 0, 512),
		format:          format,
		timestampFormat: timestampFormat,
		showTimestamp:   showTimestamp,
		showLevel:       showLevel,
	}
}

// reset clears the serializer buffer for reuse.
func (s *serializer) reset() {
	s.buf = s.buf[:0]
}

// serialize converts log arguments to the configured format: JSON, raw,
// or (default) txt. The returned slice aliases the internal buffer; the
// caller must copy it before the serializer is reused.
func (s *serializer) serialize(timestamp time.Time, level Level, args []any) []byte {
	s.reset()

	switch s.format {
	case "raw":
		return s.serializeRaw(args)
	case "json":
		return s.serializeJSON(timestamp, level, args)
	default:
		return s.serializeTxt(timestamp, level, args)
	}
}

// serializeRaw formats args as space-separated strings without metadata
// or trailing newline.
func (s *serializer) serializeRaw(args []any) []byte {
	needsSpace := false

	for _, arg := range args {
		if needsSpace {
			s.buf = append(s.buf, ' ')
		}
		s.writeRawValue(arg)
		needsSpace = true
	}

	return s.buf
}

// writeRawValue converts any value to its raw string representation,
// falling back to go-spew for types without an explicit case.
func (s *serializer) writeRawValue(v any) {
	switch val := v.(type) {
	case string:
		s.buf = append(s.buf, val...)
	case int:
		s.buf = strconv.AppendInt(s.buf, int64(val), 10)
	case int64:
		s.buf = strconv.AppendInt(s.buf, val, 10)
	case uint:
		s.buf = strconv.AppendUint(s.buf, uint64(val), 10)
	case uint64:
		s.buf = strconv.AppendUint(s.buf, val, 10)
	case float32:
		s.buf = strconv.AppendFloat(s.buf, float64(val), 'f', -1, 32)
	case float64:
		s.buf = strconv.AppendFloat(s.buf, val, 'f', -1, 64)
	case bool:
		s.buf = strconv.AppendBool(s.buf, val)
	case nil:
		s.buf = append(s.buf, "nil"...)
	case time.Time:
		s.buf = val.AppendFormat(s.buf, s.timestampFormat)
	case error:
		s.buf = append(s.buf, val.Error()...)
	case fmt.Stringer:
		s.buf = append(s.buf, val.String()...)
	case []byte:
		s.buf = hex.AppendEncode(s.buf, val) // prevent special character corruption
	default:
		// Structs, maps, pointers, arrays: delegate to spew with a
		// compact, deterministic configuration.
		var b bytes.Buffer

		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}

		dumper.Fdump(&b, val)

		s.buf = append(s.buf, bytes.TrimSpace(b.Bytes())...)
	}
}

// serializeJSON formats a record as JSON (time, level, fields).
func (s *serializer) serializeJSON(timestamp time.Time, level Level, args []any) []byte {
	s.buf = append(s.buf, '{')
	needsComma := false

	if s.showTimestamp {
		s.buf = append(s.buf, `"time":"`...)
		s.buf = timestamp.AppendFormat(s.buf, s.timestampFormat)
		s.buf = append(s.buf, '"')
		needsComma = true
	}

	if s.showLevel {
		if needsComma {
			s.buf = append(s.buf, ',')
		}
		s.buf = append(s.buf, `"level":"`...)
		s.buf = append(s.buf, level.String()...)
		s.buf = append(s.buf, '"')
		needsComma = true
	}

	if len(args) > 0 {
		if needsComma {
			s.buf = append(s.buf, ',')
		}
		s.buf = append(s.buf, `"fields":[`...)
		for i, arg := range args {
			if i > 0 {
				s.buf = append(s.buf, ',')
			}
			s.writeJSONValue(arg)
		}
		s.buf = append(s.buf, ']')
	}

	s.buf = append(s.buf, '}', '\n')
	return s.buf
}

// serializeTxt formats a record as plain txt (time, level, fields).
func (s *serializer) serializeTxt(timestamp time.Time, level Level, args []any) []byte {
	needsSpace := false

	if s.showTimestamp {
		s.buf = timestamp.AppendFormat(s.buf, s.timestampFormat)
		needsSpace = true
	}

	if s.showLevel {
		if needsSpace {
			s.buf = append(s.buf, ' ')
		}
		s.buf = append(s.buf, level.String()...)
		needsSpace = true
	}

	for _, arg := range args {
		if needsSpace {
			s.buf = append(s.buf, ' ')
		}
		s.writeTxtValue(arg)
		needsSpace = true
	}

	s.buf = append(s.buf, '\n')
	return s.buf
}

// writeTxtValue converts any value to its txt representation.
func (s *serializer) writeTxtValue(v any) {
	switch val := v.(type) {
	case string:
		s.buf = append(s.buf, val...)
	case int:
		s.buf = strconv.AppendInt(s.buf, int64(val), 10)
	case int64:
		s.buf = strconv.AppendInt(s.buf, val, 10)
	case uint:
		s.buf = strconv.AppendUint(s.buf, uint64(val), 10)
	case uint64:
		s.buf = strconv.AppendUint(s.buf, val, 10)
	case float32:
		s.buf = strconv.AppendFloat(s.buf, float64(val), 'f', -1, 32)
	case float64:
		s.buf = strconv.AppendFloat(s.buf, val, 'f', -1, 64)
	case bool:
		s.buf = strconv.AppendBool(s.buf, val)
	case nil:
		s.buf = append(s.buf, "null"...)
	case time.Time:
		s.buf = val.AppendFormat(s.buf, s.timestampFormat)
	case error:
		s.writeQuotable(val.Error())
	case fmt.Stringer:
		s.writeQuotable(val.String())
	default:
		s.writeQuotable(fmt.Sprintf("%+v", val))
	}
}

// writeQuotable writes a string, quoting and escaping it when it is empty
// or contains spaces.
func (s *serializer) writeQuotable(str string) {
	if len(str) == 0 || strings.ContainsRune(str, ' ') {
		s.buf = append(s.buf, '"')
		s.writeString(str)
		s.buf = append(s.buf, '"')
	} else {
		s.buf = append(s.buf, str...)
	}
}

// writeJSONValue converts any value to its JSON representation.
func (s *serializer) writeJSONValue(v any) {
	switch val := v.(type) {
	case string:
		s.buf = append(s.buf, '"')
		s.writeString(val)
		s.buf = append(s.buf, '"')
	case int:
		s.buf = strconv.AppendInt(s.buf, int64(val), 10)
	case int64:
		s.buf = strconv.AppendInt(s.buf, val, 10)
	case uint:
		s.buf = strconv.AppendUint(s.buf, uint64(val), 10)
	case uint64:
		s.buf = strconv.AppendUint(s.buf, val, 10)
	case float32:
		s.buf = strconv.AppendFloat(s.buf, float64(val), 'f', -1, 32)
	case float64:
		s.buf = strconv.AppendFloat(s.buf, val, 'f', -1, 64)
	case bool:
		s.buf = strconv.AppendBool(s.buf, val)
	case nil:
		s.buf = append(s.buf, "null"...)
	case time.Time:
		s.buf = append(s.buf, '"')
		s.buf = val.AppendFormat(s.buf, s.timestampFormat)
		s.buf = append(s.buf, '"')
	case error:
		s.buf = append(s.buf, '"')
		s.writeString(val.Error())
		s.buf = append(s.buf, '"')
	case fmt.Stringer:
		s.buf = append(s.buf, '"')
		s.writeString(val.String())
		s.buf = append(s.buf, '"')
	default:
		s.buf = append(s.buf, '"')
		s.writeString(fmt.Sprintf("%+v", val))
		s.buf = append(s.buf, '"')
	}
}

// writeString appends a string to the buffer, escaping JSON special characters.
func (s *serializer) writeString(str string) {
	lenStr := len(str)
	for i := 0; i < lenStr; {
		if c := str[i]; c < ' ' || c == '"' || c == '\\' {
			switch c {
			case '\\', '"':
				s.buf = append(s.buf, '\\', c)
			case '\n':
				s.buf = append(s.buf, '\\', 'n')
			case '\r':
				s.buf = append(s.buf, '\\', 'r')
			case '\t':
				s.buf = append(s.buf, '\\', 't')
			case '\b':
				s.buf = append(s.buf, '\\', 'b')
			case '\f':
				s.buf = append(s.buf, '\\', 'f')
			default:
				s.buf = append(s.buf, `\u00`...)
				s.buf = append(s.buf, hexChars[c>>4], hexChars[c&0xF])
			}
			i++
		} else {
			start := i
			for i < lenStr && str[i] >= ' ' && str[i] != '"' && str[i] != '\\' {
				i++
			}
			s.buf = append(s.buf, str[start:i]...)
		}
	}
}
