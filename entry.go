// FILE: entry.go
package qlog

// Entry is a fully-rendered, immutable log record. Rendering happens on
// the producer goroutine so the consumer's critical path only writes bytes.
// The timestamp, when shown, is already embedded in Text.
type Entry struct {
	Level Level
	Text  []byte
}
