// FILE: policy.go
package qlog

// ThreadingPolicy selects how entries travel from Log to the sinks.
type ThreadingPolicy int

const (
	// Direct dispatches synchronously on the calling goroutine with no
	// internal synchronization; the caller serializes concurrent use.
	Direct ThreadingPolicy = iota
	// DirectLocked dispatches synchronously under an internal mutex and
	// is safe for concurrent callers.
	DirectLocked
	// Queued buffers entries in a bounded queue drained by a single
	// consumer goroutine. Cross-goroutine ordering is only as strong as
	// the callers' own serialization.
	Queued
	// QueuedLocked is Queued with the producer side serialized, so each
	// caller's render+push is atomic relative to other callers.
	QueuedLocked
)

// String returns the policy's configuration name.
func (p ThreadingPolicy) String() string {
	switch p {
	case Direct:
		return "direct"
	case DirectLocked:
		return "direct_locked"
	case Queued:
		return "queued"
	case QueuedLocked:
		return "queued_locked"
	default:
		return "unknown"
	}
}

// ParseThreadingPolicy converts a configuration string to a policy.
func ParseThreadingPolicy(s string) (ThreadingPolicy, error) {
	switch s {
	case "direct":
		return Direct, nil
	case "direct_locked":
		return DirectLocked, nil
	case "queued":
		return Queued, nil
	case "queued_locked":
		return QueuedLocked, nil
	default:
		return 0, fmtErrorf("invalid threading_policy: '%s' (use direct, direct_locked, queued, queued_locked)", s)
	}
}

// queued reports whether the policy routes entries through the queue.
func (p ThreadingPolicy) queued() bool {
	return p == Queued || p == QueuedLocked
}

// OverflowPolicy defines queue behavior when push finds the queue full.
// Only meaningful under a queued threading policy.
type OverflowPolicy int

const (
	// DropWhenFull rejects the incoming entry with ErrQueueFull.
	DropWhenFull OverflowPolicy = iota
	// OverwriteWhenFull evicts the oldest buffered entry; never fails.
	OverwriteWhenFull
	// FlushWhenFull raises the flush flag and retries until the consumer
	// frees a slot. Bounded only by consumer progress; if the consumer is
	// itself blocked the push spins until it recovers.
	FlushWhenFull
)

// String returns the policy's configuration name.
func (p OverflowPolicy) String() string {
	switch p {
	case DropWhenFull:
		return "drop"
	case OverwriteWhenFull:
		return "overwrite"
	case FlushWhenFull:
		return "flush"
	default:
		return "unknown"
	}
}

// ParseOverflowPolicy converts a configuration string to a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "drop":
		return DropWhenFull, nil
	case "overwrite":
		return OverwriteWhenFull, nil
	case "flush":
		return FlushWhenFull, nil
	default:
		return 0, fmtErrorf("invalid overflow_policy: '%s' (use drop, overwrite, flush)", s)
	}
}
