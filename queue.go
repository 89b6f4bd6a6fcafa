// FILE: queue.go
package qlog

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// boundedQueue is a fixed-capacity ring buffer of entries shared between
// producer goroutines and the single consumer. A mutex guards the ring
// indices, which also establishes the acquire/release ordering that makes
// a pushed entry visible to the consumer. The occupied count never
// exceeds the capacity fixed at construction.
type boundedQueue struct {
	mu    sync.Mutex
	slots []Entry
	head  int
	count int

	policy OverflowPolicy

	// notify wakes the idle consumer; buffered so pushes never block on it.
	notify chan struct{}
	// flushRequested asks the consumer to drain the queue completely.
	flushRequested atomic.Bool

	overwritten atomic.Uint64
	spinWaits   atomic.Uint64
}

// newBoundedQueue creates a queue with the given fixed capacity.
func newBoundedQueue(capacity int, policy OverflowPolicy) *boundedQueue {
	return &boundedQueue{
		slots:  make([]Entry, capacity),
		policy: policy,
		notify: make(chan struct{}, 1),
	}
}

// push inserts the entry at the tail.
//
// DropWhenFull returns ErrQueueFull on a full queue without mutating
// state. OverwriteWhenFull evicts the oldest entry and never fails.
// FlushWhenFull raises the flush flag and retries until the consumer
// frees a slot; this spin is bounded only by consumer progress and will
// livelock if the consumer is itself blocked.
func (q *boundedQueue) push(e Entry) error {
	for {
		q.mu.Lock()
		if q.count < len(q.slots) {
			q.slots[(q.head+q.count)%len(q.slots)] = e
			q.count++
			q.mu.Unlock()
			q.wake()
			return nil
		}

		switch q.policy {
		case OverwriteWhenFull:
			// The tail of a full ring coincides with the head: the new
			// entry replaces the oldest and the head advances past it.
			q.slots[q.head] = e
			q.head = (q.head + 1) % len(q.slots)
			q.mu.Unlock()
			q.overwritten.Add(1)
			q.wake()
			return nil

		case FlushWhenFull:
			q.mu.Unlock()
			q.flushRequested.Store(true)
			q.wake()
			q.spinWaits.Add(1)
			runtime.Gosched()
			// Retry until the consumer makes room.

		default: // DropWhenFull
			q.mu.Unlock()
			return ErrQueueFull
		}
	}
}

// pop removes and returns the oldest entry. Non-blocking.
func (q *boundedQueue) pop() (Entry, bool) {
	q.mu.Lock()
	if q.count == 0 {
		q.mu.Unlock()
		return Entry{}, false
	}
	e := q.slots[q.head]
	q.slots[q.head] = Entry{}
	q.head = (q.head + 1) % len(q.slots)
	q.count--
	q.mu.Unlock()
	return e, true
}

// isEmpty reports whether no entries are buffered.
func (q *boundedQueue) isEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count == 0
}

// isFull reports whether the occupied count has reached capacity.
func (q *boundedQueue) isFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count == len(q.slots)
}

// len returns the occupied slot count.
func (q *boundedQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// capacity returns the fixed slot count.
func (q *boundedQueue) capacity() int {
	return len(q.slots)
}

// wake nudges the consumer; coalesced if a wakeup is already pending.
func (q *boundedQueue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// requestFlush asks the consumer to drain the queue on its next pass.
func (q *boundedQueue) requestFlush() {
	q.flushRequested.Store(true)
	q.wake()
}

// takeFlushRequest consumes a pending flush request, if any.
func (q *boundedQueue) takeFlushRequest() bool {
	return q.flushRequested.CompareAndSwap(true, false)
}
