/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package sendqueue holds the ordered list of outbound payloads a stream
// socket has accepted but not yet fully written to its transport. Entries
// are completed strictly in order, partially or fully, and an entry may
// carry a deadline, an identifying token, and a completion callback.
package sendqueue

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one queued outbound payload.
type Entry struct {
	ID          uint64
	Token       uuid.UUID
	HasToken    bool
	Data        []byte
	Deadline    time.Time
	HasDeadline bool
	Timestamp   time.Time
	Callback    func(err error)
}

// Queue is an ordered, thread-safe list of send Entry values plus the byte
// watermarks used to signal backpressure to the caller.
type Queue struct {
	mu sync.Mutex

	entries []*Entry
	nextID  uint64
	bytes   int

	lowWatermark  int
	highWatermark int
}

// New returns an empty Queue. A highWatermark of zero disables the high
// watermark crossing reported by Push.
func New(lowWatermark, highWatermark int) *Queue {
	return &Queue{
		lowWatermark:  lowWatermark,
		highWatermark: highWatermark,
	}
}

// Len returns the number of entries currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Bytes returns the total payload size currently queued.
func (q *Queue) Bytes() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.bytes
}
