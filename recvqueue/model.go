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

// Package recvqueue holds bytes a stream socket has read from its
// transport but not yet delivered to the application, alongside the list
// of pending read requests waiting for enough of it to arrive. Delivery
// respects request order: a request at the front of the line blocks
// every request behind it until it can be satisfied.
package recvqueue

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// recordEntry marks the boundary of one append to the queue (one
// transport read, or one decoded record), used only to track arrival
// time; it carries no application framing semantics of its own.
type recordEntry struct {
	length    int
	timestamp time.Time
}

// PendingRead is one outstanding application read request.
type PendingRead struct {
	ID          uint64
	MinSize     int
	MaxSize     int
	Token       uuid.UUID
	HasToken    bool
	Deadline    time.Time
	HasDeadline bool
	Callback    func(data []byte, err error)
}

// Satisfied is a PendingRead that TrySatisfy has fulfilled.
type Satisfied struct {
	Request PendingRead
	Data    []byte
}

// Queue is an ordered byte buffer plus the FIFO of pending reads waiting
// on it. The invariant sum(records[i].length) == len(data) always holds.
type Queue struct {
	mu sync.Mutex

	data    []byte
	records []recordEntry

	pending []*PendingRead
	nextID  uint64
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Len returns the number of bytes currently buffered.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.data)
}

// PendingCount returns the number of outstanding pending reads.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
