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

package sendqueue

import (
	"time"

	"github.com/google/uuid"
)

// PushOptions customizes an entry beyond its payload.
type PushOptions struct {
	Token       uuid.UUID
	HasToken    bool
	Deadline    time.Time
	HasDeadline bool
	Callback    func(err error)
}

// Push appends data as a new entry and returns its monotonic ID plus
// whether this push crossed the high watermark (bytes queued went from at
// or below it to above it).
func (q *Queue) Push(data []byte, opts PushOptions) (id uint64, crossedHigh bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	before := q.bytes
	q.nextID++
	id = q.nextID

	e := &Entry{
		ID:          id,
		Token:       opts.Token,
		HasToken:    opts.HasToken,
		Data:        data,
		Deadline:    opts.Deadline,
		HasDeadline: opts.HasDeadline,
		Timestamp:   time.Now(),
		Callback:    opts.Callback,
	}

	q.entries = append(q.entries, e)
	q.bytes += len(data)

	crossedHigh = q.highWatermark > 0 && before <= q.highWatermark && q.bytes > q.highWatermark
	return id, crossedHigh
}

// PushShutdown appends a zero-length marker entry. The send loop treats it
// as the point past which no further application data may be written,
// followed by a close-notify / FIN once the queue drains up to it.
func (q *Queue) PushShutdown() uint64 {
	id, _ := q.Push(nil, PushOptions{})
	return id
}

// Head returns the entry at the front of the queue, or nil if empty.
func (q *Queue) Head() *Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[0]
}

// CompleteHead reports that n bytes of the head entry's payload were
// written to the transport. If n consumes the entire remaining payload,
// the entry is popped and returned as done=true, along with its callback
// (if any) ready to invoke with a nil error. If n only partially consumes
// it, the entry's Data is trimmed in place and done is false. crossedLow
// reports whether this completion brought the queued byte count from
// above the low watermark to at or below it.
func (q *Queue) CompleteHead(n int) (done bool, completed *Entry, crossedLow bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return false, nil, false
	}

	before := q.bytes
	head := q.entries[0]

	if n >= len(head.Data) {
		q.bytes -= len(head.Data)
		q.entries = q.entries[1:]
		crossedLow = before > q.lowWatermark && q.bytes <= q.lowWatermark
		return true, head, crossedLow
	}

	head.Data = head.Data[n:]
	q.bytes -= n
	crossedLow = before > q.lowWatermark && q.bytes <= q.lowWatermark
	return false, nil, crossedLow
}

// CancelByToken removes the first entry carrying token, wherever it sits
// in the queue, and reports whether one was found.
func (q *Queue) CancelByToken(token uuid.UUID) (*Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.HasToken && e.Token == token {
			q.bytes -= len(e.Data)
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

// Cancel removes the entry with the given ID, wherever it sits in the
// queue, and reports whether one was found.
func (q *Queue) Cancel(id uint64) (*Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.ID == id {
			q.bytes -= len(e.Data)
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

// ExpireDeadlines removes and returns every entry whose deadline has
// passed as of now.
func (q *Queue) ExpireDeadlines(now time.Time) []*Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	var expired []*Entry
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.HasDeadline && !e.Deadline.After(now) {
			q.bytes -= len(e.Data)
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	q.entries = kept
	return expired
}
