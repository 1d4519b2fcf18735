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

package recvqueue

import "time"

// Append adds data to the back of the buffer as one new record entry.
func (q *Queue) Append(data []byte) {
	if len(data) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.data = append(q.data, data...)
	q.records = append(q.records, recordEntry{length: len(data), timestamp: time.Now()})
}

// consume removes n bytes from the front of data, splitting or dropping
// record entries as needed to keep the length invariant. Caller must hold
// mu and must not pass n greater than len(q.data).
func (q *Queue) consume(n int) []byte {
	out := make([]byte, n)
	copy(out, q.data[:n])
	q.data = q.data[n:]

	remaining := n
	i := 0
	for remaining > 0 && i < len(q.records) {
		if q.records[i].length <= remaining {
			remaining -= q.records[i].length
			i++
			continue
		}
		q.records[i].length -= remaining
		remaining = 0
	}
	q.records = q.records[i:]

	return out
}

// TryConsume satisfies a synchronous read immediately, without queuing
// anything: it succeeds only when no pending read is already ahead of it
// (preserving FIFO order between the synchronous and callback-based
// receive forms) and at least minSize bytes are already buffered. It
// takes up to maxSize bytes (the whole buffer if maxSize is zero or
// negative). ok is false, with a nil slice, on a miss.
func (q *Queue) TryConsume(minSize, maxSize int) (data []byte, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) > 0 || len(q.data) < minSize {
		return nil, false
	}

	take := len(q.data)
	if maxSize > 0 && maxSize < take {
		take = maxSize
	}

	return q.consume(take), true
}

// RegisterPendingRead enqueues a read request and returns its ID. The
// caller should follow up with TrySatisfy to see if it can be fulfilled
// immediately.
func (q *Queue) RegisterPendingRead(pr PendingRead) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	pr.ID = q.nextID
	cp := pr
	q.pending = append(q.pending, &cp)
	return cp.ID
}

// CancelPendingRead removes a pending read by ID before it was satisfied.
func (q *Queue) CancelPendingRead(id uint64) (PendingRead, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.pending {
		if p.ID == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return *p, true
		}
	}
	return PendingRead{}, false
}

// TrySatisfy drains as many pending reads from the front of the queue as
// the currently buffered data allows. A pending read is satisfied once at
// least MinSize bytes are available; it then takes up to MaxSize bytes
// (the whole buffer if MaxSize is zero or negative). Reads are only ever
// satisfied in order: if the front pending read cannot yet be satisfied,
// none behind it can be either.
func (q *Queue) TrySatisfy() []Satisfied {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []Satisfied
	for len(q.pending) > 0 {
		front := q.pending[0]
		if len(q.data) < front.MinSize {
			break
		}

		take := len(q.data)
		if front.MaxSize > 0 && front.MaxSize < take {
			take = front.MaxSize
		}

		data := q.consume(take)
		q.pending = q.pending[1:]
		out = append(out, Satisfied{Request: *front, Data: data})
	}
	return out
}

// ExpirePendingReads removes and returns every pending read whose deadline
// has passed as of now.
func (q *Queue) ExpirePendingReads(now time.Time) []PendingRead {
	q.mu.Lock()
	defer q.mu.Unlock()

	var expired []PendingRead
	kept := q.pending[:0]
	for _, p := range q.pending {
		if p.HasDeadline && !p.Deadline.After(now) {
			expired = append(expired, *p)
			continue
		}
		kept = append(kept, p)
	}
	q.pending = kept
	return expired
}
