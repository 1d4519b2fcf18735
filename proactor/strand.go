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

package proactor

import "sync/atomic"

// netStrand serializes function execution through a single worker
// goroutine draining a job channel in submission order.
type netStrand struct {
	jobs    chan func()
	running int32
}

func newNetStrand() *netStrand {
	s := &netStrand{jobs: make(chan func(), 64)}
	go s.loop()
	return s
}

func (s *netStrand) loop() {
	for fn := range s.jobs {
		atomic.StoreInt32(&s.running, 1)
		fn()
		atomic.StoreInt32(&s.running, 0)
	}
}

// Execute enqueues fn for serialized execution on this strand's worker
// goroutine. It never runs fn inline, even when already called from the
// worker goroutine itself — distinguishing the two would require a
// goroutine-local identity Go does not expose, so Running is a best-effort
// approximation (see Running's doc) rather than a hard guarantee.
func (s *netStrand) Execute(fn func()) {
	s.jobs <- fn
}

// Running reports whether this strand's worker goroutine is currently
// executing a submitted function. It is a best-effort approximation of
// "is the calling goroutine the strand's own goroutine": it cannot
// distinguish the worker goroutine calling Running on itself from an
// unrelated goroutine calling it while a job happens to be running.
func (s *netStrand) Running() bool {
	return atomic.LoadInt32(&s.running) == 1
}

// CreateStrand returns a new serializing executor backed by a dedicated
// goroutine.
func (p *netProactor) CreateStrand() Strand {
	return newNetStrand()
}
