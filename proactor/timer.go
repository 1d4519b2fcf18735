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

import (
	"sync"
	"time"
)

// netTimer is a Timer backed by time.Timer/time.Ticker plus one dispatch
// goroutine per schedule.
type netTimer struct {
	mu     sync.Mutex
	timer  *time.Timer
	ticker *time.Ticker
	stop   chan struct{}
	closed bool
}

// CreateTimer returns a new, unarmed Timer. Call Schedule to arm it.
func (p *netProactor) CreateTimer(opts TimerOptions) Timer {
	t := &netTimer{}
	if !opts.Deadline.IsZero() || opts.Interval > 0 {
		t.Schedule(opts, nil)
	}
	return t
}

// Schedule arms (or re-arms) the timer. A zero Interval yields a one-shot
// deadline timer; a non-zero Interval yields a repeating ticker starting
// at Deadline (or immediately, if Deadline is zero).
func (t *netTimer) Schedule(opts TimerOptions, callback func(TimerEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	if t.closed {
		return
	}

	stop := make(chan struct{})
	t.stop = stop

	delay := time.Until(opts.Deadline)
	if opts.Deadline.IsZero() {
		delay = 0
	}
	if delay < 0 {
		delay = 0
	}

	if opts.Interval <= 0 {
		t.timer = time.AfterFunc(delay, func() {
			if callback != nil {
				callback(TimerEvent{Type: TimerDeadline})
			}
		})
		return
	}

	go func() {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-stop:
				return
			}
		}
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()

		t.mu.Lock()
		t.ticker = ticker
		t.mu.Unlock()

		for {
			select {
			case <-ticker.C:
				if callback != nil {
					callback(TimerEvent{Type: TimerDeadline})
				}
			case <-stop:
				return
			}
		}
	}()
}

// stopLocked cancels any pending timer/ticker. Caller must hold t.mu.
func (t *netTimer) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// Close cancels any pending firing and releases the timer.
func (t *netTimer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.closed = true
}
