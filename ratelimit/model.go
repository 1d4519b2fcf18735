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

// Package ratelimit throttles how many bytes per second a stream socket
// may push onto its transport, as a thin wrapper over golang.org/x/time/rate
// sized in bytes rather than the package's usual "events" unit.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles byte throughput using a token bucket.
type Limiter struct {
	r *rate.Limiter
}

// Unlimited returns a Limiter that never blocks or rejects.
func Unlimited() *Limiter {
	return &Limiter{r: rate.NewLimiter(rate.Inf, 0)}
}

// New returns a Limiter allowing bytesPerSecond sustained throughput with
// bursts up to burst bytes. A bytesPerSecond of zero or less returns an
// Unlimited Limiter.
func New(bytesPerSecond float64, burst int) *Limiter {
	if bytesPerSecond <= 0 {
		return Unlimited()
	}
	return &Limiter{r: rate.NewLimiter(rate.Limit(bytesPerSecond), burst)}
}

// Allow reports whether n bytes may be sent right now, consuming the
// budget if so. It never blocks.
func (l *Limiter) Allow(n int) bool {
	return l.r.AllowN(time.Now(), n)
}

// Wait blocks until n bytes may be sent, or ctx is done.
func (l *Limiter) Wait(ctx context.Context, n int) error {
	return l.r.WaitN(ctx, n)
}

// SetLimit changes the sustained bytes-per-second rate.
func (l *Limiter) SetLimit(bytesPerSecond float64) {
	l.r.SetLimit(rate.Limit(bytesPerSecond))
}

// SetBurst changes the maximum burst size in bytes.
func (l *Limiter) SetBurst(burst int) {
	l.r.SetBurst(burst)
}
