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

// Package proactor declares the collaborator interfaces a stream socket
// drives its non-blocking I/O through, plus one concrete default
// implementation (netProactor) built on goroutines and net.Conn.
package proactor

import (
	"time"
)

// Endpoint is a resolved or literal network address a socket connects to,
// binds on, or reports as its local/remote address.
type Endpoint struct {
	Network string
	Address string
}

func (e Endpoint) String() string {
	return e.Network + "://" + e.Address
}

// IsZero reports whether e carries no address.
func (e Endpoint) IsZero() bool {
	return e.Address == ""
}

// TimerEventType distinguishes why a Timer's callback fired.
type TimerEventType uint8

const (
	TimerDeadline TimerEventType = iota
	TimerCanceled
	TimerClosed
)

// TimerEvent is delivered to a Timer's callback on every firing.
type TimerEvent struct {
	Type TimerEventType
}

// TimerOptions configures a Timer's schedule. A zero Interval means a
// one-shot timer.
type TimerOptions struct {
	Deadline time.Time
	Interval time.Duration
}

// Timer is a cancelable, optionally repeating deadline.
type Timer interface {
	// Schedule arms (or re-arms) the timer with opts, invoking callback
	// on every firing until the timer is closed or canceled.
	Schedule(opts TimerOptions, callback func(TimerEvent))
	// Close cancels any pending firing and releases the timer. It does
	// not deliver a TimerClosed event to the callback.
	Close()
}

// Strand serializes execution of functions submitted to it, one at a
// time, in submission order, matching the proactor's native thread or a
// dedicated goroutine depending on the implementation.
type Strand interface {
	// Execute queues fn to run asynchronously on the strand. The
	// netProactor strand queues fn even when the caller is already running
	// on it; fn is never run inline.
	Execute(fn func())
	// Running reports whether the calling goroutine is currently
	// executing on this strand.
	Running() bool
}

// BlobBufferFactory hands out byte slices for a proactor to fill on a
// receive, or to drain from on a send, and reclaims them afterward.
type BlobBufferFactory interface {
	Acquire(size int) []byte
	Release(buf []byte)
}

// DataPool is the byte-slice allocator shared by the blob buffer
// factories and the send/receive queues of every socket a Proactor
// attaches.
type DataPool interface {
	Get(size int) []byte
	Put(buf []byte)
}

// SendOptions customizes one Send call.
type SendOptions struct {
	// MaxBytes caps how much of data the proactor attempts to write in
	// this one operation; zero means no cap beyond len(data).
	MaxBytes int
}

// ReceiveOptions customizes one Receive call.
type ReceiveOptions struct {
	MinSize int
	MaxSize int
}

// Socket is the callback contract a Proactor invokes on the object it has
// attached — the collaborator interface the stream socket core exposes,
// as described in SPEC_FULL.md §6.
type Socket interface {
	ProcessSocketConnected(local, remote Endpoint)
	ProcessSocketError(err error)
	ProcessSendComplete(n int)
	ProcessReceiveComplete(attempted, received int, err error)
	ProcessSocketDetached()
}

// Proactor drives non-blocking I/O for every Socket attached to it.
type Proactor interface {
	AttachSocket(s Socket) error
	DetachSocket(s Socket) error

	Connect(s Socket, endpoint Endpoint) error
	Send(s Socket, data []byte, opts SendOptions) error
	Receive(s Socket, blob []byte, opts ReceiveOptions) error
	Cancel(s Socket)

	// SendBufferSize re-reads s's attached connection's kernel send
	// buffer size, where the platform supports it. It returns (0, nil)
	// on platforms without support, ErrNotAttached when s has no attached
	// connection or (on Linux) when the connection exposes no file
	// descriptor, and passes through errors from reading SO_SNDBUF.
	SendBufferSize(s Socket) (int, error)

	AcquireHandleReservation() bool
	ReleaseHandleReservation()

	CreateStrand() Strand
	CreateTimer(opts TimerOptions) Timer

	MaxThreads() int
	ThreadHandle() uintptr
	ThreadIndex() int

	IncomingBlobBufferFactory() BlobBufferFactory
	OutgoingBlobBufferFactory() BlobBufferFactory
	DataPool() DataPool
}
