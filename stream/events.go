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

package stream

import (
	"crypto/x509"
	"time"

	"github.com/google/uuid"
	liberr "github.com/nabbar/ntstream/errors"
	"github.com/nabbar/ntstream/proactor"
)

// ConnectEvent is delivered to a Connect callback once the attempt
// sequence terminates, successfully or not.
type ConnectEvent struct {
	Local, Remote proactor.Endpoint
	Err           liberr.Error
}

// SendEvent is delivered to a Send callback once its entry leaves the
// send queue, completed or cancelled.
type SendEvent struct {
	Token    uuid.UUID
	HasToken bool
	Err      liberr.Error
}

// ReceiveEvent is delivered to a Receive callback once its pending read
// is satisfied, cancelled, or the connection reaches EOF.
type ReceiveEvent struct {
	Data     []byte
	Token    uuid.UUID
	HasToken bool
	Err      liberr.Error
}

// UpgradeEvent is delivered once a TLS handshake started by Upgrade
// completes or fails.
type UpgradeEvent struct {
	SourceCertificate, RemoteCertificate *x509.Certificate
	Err                                  liberr.Error
}

// ShutdownSubEvent identifies one announcement within a shutdown
// sequence.
type ShutdownSubEvent uint8

const (
	ShutdownInitiated ShutdownSubEvent = iota
	ShutdownSend
	ShutdownReceive
	ShutdownComplete
	Closed
)

// ShutdownEvent is announced to the session listener at each step of an
// orderly shutdown.
type ShutdownEvent struct {
	Sub ShutdownSubEvent
	At  time.Time
}

// DowngradeEvent is announced to the session listener when a TLS
// close-notify exchange begins or finishes.
type DowngradeEvent struct {
	Complete bool
	At       time.Time
}

// ErrorEventType distinguishes the origin of an ErrorEvent.
type ErrorEventType uint8

const (
	ErrorTransport ErrorEventType = iota
)

// ErrorEvent is announced to the session listener for an unrecovered
// transport error, per SPEC_FULL.md §4.1's failure model.
type ErrorEvent struct {
	Type ErrorEventType
	Err  liberr.Error
}

// ReadQueueEvent/WriteQueueEvent report a watermark crossing, carrying
// the queue context the listener needs to throttle or resume its own
// producer/consumer.
type ReadQueueEvent struct {
	Size, LowWatermark, HighWatermark int
}

// WriteQueueEvent reports a write-queue watermark crossing. Breach is
// true the moment the queue's byte size first exceeds HighWatermark
// (a Send that would cross it is refused with e_WOULD_BLOCK rather
// than enqueued) and false when a later completion drains the queue
// back to or below LowWatermark.
type WriteQueueEvent struct {
	Size, LowWatermark, HighWatermark int
	Breach                            bool
}

// SessionListener receives the announcements a StreamSocket makes about
// its own lifecycle, distinct from the per-call callbacks passed to
// individual operations.
type SessionListener interface {
	OnReadQueue(ev ReadQueueEvent)
	OnWriteQueue(ev WriteQueueEvent)
	OnShutdown(ev ShutdownEvent)
	OnDowngrade(ev DowngradeEvent)
	OnError(ev ErrorEvent)
}
