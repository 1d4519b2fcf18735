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

	"github.com/nabbar/ntstream/network/protocol"
	"github.com/nabbar/ntstream/proactor"
	"github.com/nabbar/ntstream/ratelimit"
)

// State reports the socket's current connection-lifecycle state.
func (s *StreamSocket) State() OpenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openState
}

// Detaching reports whether the socket has released its proactor handle
// reservation and is waiting on the asynchronous ProcessSocketDetached
// callback to confirm the underlying transport is fully torn down.
func (s *StreamSocket) Detaching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detachState == DetachInitiated
}

// Transport reports the network protocol this socket was configured for.
func (s *StreamSocket) Transport() protocol.NetworkProtocol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport
}

// SourceEndpoint reports the local address, valid once StateConnected.
func (s *StreamSocket) SourceEndpoint() proactor.Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// RemoteEndpoint reports the peer address, valid once StateConnected.
func (s *StreamSocket) RemoteEndpoint() proactor.Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote
}

// SourceCertificate reports this side's leaf certificate, once a TLS
// upgrade has completed. Returns nil otherwise.
func (s *StreamSocket) SourceCertificate() *x509.Certificate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceCert
}

// RemoteCertificate reports the peer's leaf certificate, once a TLS
// upgrade has completed. Returns nil otherwise.
func (s *StreamSocket) RemoteCertificate() *x509.Certificate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteCert
}

// WriteQueueSize reports the number of bytes currently queued for send.
func (s *StreamSocket) WriteQueueSize() int {
	return s.sendQ.Bytes()
}

// ReadQueueSize reports the number of bytes currently buffered for
// receive.
func (s *StreamSocket) ReadQueueSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recvQ.Len()
}

// TotalBytesSent reports the cumulative number of bytes handed off to the
// transport since the socket connected.
func (s *StreamSocket) TotalBytesSent() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalBytesSent
}

// TotalBytesReceived reports the cumulative number of bytes read from the
// transport since the socket connected.
func (s *StreamSocket) TotalBytesReceived() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalBytesReceived
}

// CurrentTime reports the current wall-clock time. It exists so callers
// driving deadlines off this socket use one consistent clock source.
func (s *StreamSocket) CurrentTime() time.Time {
	return time.Now()
}

// SetWriteRateLimiter installs (or clears, with nil) the rate limiter
// applied to outgoing bytes.
func (s *StreamSocket) SetWriteRateLimiter(l *ratelimit.Limiter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLimiter = l
}

// SetReadRateLimiter installs (or clears, with nil) the rate limiter
// applied to incoming bytes. Currently advisory: the receive path does not
// yet throttle against it (see DESIGN.md).
func (s *StreamSocket) SetReadRateLimiter(l *ratelimit.Limiter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readLimiter = l
}

// Execute runs fn through the socket's proactor-provided strand if one has
// been created for it by the caller, otherwise it runs fn inline.
func (s *StreamSocket) Execute(strand proactor.Strand, fn func()) {
	if strand != nil {
		strand.Execute(fn)
		return
	}
	fn()
}
