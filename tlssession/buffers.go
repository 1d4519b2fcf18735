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

package tlssession

import (
	"crypto/x509"

	"github.com/nabbar/ntstream/recordframer"
)

// PushIncomingCipherText feeds raw bytes read off the network into the TLS
// engine. When KeepIncomingLeftovers is set, it first walks data for the
// boundary between TLS records and trailing non-TLS bytes; everything past
// that boundary is diverted to the incoming-leftovers buffer instead of
// being handed to the engine.
func (s *Session) PushIncomingCipherText(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	boundary := len(data)
	if s.opts.KeepIncomingLeftovers {
		boundary = recordframer.ScanBoundary(data)
	}

	if boundary < len(data) {
		s.mu.Lock()
		s.incomingLeftovers = append(s.incomingLeftovers, data[boundary:]...)
		s.mu.Unlock()
	}
	if boundary == 0 {
		return nil
	}

	chunk := append([]byte(nil), data[:boundary]...)
	select {
	case s.inCipherCh <- chunk:
		return nil
	case <-s.closed:
		return ErrClosed
	}
}

// PopOutgoingCipherText drains and returns whatever ciphertext the engine
// has produced (handshake flights and encrypted application data alike)
// since the last call.
func (s *Session) PopOutgoingCipherText() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.outgoingCipherText
	s.outgoingCipherText = nil
	return out
}

// HasOutgoingCipherText reports whether PopOutgoingCipherText would return
// a non-empty slice right now.
func (s *Session) HasOutgoingCipherText() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.outgoingCipherText) > 0
}

// PushOutgoingPlainText submits application data for encryption. While the
// handshake is still in progress and KeepOutgoingLeftovers is set, data is
// held in an internal buffer and automatically submitted to the engine once
// the handshake succeeds; it is discarded if the handshake fails.
func (s *Session) PushOutgoingPlainText(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	s.mu.Lock()
	if !s.handshakeDone && s.opts.KeepOutgoingLeftovers {
		s.outgoingLeftovers = append(s.outgoingLeftovers, append([]byte(nil), data...))
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	chunk := append([]byte(nil), data...)
	select {
	case s.outPlainCh <- chunk:
		return nil
	case <-s.closed:
		return ErrClosed
	}
}

// PopIncomingPlainText drains and returns decrypted application data
// received since the last call.
func (s *Session) PopIncomingPlainText() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.incomingPlainText
	s.incomingPlainText = nil
	return out
}

// PopIncomingLeftovers drains and returns bytes that PushIncomingCipherText
// classified as trailing non-TLS data.
func (s *Session) PopIncomingLeftovers() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.incomingLeftovers
	s.incomingLeftovers = nil
	return out
}

// IsHandshakeComplete reports whether the handshake has finished, and the
// error it finished with (nil on success).
func (s *Session) IsHandshakeComplete() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.handshakeDone, s.handshakeErr
}

// SourceCertificate returns the certificate this session presented to the
// peer, or nil if none was configured.
func (s *Session) SourceCertificate() *x509.Certificate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sourceCert
}

// RemoteCertificate returns the peer's leaf certificate, populated once the
// handshake completes successfully; nil before then or if the peer
// presented none.
func (s *Session) RemoteCertificate() *x509.Certificate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remoteCert
}

// Err returns the first transport-level failure observed by the engine's
// driving goroutines, distinct from a handshake failure.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessionErr
}
