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
	"errors"
	"io"
)

// cipherWriterLoop feeds bytes pushed via PushIncomingCipherText into the
// engine's transport side. A blocked Write here means the engine has not
// yet read the previous chunk; that is expected backpressure, not an error.
func (s *Session) cipherWriterLoop() {
	for {
		select {
		case <-s.closed:
			return
		case b, ok := <-s.inCipherCh:
			if !ok {
				return
			}
			if _, err := s.outer.Write(b); err != nil {
				s.fail(err)
				return
			}
		}
	}
}

// cipherReaderLoop drains whatever ciphertext the engine wants to send and
// makes it available through PopOutgoingCipherText.
func (s *Session) cipherReaderLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.outer.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.outgoingCipherText = append(s.outgoingCipherText, buf[:n]...)
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// plaintextWriterLoop writes application data submitted through
// PushOutgoingPlainText into the TLS engine.
func (s *Session) plaintextWriterLoop() {
	for {
		select {
		case <-s.closed:
			return
		case b, ok := <-s.outPlainCh:
			if !ok {
				return
			}
			if _, err := s.conn.Write(b); err != nil {
				s.fail(err)
				return
			}
		}
	}
}

// plaintextReaderLoop drains decrypted application data into the buffer
// PopIncomingPlainText exposes, until the peer's close_notify (io.EOF) or a
// transport failure ends the session.
func (s *Session) plaintextReaderLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.incomingPlainText = append(s.incomingPlainText, buf[:n]...)
			s.mu.Unlock()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.mu.Lock()
				s.shutdownReceived = true
				s.mu.Unlock()
			} else {
				s.fail(err)
			}
			return
		}
	}
}

// handshakeLoop drives the handshake to completion, materializes both
// certificates, and flushes any plaintext buffered while the handshake was
// in flight.
func (s *Session) handshakeLoop() {
	err := s.conn.HandshakeContext(s.opts.context())

	s.mu.Lock()
	s.handshakeDone = true
	s.handshakeErr = err

	var source, remote *x509.Certificate
	if err == nil {
		state := s.conn.ConnectionState()
		if len(state.PeerCertificates) > 0 {
			s.remoteCert = state.PeerCertificates[0]
		}
		source, remote = s.sourceCert, s.remoteCert

		pending := s.outgoingLeftovers
		s.outgoingLeftovers = nil
		s.mu.Unlock()

		for _, chunk := range pending {
			select {
			case s.outPlainCh <- chunk:
			case <-s.closed:
				return
			}
		}
	} else {
		s.mu.Unlock()
		s.fail(err)
	}

	if err == nil && s.opts.OnHandshakeComplete != nil {
		s.opts.OnHandshakeComplete(source, remote)
	}
}

// fail records the first transport-level error observed by any loop.
func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessionErr == nil {
		s.sessionErr = err
	}
}
