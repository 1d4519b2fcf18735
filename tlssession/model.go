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

// Package tlssession wraps crypto/tls into a push/pop buffer engine: one
// side is driven by ciphertext pushed in and popped out, the other by
// plaintext pushed in and popped out, with no blocking call on the public
// API. Internally each Session owns a crypto/tls.Conn running over one end
// of a net.Pipe, driven by a small set of dedicated goroutines, so a caller
// can feed and drain it from a single-threaded event loop (the stream
// socket's own strand) without ever touching net.Conn directly.
package tlssession

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"sync"

	"github.com/nabbar/ntstream/sessionctx"
)

// Session drives one TLS handshake and the ciphertext/plaintext traffic
// that follows it, over an in-memory pipe rather than a real socket. The
// stream socket layer is responsible for moving bytes between the pipe's
// outgoing-ciphertext/incoming-ciphertext sides and the real network
// connection.
type Session struct {
	role Role
	opts Options

	outer net.Conn
	conn  *tls.Conn

	inCipherCh chan []byte
	outPlainCh chan []byte

	closeOnce sync.Once
	closed    chan struct{}

	mu sync.Mutex

	outgoingCipherText []byte
	incomingPlainText  []byte

	incomingLeftovers []byte
	outgoingLeftovers [][]byte

	handshakeDone bool
	handshakeErr  error

	sourceCert *x509.Certificate
	remoteCert *x509.Certificate

	shutdownSent     bool
	shutdownReceived bool

	sessionErr error
}

// New builds a Session for role over a freshly configured TLS engine and
// starts its driving goroutines. The handshake begins immediately: for
// RoleClient it starts sending ClientHello as soon as the caller reads
// PopOutgoingCipherText; for RoleServer it blocks until the caller supplies
// bytes via PushIncomingCipherText.
func New(role Role, cfg sessionctx.Config, opts Options) (*Session, error) {
	if cfg.IsZero() {
		return nil, ErrInvalidConfig
	}

	s := &Session{
		role:       role,
		opts:       opts,
		inCipherCh: make(chan []byte, 16),
		outPlainCh: make(chan []byte, 16),
		closed:     make(chan struct{}),
	}

	var base *tls.Config
	if role == RoleClient {
		base = cfg.ClientConfig(opts.ServerName)
	} else {
		base = cfg.ServerConfig()
	}
	base.InsecureSkipVerify = true
	base.VerifyPeerCertificate = s.verifyPeerCertificate(base)
	if role == RoleServer && opts.GetConfigForClient != nil {
		base.GetConfigForClient = opts.GetConfigForClient
	}

	outer, inner := net.Pipe()
	s.outer = outer

	if role == RoleClient {
		s.conn = tls.Client(inner, base)
	} else {
		s.conn = tls.Server(inner, base)
	}

	if len(base.Certificates) > 0 && len(base.Certificates[0].Certificate) > 0 {
		if leaf, err := x509.ParseCertificate(base.Certificates[0].Certificate[0]); err == nil {
			s.sourceCert = leaf
		}
	}

	go s.cipherWriterLoop()
	go s.cipherReaderLoop()
	go s.plaintextWriterLoop()
	go s.plaintextReaderLoop()
	go s.handshakeLoop()

	return s, nil
}

// Close tears down the session's engine and driving goroutines. It is safe
// to call more than once and safe to call concurrently with any other
// Session method.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.conn.Close()
		_ = s.outer.Close()
	})
	return err
}
