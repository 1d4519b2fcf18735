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
	"context"
	"time"

	"github.com/nabbar/ntstream/sendqueue"
	"github.com/nabbar/ntstream/sessionctx"
	"github.com/nabbar/ntstream/tlssession"
)

// Upgrade starts a TLS handshake over the already-connected transport.
// Once handshake completes (or fails), callback receives the terminal
// UpgradeEvent. While a handshake or an established session is active,
// Send and the data side of Receive operate on plaintext; the session
// itself owns the ciphertext that actually crosses the wire.
func (s *StreamSocket) Upgrade(role tlssession.Role, cfg sessionctx.Config, opts UpgradeOptions, callback func(UpgradeEvent)) error {
	s.mu.Lock()

	if s.openState != StateConnected || s.session != nil {
		s.mu.Unlock()
		return invalid()
	}

	manager := s.manager

	sessOpts := tlssession.Options{
		ServerName:            opts.ServerName,
		Validation:            opts.Validation,
		KeepIncomingLeftovers: opts.KeepIncomingLeftovers,
		KeepOutgoingLeftovers: opts.KeepOutgoingLeftovers,
	}
	if role == tlssession.RoleServer && manager != nil {
		sessOpts.GetConfigForClient = manager.GetConfigForClient
	}
	if opts.HasDeadline {
		// The handshake goroutines in tlssession run for the session's
		// lifetime, not just this call, so the cancel func is deliberately
		// not deferred here; the context still self-cancels at Deadline.
		ctx, _ := context.WithDeadline(context.Background(), opts.Deadline)
		sessOpts.Context = ctx
	}

	sess, err := tlssession.New(role, cfg, sessOpts)
	if err != nil {
		s.mu.Unlock()
		return newError(CodeNotAuthorized, err)
	}

	s.session = sess
	s.upgradeInProgress = true
	s.upgradeCallback = callback
	s.mu.Unlock()

	s.pumpTLSOutput()
	s.pollHandshake()

	return nil
}

// pollHandshake checks the session's handshake state once; it is driven
// opportunistically from the receive path each time new ciphertext is fed
// to the session, rather than by a dedicated goroutine.
func (s *StreamSocket) pollHandshake() {
	s.mu.Lock()
	sess := s.session
	inProgress := s.upgradeInProgress
	s.mu.Unlock()

	if sess == nil || !inProgress {
		return
	}

	done, err := sess.IsHandshakeComplete()
	if !done && err == nil {
		return
	}

	s.mu.Lock()
	s.upgradeInProgress = false
	cb := s.upgradeCallback
	s.upgradeCallback = nil
	if err == nil {
		s.sourceCert = sess.SourceCertificate()
		s.remoteCert = sess.RemoteCertificate()
	}
	s.mu.Unlock()

	if cb == nil {
		return
	}

	if err != nil {
		cb(UpgradeEvent{Err: newError(CodeNotAuthorized, err)})
		return
	}
	cb(UpgradeEvent{SourceCertificate: s.sourceCert, RemoteCertificate: s.remoteCert})
}

// pumpTLSOutput drains every pending outgoing ciphertext chunk the session
// has produced (handshake flight or encrypted application data) onto the
// ordinary send queue, then kicks the send pump.
func (s *StreamSocket) pumpTLSOutput() {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()

	if sess == nil {
		return
	}

	pushed := false
	for {
		chunk := sess.PopOutgoingCipherText()
		if chunk == nil {
			break
		}
		s.mu.Lock()
		s.sendQ.Push(chunk, sendqueue.PushOptions{})
		s.mu.Unlock()
		pushed = true
	}

	if pushed {
		s.pumpSend()
	}
}

// feedTLSIncoming pushes newly received ciphertext into the active
// session and drains whatever plaintext and handshake progress that
// produces. It replaces the plain recvQ.Append path while a session is
// active.
func (s *StreamSocket) feedTLSIncoming(data []byte) {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()

	if sess == nil {
		return
	}

	if err := sess.PushIncomingCipherText(data); err != nil {
		s.processTransportError(err)
		return
	}

	s.pollHandshake()
	s.pumpTLSOutput()

	for {
		plain := sess.PopIncomingPlainText()
		if plain == nil {
			break
		}
		s.mu.Lock()
		s.recvQ.Append(plain)
		s.mu.Unlock()
	}

	if sess.ShutdownReceived() {
		s.onDowngrade(sess.IsShutdownFinished())
	}
}

// Downgrade initiates a close-notify exchange on the active session,
// returning the underlying transport to plaintext once it completes.
func (s *StreamSocket) Downgrade() error {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()

	if sess == nil {
		return invalid()
	}

	if err := sess.Shutdown(); err != nil {
		return newError(CodeConnectionDead, err)
	}

	s.pumpTLSOutput()
	s.onDowngrade(sess.IsShutdownFinished())
	return nil
}

func (s *StreamSocket) onDowngrade(complete bool) {
	s.mu.Lock()
	l := s.listener
	if complete {
		s.session = nil
	}
	s.mu.Unlock()

	if l != nil {
		l.OnDowngrade(DowngradeEvent{Complete: complete, At: time.Now()})
	}
}
