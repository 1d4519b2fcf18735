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

// Package shutdownstate tracks the four directional sub-phases of an
// orderly stream shutdown: a send half that can be initiated and later
// completed (once the send queue has drained and a close-notify is on the
// wire), and a receive half that mirrors it from the peer's point of view.
package shutdownstate

import "sync"

// Origin identifies which side requested a receive-direction shutdown.
type Origin uint8

const (
	// OriginLocal means the application called TryShutdownReceive itself.
	OriginLocal Origin = iota
	// OriginRemote means a close-notify (or EOF) arrived from the peer.
	OriginRemote
)

// Announce reports which sub-flags a Try* call actually flipped, so the
// caller can decide which completion callbacks to fire.
type Announce struct {
	SendInitiated    bool
	SendCompleted    bool
	ReceiveInitiated bool
	ReceiveCompleted bool
	FullyShutdown    bool
}

// State is the directional shutdown state of one stream socket. The zero
// value is a stream with neither half shut down.
type State struct {
	mu sync.Mutex

	sendInitiated bool
	sendCompleted bool
	recvInitiated bool
	recvCompleted bool
}

// New returns a State with neither direction shut down.
func New() *State {
	return &State{}
}

// TryShutdownSend initiates (and, in this simplified model, immediately
// completes) the send half. When keepHalfOpen is false and the receive
// half has not been initiated yet, it is cascaded closed at the same time,
// matching a non-half-open socket's shutdown(SHUT_RDWR) semantics. It
// returns false without changing anything if the send half was already
// initiated.
func (s *State) TryShutdownSend(keepHalfOpen bool) (bool, Announce) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendInitiated {
		return false, Announce{}
	}

	var ann Announce
	s.sendInitiated = true
	s.sendCompleted = true
	ann.SendInitiated = true
	ann.SendCompleted = true

	if !keepHalfOpen && !s.recvInitiated {
		s.recvInitiated = true
		s.recvCompleted = true
		ann.ReceiveInitiated = true
		ann.ReceiveCompleted = true
	}

	ann.FullyShutdown = s.sendCompleted && s.recvCompleted
	return true, ann
}

// TryShutdownReceive initiates (and immediately completes) the receive
// half. origin records whether the caller or the peer triggered it, for
// logging; it does not change the resulting state. When keepHalfOpen is
// false and the send half has not been initiated yet, it is cascaded
// closed too. It returns false without changing anything if the receive
// half was already initiated.
func (s *State) TryShutdownReceive(keepHalfOpen bool, origin Origin) (bool, Announce) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = origin

	if s.recvInitiated {
		return false, Announce{}
	}

	var ann Announce
	s.recvInitiated = true
	s.recvCompleted = true
	ann.ReceiveInitiated = true
	ann.ReceiveCompleted = true

	if !keepHalfOpen && !s.sendInitiated {
		s.sendInitiated = true
		s.sendCompleted = true
		ann.SendInitiated = true
		ann.SendCompleted = true
	}

	ann.FullyShutdown = s.sendCompleted && s.recvCompleted
	return true, ann
}

// SendInitiated reports whether the send half has begun shutting down.
func (s *State) SendInitiated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendInitiated
}

// SendCompleted reports whether the send half has finished shutting down.
func (s *State) SendCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendCompleted
}

// ReceiveInitiated reports whether the receive half has begun shutting down.
func (s *State) ReceiveInitiated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recvInitiated
}

// ReceiveCompleted reports whether the receive half has finished shutting down.
func (s *State) ReceiveCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recvCompleted
}

// IsFullyShutdown reports whether both halves have completed.
func (s *State) IsFullyShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendCompleted && s.recvCompleted
}
