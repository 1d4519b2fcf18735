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
	liberr "github.com/nabbar/ntstream/errors"
	"github.com/nabbar/ntstream/proactor"
)

// Connect dials remote asynchronously. callback, if non-nil, receives the
// terminal ConnectEvent whether the attempt succeeds or every retry is
// exhausted. Connect is only valid from StateDefault.
func (s *StreamSocket) Connect(remote proactor.Endpoint, opts ConnectOptions, callback func(ConnectEvent)) error {
	s.mu.Lock()

	if s.openState != StateDefault {
		s.mu.Unlock()
		return invalid()
	}

	if !s.proactor.AcquireHandleReservation() {
		s.mu.Unlock()
		return newError(CodeLimit)
	}

	s.openState = StateWaiting
	s.connectInProgress = true
	s.connectAttempts = 0
	s.connectRetriesLeft = opts.RetryCount
	s.connectEndpoint = remote
	s.connectCallback = callback

	if err := s.proactor.AttachSocket(s); err != nil {
		s.openState = StateDefault
		s.connectInProgress = false
		s.proactor.ReleaseHandleReservation()
		s.mu.Unlock()
		return err
	}

	if opts.HasDeadline {
		s.deadlineTimer = s.proactor.CreateTimer(proactor.TimerOptions{Deadline: opts.Deadline})
		s.deadlineTimer.Schedule(proactor.TimerOptions{Deadline: opts.Deadline}, s.onConnectDeadline)
	}

	s.openState = StateConnecting
	s.mu.Unlock()

	return s.dial(remote)
}

func (s *StreamSocket) dial(remote proactor.Endpoint) error {
	s.mu.Lock()
	s.connectAttempts++
	s.mu.Unlock()

	return s.proactor.Connect(s, remote)
}

func (s *StreamSocket) onConnectDeadline(ev proactor.TimerEvent) {
	if ev.Type != proactor.TimerDeadline {
		return
	}

	s.mu.Lock()
	if !s.connectInProgress {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.failConnect(newError(CodeConnectionTimeout))
}

// ProcessSocketConnected implements proactor.Socket. It is invoked by the
// proactor once the dial succeeds.
func (s *StreamSocket) ProcessSocketConnected(local, remote proactor.Endpoint) {
	s.mu.Lock()

	if !s.connectInProgress {
		s.mu.Unlock()
		return
	}

	s.connectInProgress = false
	s.openState = StateConnected
	s.source = local
	s.remote = remote

	if s.deadlineTimer != nil {
		s.deadlineTimer.Close()
		s.deadlineTimer = nil
	}

	cb := s.connectCallback
	s.connectCallback = nil
	s.mu.Unlock()

	if cb != nil {
		cb(ConnectEvent{Local: local, Remote: remote})
	}
}

// ProcessSocketError implements proactor.Socket. During a connect attempt
// it drives the retry loop; afterwards it is routed to the established
// connection's failure handling.
func (s *StreamSocket) ProcessSocketError(err error) {
	s.mu.Lock()
	inConnect := s.connectInProgress
	s.mu.Unlock()

	if inConnect {
		s.retryOrFailConnect(err)
		return
	}

	s.processTransportError(err)
}

func (s *StreamSocket) retryOrFailConnect(cause error) {
	s.mu.Lock()
	if !s.connectInProgress {
		s.mu.Unlock()
		return
	}

	if s.connectRetriesLeft <= 0 {
		s.mu.Unlock()
		s.failConnect(newError(CodeConnectionRefused, cause))
		return
	}

	s.connectRetriesLeft--
	remote := s.connectEndpoint
	s.mu.Unlock()

	_ = s.dial(remote)
}

func (s *StreamSocket) failConnect(cause liberr.Error) {
	s.mu.Lock()
	if !s.connectInProgress {
		s.mu.Unlock()
		return
	}

	s.connectInProgress = false
	s.openState = StateClosed

	if s.deadlineTimer != nil {
		s.deadlineTimer.Close()
		s.deadlineTimer = nil
	}

	cb := s.connectCallback
	s.connectCallback = nil
	s.mu.Unlock()

	s.proactor.ReleaseHandleReservation()
	_ = s.proactor.DetachSocket(s)

	if cb != nil {
		cb(ConnectEvent{Err: cause})
	}
}

// AdoptConnected transitions a freshly accepted, already-connected handle
// directly into StateConnected. The caller (typically a listener's accept
// loop) must have already attached the native connection to the proactor.
func (s *StreamSocket) AdoptConnected(local, remote proactor.Endpoint) error {
	s.mu.Lock()
	if s.openState != StateDefault {
		s.mu.Unlock()
		return invalid()
	}

	s.openState = StateConnected
	s.source = local
	s.remote = remote
	s.mu.Unlock()

	return nil
}
