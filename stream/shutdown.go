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
	"io"
	"time"

	"github.com/nabbar/ntstream/flowctl"
	"github.com/nabbar/ntstream/recvqueue"
	"github.com/nabbar/ntstream/sessionmgr"
	"github.com/nabbar/ntstream/shutdownstate"
)

// orAnnounce combines two shutdownstate.Announce values from separate
// Try* calls into the net set of flags that actually flipped. A call that
// returned false (nothing to do) reports the zero Announce, so plain OR
// across every field is safe.
func orAnnounce(a, b shutdownstate.Announce) shutdownstate.Announce {
	return shutdownstate.Announce{
		SendInitiated:    a.SendInitiated || b.SendInitiated,
		SendCompleted:    a.SendCompleted || b.SendCompleted,
		ReceiveInitiated: a.ReceiveInitiated || b.ReceiveInitiated,
		ReceiveCompleted: a.ReceiveCompleted || b.ReceiveCompleted,
		FullyShutdown:    a.FullyShutdown || b.FullyShutdown,
	}
}

// Shutdown begins closing direction (SEND, RECEIVE, or BOTH) of the socket.
// ModeOrderly drains the send queue (pushing a shutdown marker behind any
// queued data) before detaching; ModeImmediate cancels outstanding queue
// entries and detaches right away. Shutdown is idempotent per direction:
// a direction already shut down is silently skipped, and the whole call is
// a no-op if neither requested direction had anything left to do. If
// connect is still in progress and direction includes SEND, Shutdown
// cancels the dial with e_CANCELLED instead.
func (s *StreamSocket) Shutdown(direction flowctl.Direction, mode ShutdownMode) error {
	s.mu.Lock()

	if s.connectInProgress {
		if direction == flowctl.DirectionSend || direction == flowctl.DirectionBoth {
			s.mu.Unlock()
			s.failConnect(newError(CodeCancelled))
			return nil
		}
		s.mu.Unlock()
		return invalid()
	}

	if s.openState != StateConnected {
		s.mu.Unlock()
		return invalid()
	}

	keepHalfOpen := s.opts.effectiveKeepHalfOpen()

	var ann shutdownstate.Announce
	any := false

	if direction == flowctl.DirectionSend || direction == flowctl.DirectionBoth {
		if ok, a := s.shut.TryShutdownSend(keepHalfOpen); ok {
			any = true
			ann = orAnnounce(ann, a)
		}
	}
	if direction == flowctl.DirectionReceive || direction == flowctl.DirectionBoth {
		if ok, a := s.shut.TryShutdownReceive(keepHalfOpen, shutdownstate.OriginLocal); ok {
			any = true
			ann = orAnnounce(ann, a)
		}
	}

	if !any {
		s.mu.Unlock()
		return nil
	}

	if ann.SendInitiated {
		s.flow.Apply(flowctl.DirectionSend, true)
		if mode == ModeImmediate {
			s.drainSendQueueLocked()
		} else {
			s.shutdownMarkerID = s.sendQ.PushShutdown()
			s.hasShutdownMarker = true
		}
	}

	var expired []recvqueue.PendingRead
	if ann.ReceiveInitiated {
		s.flow.Apply(flowctl.DirectionReceive, true)
		expired = s.recvQ.ExpirePendingReads(time.Now())
	}

	full := ann.FullyShutdown
	s.mu.Unlock()

	s.emitShutdown(ShutdownInitiated)
	if ann.SendInitiated {
		s.emitShutdown(ShutdownSend)
	}
	if ann.ReceiveInitiated {
		s.emitShutdown(ShutdownReceive)
	}

	for _, pr := range expired {
		if pr.Callback != nil {
			pr.Callback(nil, newError(CodeCancelled))
		}
	}

	if ann.SendInitiated {
		s.pumpSend()
	}

	if full {
		s.completeShutdown(shutdownstate.OriginLocal)
	}

	return nil
}

// drainSendQueueLocked cancels every entry currently queued, invoking
// their callbacks with a cancellation error. Callers must hold mu.
func (s *StreamSocket) drainSendQueueLocked() {
	for {
		head := s.sendQ.Head()
		if head == nil {
			return
		}
		if _, ok := s.sendQ.Cancel(head.ID); ok && head.Callback != nil {
			head.Callback(newError(CodeCancelled))
		}
	}
}

func (s *StreamSocket) emitShutdown(sub ShutdownSubEvent) {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		l.OnShutdown(ShutdownEvent{Sub: sub, At: time.Now()})
	}
}

// completeShutdown finalizes the shutdown sequence begun by Shutdown or by
// a remote-initiated half-close, detaching the socket from its proactor.
func (s *StreamSocket) completeShutdown(origin shutdownstate.Origin) {
	s.mu.Lock()
	if s.openState == StateClosed {
		s.mu.Unlock()
		return
	}
	s.openState = StateClosed
	s.detachState = DetachInitiated
	pending := s.recvQ.ExpirePendingReads(time.Now())
	cb := s.closeCallback
	s.mu.Unlock()

	for _, pr := range pending {
		if pr.Callback != nil {
			pr.Callback(nil, io.EOF)
		}
	}

	s.emitShutdown(ShutdownComplete)

	s.proactor.ReleaseHandleReservation()
	_ = s.proactor.DetachSocket(s)

	if cb != nil {
		cb()
	}
}

// ProcessSocketDetached implements proactor.Socket. It is the terminal
// callback of the shutdown/close sequence, arriving asynchronously from
// the proactor once the underlying transport is fully released.
func (s *StreamSocket) ProcessSocketDetached() {
	s.mu.Lock()
	s.detachState = DetachIdle
	s.mu.Unlock()

	s.emitShutdown(Closed)
}

// onRemoteEOF is invoked when the peer half-closes its sending side. It
// cascades into a full shutdown unless KeepHalfOpen is set and the local
// side has not itself requested a shutdown.
func (s *StreamSocket) onRemoteEOF() {
	s.mu.Lock()
	keepHalfOpen := s.opts.effectiveKeepHalfOpen()
	_, ann := s.shut.TryShutdownReceive(keepHalfOpen, shutdownstate.OriginRemote)
	if ann.ReceiveInitiated {
		s.flow.Apply(flowctl.DirectionReceive, true)
	}
	if ann.SendInitiated {
		s.flow.Apply(flowctl.DirectionSend, true)
	}
	full := ann.FullyShutdown
	s.mu.Unlock()

	s.emitShutdown(ShutdownReceive)

	if full {
		s.completeShutdown(shutdownstate.OriginRemote)
	}
}

// RegisterSessionListener installs the listener that receives queue
// watermark, shutdown, downgrade, and transport-error announcements.
func (s *StreamSocket) RegisterSessionListener(l SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// DeregisterSessionListener removes a previously registered listener.
func (s *StreamSocket) DeregisterSessionListener() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = nil
}

// RegisterResolver installs a name resolver for future use; see Resolver's
// doc comment for this module's current scope.
func (s *StreamSocket) RegisterResolver(r Resolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver = r
}

// DeregisterResolver removes a previously registered resolver.
func (s *StreamSocket) DeregisterResolver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver = nil
}

// RegisterManager installs the weak session-manager back-reference a
// server-role Upgrade consults for SNI dispatch: once set, the session's
// tls.Config.GetConfigForClient looks up the requested server name in m,
// falling back to m's default context on a miss.
func (s *StreamSocket) RegisterManager(m *sessionmgr.Manager) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager = m
}

// DeregisterManager removes a previously registered session manager.
func (s *StreamSocket) DeregisterManager() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager = nil
}

// OnClose registers a callback invoked once the socket finishes detaching
// from its proactor.
func (s *StreamSocket) OnClose(cb func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCallback = cb
}

// Close tears the socket down immediately, regardless of how much of the
// connect/upgrade/shutdown sequence has run. It is the abrupt counterpart
// to the orderly Shutdown(ModeOrderly) path.
func (s *StreamSocket) Close() error {
	s.mu.Lock()
	state := s.openState
	connecting := s.connectInProgress
	s.mu.Unlock()

	switch {
	case state == StateClosed:
		return nil
	case state == StateConnected:
		return s.Shutdown(flowctl.DirectionBoth, ModeImmediate)
	case connecting:
		s.failConnect(newError(CodeCancelled))
		return nil
	default:
		s.completeShutdown(shutdownstate.OriginLocal)
		return nil
	}
}
