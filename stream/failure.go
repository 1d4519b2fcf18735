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
	"net"
	"time"

	liberr "github.com/nabbar/ntstream/errors"
)

// processTransportError is the single funnel every unrecovered transport
// error reaches, whether raised by a send, a receive, or the proactor
// itself. It classifies the error, tears the socket down, and announces
// it to the session listener, per the failure model: once a socket is
// connected, any transport error is terminal — there is no partial
// recovery, only an orderly report of what broke.
func (s *StreamSocket) processTransportError(err error) {
	s.mu.Lock()
	if s.openState == StateClosed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	classified := classifyTransportError(err)

	s.mu.Lock()
	pendingSend := s.drainSendQueueForFailureLocked(classified)
	pendingRecv := s.recvQ.ExpirePendingReads(time.Now())
	s.mu.Unlock()

	for _, cb := range pendingSend {
		cb(classified)
	}
	for _, pr := range pendingRecv {
		if pr.Callback != nil {
			pr.Callback(nil, classified)
		}
	}

	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l != nil {
		l.OnError(ErrorEvent{Type: ErrorTransport, Err: classified})
	}

	s.completeShutdownOnError()
}

// drainSendQueueForFailureLocked cancels every queued send entry,
// returning their callbacks ready to invoke with err. Callers must hold
// mu; it is released and re-acquired internally is not required since
// Cancel/Head/CompleteHead are independently synchronized by sendQ.
func (s *StreamSocket) drainSendQueueForFailureLocked(err error) []func(error) {
	var cbs []func(error)
	for {
		head := s.sendQ.Head()
		if head == nil {
			return cbs
		}
		if _, ok := s.sendQ.Cancel(head.ID); ok && head.Callback != nil {
			cb := head.Callback
			cbs = append(cbs, cb)
		}
	}
}

func (s *StreamSocket) completeShutdownOnError() {
	s.mu.Lock()
	if s.openState == StateClosed {
		s.mu.Unlock()
		return
	}
	s.openState = StateClosed
	s.detachState = DetachInitiated
	s.mu.Unlock()

	s.proactor.ReleaseHandleReservation()
	_ = s.proactor.DetachSocket(s)
}

// classifyTransportError maps a raw net/tlssession error onto this
// package's closed error enum, so callers never have to sniff an
// *net.OpError themselves.
func classifyTransportError(err error) liberr.Error {
	if err == nil {
		return newError(CodeConnectionDead)
	}

	if err == io.EOF {
		return newError(CodeEOF, err)
	}

	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return newError(CodeConnectionTimeout, err)
	}

	if opErr, ok := err.(*net.OpError); ok {
		if opErr.Op == "dial" {
			return newError(CodeConnectionRefused, err)
		}
	}

	return newError(CodeConnectionReset, err)
}
