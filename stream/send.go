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
	"github.com/nabbar/ntstream/flowctl"
	"github.com/nabbar/ntstream/proactor"
	"github.com/nabbar/ntstream/sendqueue"
	"github.com/nabbar/ntstream/shutdownstate"
)

// effectiveHighWatermark returns opts.HighWatermark when the caller
// supplied one, otherwise the socket-wide configured watermark. Zero
// (from either source) means no high-watermark gate applies.
func (s *StreamSocket) effectiveHighWatermark(opts SendOptions) int {
	if opts.HighWatermark > 0 {
		return opts.HighWatermark
	}
	return s.opts.WriteQueueHighWatermark
}

// Send enqueues data for transmission. The callback, if non-nil, fires once
// the entry leaves the send queue. Send is only valid once the socket is
// connected and its send direction is open. If queuing data would push the
// send queue's byte size past the effective high watermark, Send refuses to
// enqueue it at all, announces a WriteQueueEvent breach (at most once per
// breach), and returns e_WOULD_BLOCK.
func (s *StreamSocket) Send(data []byte, opts SendOptions) error {
	s.mu.Lock()

	if s.openState != StateConnected || !s.flow.CanSend() {
		s.mu.Unlock()
		return invalid()
	}

	high := s.effectiveHighWatermark(opts)
	if high > 0 && s.sendQ.Bytes()+len(data) > high {
		breached := !s.highWatermarkBreached
		s.highWatermarkBreached = true
		s.mu.Unlock()

		if breached {
			s.announceWriteQueue(true)
		}
		return newError(CodeWouldBlock)
	}

	if s.session != nil {
		sess := s.session
		s.mu.Unlock()

		if err := sess.PushOutgoingPlainText(data); err != nil {
			return newError(CodeConnectionDead, err)
		}
		s.pumpTLSOutput()
		if opts.Callback != nil {
			opts.Callback(SendEvent{Token: opts.Token, HasToken: opts.HasToken})
		}
		return nil
	}

	s.sendQ.Push(data, sendqueue.PushOptions{
		Token:       opts.Token,
		HasToken:    opts.HasToken,
		Deadline:    opts.Deadline,
		HasDeadline: opts.HasDeadline,
		Callback:    s.wrapSendCallback(opts.Callback),
	})

	shouldKick := s.sendQ.Len() == 1
	s.mu.Unlock()

	if shouldKick {
		s.pumpSend()
	}
	return nil
}

func (s *StreamSocket) wrapSendCallback(cb func(SendEvent)) func(error) {
	if cb == nil {
		return nil
	}
	return func(err error) {
		ev := SendEvent{}
		if err != nil {
			ev.Err = newError(CodeCancelled, err)
		}
		cb(ev)
	}
}

// sendBufferRefreshInterval and sendBufferRefreshSizeThreshold match
// NTCP_STREAMSOCKET_SEND_BUFFER_REFRESH_INTERVAL/_SIZE_THRESHOLD from the
// source this module was distilled from: every N sends, once the head
// entry is large enough to matter, re-read the kernel send buffer size
// and size the next write window off it instead of leaving it to whatever
// the application configured at socket-creation time.
const (
	sendBufferRefreshInterval      = 100
	sendBufferRefreshSizeThreshold = 16 * 1024
)

// pumpSend starts writing the head of the send queue if nothing is
// currently in flight. It is called whenever a new entry may need a kick:
// right after Push and after each ProcessSendComplete.
func (s *StreamSocket) pumpSend() {
	s.mu.Lock()

	head := s.sendQ.Head()
	if head == nil {
		s.mu.Unlock()
		return
	}

	if len(head.Data) == 0 {
		s.mu.Unlock()
		s.completeSendEntry(0)
		return
	}

	var allowed int
	if s.writeLimiter != nil {
		allowed = len(head.Data)
		for allowed > 0 && !s.writeLimiter.Allow(allowed) {
			allowed--
		}
		if allowed <= 0 {
			allowed = len(head.Data)
		}
	} else {
		allowed = len(head.Data)
	}

	chunk := head.Data
	if allowed < len(chunk) {
		chunk = chunk[:allowed]
	}

	s.sendsSinceRefresh++
	refresh := s.sendsSinceRefresh >= sendBufferRefreshInterval && len(head.Data) >= sendBufferRefreshSizeThreshold
	if refresh {
		s.sendsSinceRefresh = 0
	}

	s.mu.Unlock()

	sendOpts := proactor.SendOptions{}
	if refresh {
		if size, err := s.proactor.SendBufferSize(s); err == nil && size > 0 {
			sendOpts.MaxBytes = 2 * size
		}
	}

	if err := s.proactor.Send(s, chunk, sendOpts); err != nil {
		s.processTransportError(err)
	}
}

// ProcessSendComplete implements proactor.Socket.
func (s *StreamSocket) ProcessSendComplete(n int) {
	s.completeSendEntry(n)
}

func (s *StreamSocket) completeSendEntry(n int) {
	s.mu.Lock()
	done, completed, crossedLow := s.sendQ.CompleteHead(n)
	s.totalBytesSent += int64(n)

	isMarker := false
	fullyShutdown := false
	if done && completed != nil && s.hasShutdownMarker && completed.ID == s.shutdownMarkerID {
		isMarker = true
		s.hasShutdownMarker = false
		fullyShutdown = s.shut.IsFullyShutdown()
	}
	recovered := false
	if crossedLow {
		recovered = s.highWatermarkBreached
		s.highWatermarkBreached = false
	}
	s.mu.Unlock()

	if crossedLow && recovered {
		s.announceWriteQueue(false)
	}

	if done && completed != nil && completed.Callback != nil {
		completed.Callback(nil)
	}

	if isMarker {
		if fullyShutdown {
			s.completeShutdown(shutdownstate.OriginLocal)
		}
		return
	}

	if done {
		s.pumpSend()
	}
}

// announceWriteQueue reports the send queue's current byte size to the
// session listener. breach is true when this call announces a fresh
// high-watermark breach, false when it announces recovery back to the
// low watermark.
func (s *StreamSocket) announceWriteQueue(breach bool) {
	s.mu.Lock()
	l := s.listener
	ev := WriteQueueEvent{
		Size:          s.sendQ.Bytes(),
		LowWatermark:  s.opts.WriteQueueLowWatermark,
		HighWatermark: s.opts.WriteQueueHighWatermark,
		Breach:        breach,
	}
	s.mu.Unlock()

	if l != nil {
		l.OnWriteQueue(ev)
	}
}

// ApplyFlowControl disables dir, optionally latching it so Relax cannot
// re-enable it without an explicit unlock.
func (s *StreamSocket) ApplyFlowControl(dir flowctl.Direction, lock bool) {
	s.flow.Apply(dir, lock)
}

// RelaxFlowControl re-enables dir, kicking the send pump if the send
// direction was the one relaxed and entries are waiting.
func (s *StreamSocket) RelaxFlowControl(dir flowctl.Direction, unlock bool) {
	s.flow.Relax(dir, unlock)

	if dir == flowctl.DirectionSend || dir == flowctl.DirectionBoth {
		s.pumpSend()
	}
	if dir == flowctl.DirectionReceive || dir == flowctl.DirectionBoth {
		s.pumpReceive()
	}
}
