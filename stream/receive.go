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
	"io"
	"time"

	"github.com/nabbar/ntstream/flowctl"
	"github.com/nabbar/ntstream/proactor"
	"github.com/nabbar/ntstream/recvqueue"
)

// defaultReceiveChunk bounds how much is read from the transport in one
// proactor.Receive call when the caller leaves MaxSize unset.
const defaultReceiveChunk = 64 * 1024

// Receive registers a pending read for [minSize, maxSize) bytes. callback,
// if non-nil, fires once enough data has accumulated, the read is
// cancelled, or the connection reaches EOF. Receive is only valid once the
// socket is connected and its receive direction is open.
func (s *StreamSocket) Receive(opts ReceiveOptions) (uint64, error) {
	s.mu.Lock()

	if s.openState != StateConnected || !s.flow.CanReceive() {
		s.mu.Unlock()
		return 0, invalid()
	}

	id := s.recvQ.RegisterPendingRead(recvqueue.PendingRead{
		MinSize:     opts.MinSize,
		MaxSize:     opts.MaxSize,
		Token:       opts.Token,
		HasToken:    opts.HasToken,
		Deadline:    opts.Deadline,
		HasDeadline: opts.HasDeadline,
		Callback:    s.wrapReceiveCallback(opts.Callback),
	})

	s.mu.Unlock()

	s.pumpReceive()
	return id, nil
}

// TryReceive is the synchronous counterpart to Receive: it copies already
// buffered data directly into blob rather than registering a pending read
// and waiting for a callback. It succeeds only when no pending read is
// already queued ahead of it and at least opts.MinSize bytes are already
// buffered; on a miss it relaxes receive flow control, to encourage more
// data to arrive, and returns e_WOULD_BLOCK.
func (s *StreamSocket) TryReceive(ctx context.Context, blob []byte, opts ReceiveOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, newError(CodeCancelled, err)
	}

	s.mu.Lock()

	if s.openState != StateConnected || !s.flow.CanReceive() {
		s.mu.Unlock()
		return 0, invalid()
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 || maxSize > len(blob) {
		maxSize = len(blob)
	}

	data, ok := s.recvQ.TryConsume(opts.MinSize, maxSize)
	if !ok {
		s.flow.Relax(flowctl.DirectionReceive, false)
		s.mu.Unlock()
		s.pumpReceive()
		return 0, newError(CodeWouldBlock)
	}

	s.mu.Unlock()
	return copy(blob, data), nil
}

func (s *StreamSocket) wrapReceiveCallback(cb func(ReceiveEvent)) func([]byte, error) {
	if cb == nil {
		return nil
	}
	return func(data []byte, err error) {
		ev := ReceiveEvent{Data: data}
		if err != nil {
			if err == io.EOF {
				ev.Err = newError(CodeEOF, err)
			} else {
				ev.Err = newError(CodeCancelled, err)
			}
		}
		cb(ev)
	}
}

// pumpReceive satisfies as many pending reads as the buffered data already
// allows, then, if a pending read remains unsatisfied and the receive
// direction is open, issues exactly one proactor.Receive call to fetch
// more.
func (s *StreamSocket) pumpReceive() {
	s.mu.Lock()
	satisfied := s.recvQ.TrySatisfy()
	s.mu.Unlock()

	for _, sat := range satisfied {
		if sat.Request.Callback != nil {
			sat.Request.Callback(sat.Data, nil)
		}
	}

	s.mu.Lock()
	if s.receivePending || s.recvQ.PendingCount() == 0 || !s.flow.CanReceive() || s.openState != StateConnected {
		s.mu.Unlock()
		return
	}

	size := defaultReceiveChunk
	if s.opts.MaxIncomingStreamTransferSize > 0 && s.opts.MaxIncomingStreamTransferSize < size {
		size = s.opts.MaxIncomingStreamTransferSize
	}

	blob := s.proactor.DataPool().Get(size)
	s.receivePending = true
	s.recvBlob = blob
	s.mu.Unlock()

	if err := s.proactor.Receive(s, blob, proactor.ReceiveOptions{MinSize: s.opts.MinIncomingStreamTransferSize}); err != nil {
		s.mu.Lock()
		s.receivePending = false
		s.recvBlob = nil
		s.mu.Unlock()
		s.processTransportError(err)
	}
}

// ProcessReceiveComplete implements proactor.Socket.
func (s *StreamSocket) ProcessReceiveComplete(attempted, received int, err error) {
	s.mu.Lock()
	s.receivePending = false
	blob := s.recvBlob
	s.recvBlob = nil
	hasSession := s.session != nil
	s.totalBytesReceived += int64(received)
	s.mu.Unlock()

	if received > 0 && blob != nil {
		if hasSession {
			s.feedTLSIncoming(blob[:received])
		} else {
			s.mu.Lock()
			s.recvQ.Append(blob[:received])
			s.mu.Unlock()
		}
	}

	if err != nil && err != io.EOF {
		s.processTransportError(err)
		return
	}

	if err == io.EOF {
		s.onReceiveEOF()
		return
	}

	s.pumpReceive()
}

// onReceiveEOF delivers io.EOF to every pending read and cascades the
// peer's half-close into this socket's own shutdown state.
func (s *StreamSocket) onReceiveEOF() {
	s.mu.Lock()
	pending := s.recvQ.ExpirePendingReads(time.Now())
	s.mu.Unlock()

	for _, pr := range pending {
		if pr.Callback != nil {
			pr.Callback(nil, io.EOF)
		}
	}

	s.onRemoteEOF()
}

// CancelReceive cancels a pending read registered by Receive, invoking its
// callback with a cancellation error if one was registered.
func (s *StreamSocket) CancelReceive(id uint64) bool {
	s.mu.Lock()
	pr, ok := s.recvQ.CancelPendingRead(id)
	s.mu.Unlock()

	if ok && pr.Callback != nil {
		pr.Callback(nil, newError(CodeCancelled))
	}
	return ok
}
