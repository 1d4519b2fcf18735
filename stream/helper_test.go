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

package stream_test

import (
	"io"
	"sync"

	"github.com/nabbar/ntstream/proactor"
	"github.com/nabbar/ntstream/stream"
)

// fakeProactor is a synchronous, single-threaded Proactor test double: every
// operation invokes its Socket callback immediately, inline, rather than
// from a goroutine, so tests observe effects without needing Eventually.
type fakeProactor struct {
	mu sync.Mutex

	attached map[proactor.Socket]bool
	dialErr  error

	sentChunks [][]byte
	recvChunks [][]byte // queued bytes handed back as soon as a Receive arrives

	blockSend        bool
	pendingSendSock  proactor.Socket
	pendingSendBytes int

	pendingSocket proactor.Socket // set when Receive is called with nothing queued
	pendingBlob   []byte

	reservations int
	maxRes       int

	bufSize int
	bufErr  error

	pool *fakeDataPool
}

func newFakeProactor() *fakeProactor {
	return &fakeProactor{
		attached: make(map[proactor.Socket]bool),
		pool:     newFakeDataPool(),
	}
}

func (p *fakeProactor) AttachSocket(s proactor.Socket) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attached[s] = true
	return nil
}

func (p *fakeProactor) DetachSocket(s proactor.Socket) error {
	p.mu.Lock()
	delete(p.attached, s)
	p.mu.Unlock()
	s.ProcessSocketDetached()
	return nil
}

func (p *fakeProactor) Connect(s proactor.Socket, endpoint proactor.Endpoint) error {
	if p.dialErr != nil {
		s.ProcessSocketError(p.dialErr)
		return nil
	}
	s.ProcessSocketConnected(proactor.Endpoint{Network: endpoint.Network, Address: "local"}, endpoint)
	return nil
}

func (p *fakeProactor) Send(s proactor.Socket, data []byte, opts proactor.SendOptions) error {
	p.mu.Lock()
	cp := append([]byte(nil), data...)
	p.sentChunks = append(p.sentChunks, cp)

	if p.blockSend {
		p.pendingSendSock = s
		p.pendingSendBytes = len(data)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	s.ProcessSendComplete(len(data))
	return nil
}

// completeSend finishes a Send parked because blockSend was set.
func (p *fakeProactor) completeSend() {
	p.mu.Lock()
	s := p.pendingSendSock
	n := p.pendingSendBytes
	p.pendingSendSock = nil
	p.mu.Unlock()

	if s != nil {
		s.ProcessSendComplete(n)
	}
}

// Receive delivers immediately if data has been seeded via recvChunks;
// otherwise it parks the call, emulating a blocked read, until a test
// calls feed or feedEOF.
func (p *fakeProactor) Receive(s proactor.Socket, blob []byte, opts proactor.ReceiveOptions) error {
	p.mu.Lock()
	if len(p.recvChunks) == 0 {
		p.pendingSocket = s
		p.pendingBlob = blob
		p.mu.Unlock()
		return nil
	}
	chunk := p.recvChunks[0]
	p.recvChunks = p.recvChunks[1:]
	p.mu.Unlock()

	n := copy(blob, chunk)
	s.ProcessReceiveComplete(len(blob), n, nil)
	return nil
}

// feed completes a parked Receive with data, as if the transport had
// just become readable.
func (p *fakeProactor) feed(data []byte) {
	p.mu.Lock()
	s := p.pendingSocket
	blob := p.pendingBlob
	p.pendingSocket = nil
	p.pendingBlob = nil
	p.mu.Unlock()

	if s == nil {
		return
	}
	n := copy(blob, data)
	s.ProcessReceiveComplete(len(blob), n, nil)
}

// feedEOF completes a parked Receive as peer EOF.
func (p *fakeProactor) feedEOF() {
	p.mu.Lock()
	s := p.pendingSocket
	blob := p.pendingBlob
	p.pendingSocket = nil
	p.pendingBlob = nil
	p.mu.Unlock()

	if s == nil {
		return
	}
	s.ProcessReceiveComplete(len(blob), 0, io.EOF)
}

func (p *fakeProactor) Cancel(s proactor.Socket) {}

// SendBufferSize reports bufSize/bufErr, settable by tests; defaults to
// (0, nil), matching "no refreshed value available".
func (p *fakeProactor) SendBufferSize(s proactor.Socket) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bufSize, p.bufErr
}

func (p *fakeProactor) AcquireHandleReservation() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxRes > 0 && p.reservations >= p.maxRes {
		return false
	}
	p.reservations++
	return true
}

func (p *fakeProactor) ReleaseHandleReservation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reservations > 0 {
		p.reservations--
	}
}

func (p *fakeProactor) CreateStrand() proactor.Strand { return &fakeStrand{} }

func (p *fakeProactor) CreateTimer(opts proactor.TimerOptions) proactor.Timer {
	return &fakeTimer{}
}

func (p *fakeProactor) MaxThreads() int       { return 1 }
func (p *fakeProactor) ThreadHandle() uintptr { return 0 }
func (p *fakeProactor) ThreadIndex() int      { return 0 }

func (p *fakeProactor) IncomingBlobBufferFactory() proactor.BlobBufferFactory { return p.pool }
func (p *fakeProactor) OutgoingBlobBufferFactory() proactor.BlobBufferFactory { return p.pool }
func (p *fakeProactor) DataPool() proactor.DataPool                          { return p.pool }

// fakeStrand runs everything inline; good enough for tests that don't
// exercise strand ordering directly (that is proactor's own test's job).
type fakeStrand struct{}

func (f *fakeStrand) Execute(fn func()) { fn() }
func (f *fakeStrand) Running() bool     { return false }

// fakeTimer never fires on its own; tests that need deadline behavior
// call its callback manually via fire.
type fakeTimer struct {
	cb     func(proactor.TimerEvent)
	closed bool
}

func (t *fakeTimer) Schedule(opts proactor.TimerOptions, callback func(proactor.TimerEvent)) {
	t.cb = callback
}
func (t *fakeTimer) Close() { t.closed = true }

func (t *fakeTimer) fire() {
	if t.cb != nil && !t.closed {
		t.cb(proactor.TimerEvent{Type: proactor.TimerDeadline})
	}
}

// fakeSessionListener records every announcement a StreamSocket makes,
// for tests that assert on watermark, shutdown, downgrade, or transport
// error events rather than just callback results.
type fakeSessionListener struct {
	mu sync.Mutex

	writeQueue []stream.WriteQueueEvent
	shutdown   []stream.ShutdownEvent
	downgrade  []stream.DowngradeEvent
	errs       []stream.ErrorEvent
}

func (l *fakeSessionListener) OnReadQueue(ev stream.ReadQueueEvent) {}

func (l *fakeSessionListener) OnWriteQueue(ev stream.WriteQueueEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeQueue = append(l.writeQueue, ev)
}

func (l *fakeSessionListener) OnShutdown(ev stream.ShutdownEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shutdown = append(l.shutdown, ev)
}

func (l *fakeSessionListener) OnDowngrade(ev stream.DowngradeEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.downgrade = append(l.downgrade, ev)
}

func (l *fakeSessionListener) OnError(ev stream.ErrorEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, ev)
}

func (l *fakeSessionListener) writeQueueEvents() []stream.WriteQueueEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]stream.WriteQueueEvent(nil), l.writeQueue...)
}

type fakeDataPool struct{}

func newFakeDataPool() *fakeDataPool { return &fakeDataPool{} }

func (f *fakeDataPool) Get(size int) []byte     { return make([]byte, size) }
func (f *fakeDataPool) Put(buf []byte)          {}
func (f *fakeDataPool) Acquire(size int) []byte { return make([]byte, size) }
func (f *fakeDataPool) Release(buf []byte)      {}
