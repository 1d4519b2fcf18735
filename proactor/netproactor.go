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

package proactor

import (
	"errors"
	"net"
	"sync"
	"time"
)

// ErrNotAttached is returned by Send/Receive/SendBufferSize when the socket
// has no live connection registered with this proactor.
var ErrNotAttached = errors.New("proactor: socket has no attached connection")

// ErrHandleExhausted reports that the handle reservation limit has been
// reached. No netProactor method returns it: AttachSocket does not check the
// limit, and AcquireHandleReservation reports exhaustion by returning false.
var ErrHandleExhausted = errors.New("proactor: handle reservation limit reached")

// netProactor is a Proactor backed by plain goroutines and net.Conn. Every
// asynchronous operation spawns one short-lived goroutine that performs a
// single blocking net.Conn call and reports the result back through the
// Socket callback contract.
type netProactor struct {
	mu      sync.Mutex
	conns   map[Socket]net.Conn
	maxRes  int
	usedRes int
	threads int
	pool    *netDataPool
}

// New returns a netProactor allowing at most maxHandles concurrently
// reserved sockets and reporting threads as MaxThreads().
func New(maxHandles, threads int) *netProactor {
	if threads <= 0 {
		threads = 1
	}
	return &netProactor{
		conns:   make(map[Socket]net.Conn),
		maxRes:  maxHandles,
		threads: threads,
		pool:    newNetDataPool(),
	}
}

// AttachConn registers an already-established net.Conn for s, as Open
// does when adopting a connected handle (e.g. a server-accepted
// connection) rather than dialing one itself.
func (p *netProactor) AttachConn(s Socket, conn net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[s] = conn
}

// AttachSocket registers s with no connection yet; Connect or AttachConn
// supplies one later.
func (p *netProactor) AttachSocket(s Socket) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.conns[s]; !ok {
		p.conns[s] = nil
	}
	return nil
}

// DetachSocket closes s's connection, if any, and reports completion
// asynchronously via ProcessSocketDetached, per the Proactor contract.
func (p *netProactor) DetachSocket(s Socket) error {
	p.mu.Lock()
	conn, ok := p.conns[s]
	delete(p.conns, s)
	p.mu.Unlock()

	if ok && conn != nil {
		_ = conn.Close()
	}

	go s.ProcessSocketDetached()
	return nil
}

func (p *netProactor) connOf(s Socket) net.Conn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conns[s]
}

// Connect dials endpoint asynchronously, then reports ProcessSocketConnected
// or ProcessSocketError.
func (p *netProactor) Connect(s Socket, endpoint Endpoint) error {
	go func() {
		conn, err := net.Dial(endpoint.Network, endpoint.Address)
		if err != nil {
			s.ProcessSocketError(err)
			return
		}

		p.mu.Lock()
		p.conns[s] = conn
		p.mu.Unlock()

		s.ProcessSocketConnected(
			Endpoint{Network: endpoint.Network, Address: conn.LocalAddr().String()},
			Endpoint{Network: endpoint.Network, Address: conn.RemoteAddr().String()},
		)
	}()
	return nil
}

// Send writes data (capped at opts.MaxBytes, if set) to s's connection in
// a dedicated goroutine, then reports ProcessSendComplete.
func (p *netProactor) Send(s Socket, data []byte, opts SendOptions) error {
	conn := p.connOf(s)
	if conn == nil {
		return ErrNotAttached
	}

	chunk := data
	if opts.MaxBytes > 0 && opts.MaxBytes < len(chunk) {
		chunk = chunk[:opts.MaxBytes]
	}

	go func() {
		n, err := conn.Write(chunk)
		if err != nil {
			s.ProcessSocketError(err)
			return
		}
		s.ProcessSendComplete(n)
	}()
	return nil
}

// Receive reads into blob from s's connection in a dedicated goroutine,
// then reports ProcessReceiveComplete.
func (p *netProactor) Receive(s Socket, blob []byte, opts ReceiveOptions) error {
	conn := p.connOf(s)
	if conn == nil {
		return ErrNotAttached
	}

	go func() {
		n, err := conn.Read(blob)
		s.ProcessReceiveComplete(len(blob), n, err)
	}()
	return nil
}

// SendBufferSize re-reads the kernel SO_SNDBUF of s's attached connection
// via RefreshSendBufferSize (Linux only; a no-op elsewhere).
func (p *netProactor) SendBufferSize(s Socket) (int, error) {
	conn := p.connOf(s)
	if conn == nil {
		return 0, ErrNotAttached
	}
	return RefreshSendBufferSize(conn)
}

// Cancel forces any in-flight Read/Write on s's connection to return
// immediately, by expiring its deadline. It cannot retract a goroutine
// that already returned, matching net.Conn's own cancellation contract.
func (p *netProactor) Cancel(s Socket) {
	conn := p.connOf(s)
	if conn == nil {
		return
	}
	_ = conn.SetDeadline(time.Now())
}

// AcquireHandleReservation reserves one handle slot, reporting false if
// the configured limit (zero means unlimited) is already exhausted.
func (p *netProactor) AcquireHandleReservation() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.maxRes > 0 && p.usedRes >= p.maxRes {
		return false
	}
	p.usedRes++
	return true
}

// ReleaseHandleReservation releases one handle slot previously acquired.
func (p *netProactor) ReleaseHandleReservation() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.usedRes > 0 {
		p.usedRes--
	}
}

// MaxThreads reports the thread count this proactor was configured with.
func (p *netProactor) MaxThreads() int {
	return p.threads
}

// ThreadHandle has no meaningful analogue over goroutines; it always
// returns zero.
func (p *netProactor) ThreadHandle() uintptr {
	return 0
}

// ThreadIndex has no meaningful analogue over goroutines; it always
// returns zero.
func (p *netProactor) ThreadIndex() int {
	return 0
}

// IncomingBlobBufferFactory returns the shared pooled buffer factory used
// to size receive blobs.
func (p *netProactor) IncomingBlobBufferFactory() BlobBufferFactory {
	return p.pool
}

// OutgoingBlobBufferFactory returns the shared pooled buffer factory used
// to size outgoing ciphertext/plaintext staging blobs.
func (p *netProactor) OutgoingBlobBufferFactory() BlobBufferFactory {
	return p.pool
}

// DataPool returns the byte-slice allocator backing both blob buffer
// factories.
func (p *netProactor) DataPool() DataPool {
	return p.pool
}
