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

// Package stream assembles flow control, shutdown state, the send and
// receive queues, an optional TLS session, and a proactor collaborator
// into the top-level asynchronous stream socket: the composing layer
// every other package in this module was built to support.
package stream

import (
	"crypto/x509"
	"sync"

	"github.com/nabbar/ntstream/flowctl"
	"github.com/nabbar/ntstream/network/protocol"
	"github.com/nabbar/ntstream/proactor"
	"github.com/nabbar/ntstream/ratelimit"
	"github.com/nabbar/ntstream/recvqueue"
	"github.com/nabbar/ntstream/sendqueue"
	"github.com/nabbar/ntstream/sessionmgr"
	"github.com/nabbar/ntstream/shutdownstate"
	"github.com/nabbar/ntstream/tlssession"
)

// OpenState is the connection-lifecycle state of a StreamSocket.
type OpenState uint8

const (
	StateDefault OpenState = iota
	StateWaiting
	StateConnecting
	StateConnected
	StateClosed
)

// DetachState tracks whether an asynchronous proactor detach is in
// flight. While DetachInitiated, at most the one deferredCall
// continuation may be pending, and further user operations queue onto
// deferredCalls instead of running immediately.
type DetachState uint8

const (
	DetachIdle DetachState = iota
	DetachInitiated
)

// Resolver looks up the endpoint behind a name. Registering one is part
// of the external interface SPEC_FULL.md §6 names; this module's Connect
// only dials literal endpoints, so a registered Resolver is currently
// stored but not consulted — naming-based connect is out of scope here.
type Resolver interface {
	GetEndpoint(name string, callback func(proactor.Endpoint, error))
}

// StreamSocket is the top-level asynchronous TCP (or TLS-over-TCP, or
// local-stream) socket. Every externally observable operation holds mu
// for its critical section and releases it before invoking any user
// callback, per SPEC_FULL.md §4.1's concurrency contract.
type StreamSocket struct {
	mu sync.Mutex

	proactor proactor.Proactor
	resolver Resolver
	manager  *sessionmgr.Manager
	listener SessionListener

	opts Options

	openState   OpenState
	detachState DetachState

	handle         int
	transport      protocol.NetworkProtocol
	source, remote proactor.Endpoint

	flow  *flowctl.Control
	shut  *shutdownstate.State
	sendQ *sendqueue.Queue
	recvQ *recvqueue.Queue

	writeLimiter *ratelimit.Limiter
	readLimiter  *ratelimit.Limiter

	session    *tlssession.Session
	sourceCert *x509.Certificate
	remoteCert *x509.Certificate

	connectInProgress  bool
	connectAttempts    int
	connectRetriesLeft int
	connectEndpoint    proactor.Endpoint
	connectCallback    func(ConnectEvent)
	connectTimer       proactor.Timer
	deadlineTimer      proactor.Timer

	upgradeInProgress bool
	upgradeCallback   func(UpgradeEvent)

	receivePending    bool
	recvBlob          []byte
	sendsSinceRefresh int

	shutdownMarkerID  uint64
	hasShutdownMarker bool

	totalBytesSent     int64
	totalBytesReceived int64

	highWatermarkBreached bool

	closeCallback func()
}

// New returns a StreamSocket bound to p and configured by opts. The
// socket starts in StateDefault; call Connect to dial out, or
// AdoptConnected for a server accepting an already-connected handle.
func New(p proactor.Proactor, opts Options) *StreamSocket {
	return &StreamSocket{
		proactor:  p,
		opts:      opts,
		transport: opts.Transport,
		flow:      flowctl.New(),
		shut:      shutdownstate.New(),
		sendQ:     sendqueue.New(opts.WriteQueueLowWatermark, opts.WriteQueueHighWatermark),
		recvQ:     recvqueue.New(),
	}
}

// invalid builds the e_INVALID error SPEC_FULL.md §3 requires every
// operation outside its allowed-state set to return.
func invalid() error {
	return newError(CodeInvalid)
}
