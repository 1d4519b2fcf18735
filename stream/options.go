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
	"time"

	"github.com/google/uuid"
	"github.com/nabbar/ntstream/network/protocol"
	"github.com/nabbar/ntstream/proactor"
	"github.com/nabbar/ntstream/tlssession"
)

// Options is the socket-wide, application-facing option surface described
// in SPEC_FULL.md §6. loadBalancingOptions and metrics are out of scope
// for this module (no proactor pool / no prometheus wiring is implemented
// here) and are omitted rather than stubbed.
type Options struct {
	Transport       protocol.NetworkProtocol
	SourceEndpoint  proactor.Endpoint
	ReuseAddress    bool
	KeepHalfOpen    bool
	AbortiveClose   bool
	SendGreedily    bool
	ReceiveGreedily bool

	WriteQueueLowWatermark  int
	WriteQueueHighWatermark int
	ReadQueueLowWatermark   int
	ReadQueueHighWatermark  int

	MinIncomingStreamTransferSize int
	MaxIncomingStreamTransferSize int
}

// effectiveKeepHalfOpen applies the abortiveClose override described in
// SPEC_FULL.md §3: an abortive close always forces both directions down
// together regardless of the configured keepHalfOpen preference.
func (o Options) effectiveKeepHalfOpen() bool {
	if o.AbortiveClose {
		return false
	}
	return o.KeepHalfOpen
}

// ConnectOptions customizes one Connect call.
type ConnectOptions struct {
	RetryCount    int
	RetryInterval time.Duration
	Deadline      time.Time
	HasDeadline   bool
}

// UpgradeOptions customizes one Upgrade call.
type UpgradeOptions struct {
	ServerName            string
	Validation            tlssession.Validation
	KeepIncomingLeftovers bool
	KeepOutgoingLeftovers bool
	Deadline              time.Time
	HasDeadline           bool
}

// SendOptions customizes one Send call.
type SendOptions struct {
	Token         uuid.UUID
	HasToken      bool
	Deadline      time.Time
	HasDeadline   bool
	HighWatermark int
	Recurse       bool
	Callback      func(SendEvent)
}

// ReceiveOptions customizes one Receive call.
type ReceiveOptions struct {
	MinSize     int
	MaxSize     int
	Token       uuid.UUID
	HasToken    bool
	Deadline    time.Time
	HasDeadline bool
	Recurse     bool
	Callback    func(ReceiveEvent)
}

// ShutdownMode selects how aggressively Shutdown drains outstanding work.
type ShutdownMode uint8

const (
	// ModeOrderly drains the send queue and waits for a close-notify /
	// FIN exchange before completing.
	ModeOrderly ShutdownMode = iota
	// ModeImmediate cancels outstanding queue entries immediately rather
	// than waiting for them to drain.
	ModeImmediate
)
