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

package tlssession

import (
	"context"
	"crypto/tls"
	"crypto/x509"
)

// Role distinguishes which side of the handshake a Session drives.
type Role uint8

const (
	// RoleClient drives the handshake as tls.Client: it sends ClientHello
	// first and verifies the server's chain.
	RoleClient Role = iota

	// RoleServer drives the handshake as tls.Server: it waits for
	// ClientHello, dispatches SNI, and optionally verifies a client chain.
	RoleServer
)

// Validation configures how a Session judges the peer's certificate chain,
// beyond the host/usage checks crypto/tls already performs internally.
type Validation struct {
	// Hosts lists the names or IP addresses the peer's leaf certificate
	// must match at least one of. Interpreted as an IP address when
	// net.ParseIP succeeds, otherwise as a DNS name. Empty means no
	// additional host check beyond SNI.
	Hosts []string

	// AllowSelfSigned downgrades an unknown-authority chain-verification
	// failure to success. It does not relax host or usage checks.
	AllowSelfSigned bool

	// EncryptionCertificateValidator, when set, runs after chain and host
	// verification succeed and may still reject the handshake.
	EncryptionCertificateValidator func(chain []*x509.Certificate) error
}

// Options configures a Session at construction time.
type Options struct {
	// Context bounds the handshake goroutine. A nil Context defaults to
	// context.Background(), meaning the handshake never times out on its
	// own; callers wanting a deadline should supply a cancellable one.
	Context context.Context

	// ServerName is sent as SNI by a RoleClient session. Ignored for
	// RoleServer, where the requested name instead arrives via
	// tls.ClientHelloInfo.ServerName.
	ServerName string

	Validation Validation

	// KeepIncomingLeftovers, when true, makes PushIncomingCipherText
	// scan for the first non-TLS byte and divert everything from there
	// onward to the incoming-leftovers buffer instead of the engine.
	KeepIncomingLeftovers bool

	// KeepOutgoingLeftovers, when true, diverts plaintext submitted
	// before the handshake completes to an internal buffer, flushed to
	// the engine automatically on handshake success.
	KeepOutgoingLeftovers bool

	// OnHandshakeComplete, when set, is invoked exactly once after the
	// handshake finishes successfully, with the locally presented and
	// peer certificates (either may be nil).
	OnHandshakeComplete func(source, remote *x509.Certificate)

	// GetConfigForClient, when set, is installed on the RoleServer base
	// tls.Config and consulted once ClientHello's ServerName is known,
	// enabling SNI dispatch to a per-name certificate/config. Ignored for
	// RoleClient.
	GetConfigForClient func(*tls.ClientHelloInfo) (*tls.Config, error)
}

func (o Options) context() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}
