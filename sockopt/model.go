/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package sockopt carries the config-file-facing option surface for a stream
// socket: the network family, address, and (when applicable) TLS session and
// Unix file ownership settings needed to dial or listen, independent of the
// proactor/session machinery that consumes them.
package sockopt

import (
	"github.com/nabbar/ntstream/network/protocol"
	"github.com/nabbar/ntstream/sessionctx"

	libdur "github.com/nabbar/ntstream/duration"
	libprm "github.com/nabbar/ntstream/file/perm"
)

// MaxGID is the highest Unix group id GroupPerm accepts.
const MaxGID = 32767

// clientTLS carries the client-side TLS session options: whether TLS is
// enabled, the session configuration to build it from, and the server name
// used for SNI and certificate hostname verification.
type clientTLS struct {
	Enabled    bool
	Config     sessionctx.Config
	ServerName string
}

// serverTLS carries the server-side TLS session options.
type serverTLS struct {
	Enabled bool
	Config  sessionctx.Config
}

// Client describes the dial-side option surface of a stream socket.
type Client struct {
	Network protocol.NetworkProtocol
	Address string
	TLS     clientTLS

	defTLS sessionctx.Config
	defSet bool
}

// Server describes the listen-side option surface of a stream socket,
// including the Unix file ownership applied to a freshly bound Unix socket.
type Server struct {
	Network        protocol.NetworkProtocol
	Address        string
	PermFile       libprm.Perm
	GroupPerm      int32
	ConIdleTimeout libdur.Duration
	TLS            serverTLS

	defTLS sessionctx.Config
	defSet bool
}
