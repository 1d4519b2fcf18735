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

package sockopt

import (
	"net"
	"runtime"

	"github.com/nabbar/ntstream/network/protocol"
)

// isStreamTLSCapable reports whether p names a network family a TLS session
// can be layered on: the TCP family. TLS over UDP or a Unix socket is
// rejected, mirroring crypto/tls's own requirement of a reliable, ordered
// byte stream.
func isStreamTLSCapable(p protocol.NetworkProtocol) bool {
	switch p {
	case protocol.NetworkTCP, protocol.NetworkTCP4, protocol.NetworkTCP6:
		return true
	default:
		return false
	}
}

// resolveAddress validates addr against the address syntax p's network
// family expects, using the same resolvers net.Dial/net.Listen rely on.
func resolveAddress(p protocol.NetworkProtocol, addr string) error {
	switch p {
	case protocol.NetworkTCP, protocol.NetworkTCP4, protocol.NetworkTCP6:
		_, err := net.ResolveTCPAddr(p.String(), addr)
		return err
	case protocol.NetworkUDP, protocol.NetworkUDP4, protocol.NetworkUDP6:
		_, err := net.ResolveUDPAddr(p.String(), addr)
		return err
	case protocol.NetworkUnix, protocol.NetworkUnixGram:
		if runtime.GOOS == "windows" {
			return ErrInvalidProtocol
		}
		_, err := net.ResolveUnixAddr(p.String(), addr)
		return err
	default:
		return ErrInvalidProtocol
	}
}

// Validate reports whether c names a usable network and address, and, when
// TLS is enabled, a network family and session configuration that can carry
// it along with a non-empty server name for SNI and hostname verification.
func (c *Client) Validate() error {
	if c.Network.String() == "" {
		return ErrInvalidProtocol
	}

	if err := resolveAddress(c.Network, c.Address); err != nil {
		return err
	}

	if c.TLS.Enabled {
		if !isStreamTLSCapable(c.Network) {
			return ErrInvalidTLSConfig
		}
		if c.TLS.Config.IsZero() {
			return ErrInvalidTLSConfig
		}
		if c.TLS.ServerName == "" {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}

// Validate reports whether s names a usable network, address, and Unix
// group ownership, and, when TLS is enabled, a network family and session
// configuration that can carry it.
func (s *Server) Validate() error {
	if s.Network.String() == "" {
		return ErrInvalidProtocol
	}

	if err := resolveAddress(s.Network, s.Address); err != nil {
		return err
	}

	if s.GroupPerm < -1 || s.GroupPerm > MaxGID {
		return ErrInvalidGroup
	}

	if s.TLS.Enabled {
		if !isStreamTLSCapable(s.Network) {
			return ErrInvalidTLSConfig
		}
		if s.TLS.Config.IsZero() {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}
