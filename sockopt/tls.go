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
	"crypto/tls"

	"github.com/nabbar/ntstream/sessionctx"
)

// DefaultTLS registers a fallback session configuration merged beneath the
// client's own TLS.Config whenever GetTLS builds the effective *tls.Config:
// any field left unset on TLS.Config is taken from def. A nil def clears the
// fallback.
func (c *Client) DefaultTLS(def *sessionctx.Config) {
	if def == nil {
		c.defSet = false
		return
	}
	c.defTLS = *def
	c.defSet = true
}

// GetTLS reports whether TLS is enabled and, when it is, builds the stdlib
// *tls.Config to dial with along with the server name to present for SNI.
func (c *Client) GetTLS() (bool, *tls.Config, string) {
	if !c.TLS.Enabled {
		return false, nil, ""
	}
	return true, c.effectiveSessionConfig().ClientConfig(c.TLS.ServerName), c.TLS.ServerName
}

func (c *Client) effectiveSessionConfig() sessionctx.Config {
	if !c.defSet {
		return c.TLS.Config
	}
	own := c.TLS.Config.Config
	merged := own.NewFrom(c.defTLS.Config.New())
	return sessionctx.Config{Config: *merged.Config()}
}

// DefaultTLS registers a fallback session configuration merged beneath the
// server's own TLS.Config whenever GetTLS builds the effective *tls.Config.
// A nil def clears the fallback.
func (s *Server) DefaultTLS(def *sessionctx.Config) {
	if def == nil {
		s.defSet = false
		return
	}
	s.defTLS = *def
	s.defSet = true
}

// GetTLS reports whether TLS is enabled and, when it is, builds the stdlib
// *tls.Config a listening socket hands to crypto/tls.Server.
func (s *Server) GetTLS() (bool, *tls.Config) {
	if !s.TLS.Enabled {
		return false, nil
	}
	return true, s.effectiveSessionConfig().ServerConfig()
}

func (s *Server) effectiveSessionConfig() sessionctx.Config {
	if !s.defSet {
		return s.TLS.Config
	}
	own := s.TLS.Config.Config
	merged := own.NewFrom(s.defTLS.Config.New())
	return sessionctx.Config{Config: *merged.Config()}
}
