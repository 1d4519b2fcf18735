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

// Package sessionctx adapts the certificates package's TLS configuration
// surface to the per-role (client/server) shape a stream socket needs: a
// config-file-friendly struct that can be stored on sockopt.Client /
// sockopt.Server and turned into a stdlib *tls.Config on demand, once the
// remote server name is known.
package sessionctx

import (
	"crypto/tls"

	"github.com/nabbar/ntstream/certificates"
	liberr "github.com/nabbar/ntstream/errors"
)

// Config carries the serializable TLS session parameters shared by both
// roles. It embeds certificates.Config so every field, tag, and the
// Validate() struct-tag machinery are reused unchanged; this package adds
// only the session-oriented accessors layered on top.
type Config struct {
	certificates.Config `mapstructure:",squash"`
}

// IsZero reports whether c carries no usable TLS material: no certificate
// and no trust anchors. sockopt uses this to reject "TLS enabled" with an
// empty Config rather than silently falling back to crypto/tls defaults.
func (c Config) IsZero() bool {
	return len(c.Certs) == 0 && len(c.RootCA) == 0 && len(c.ClientCA) == 0
}

// Validate delegates to the embedded certificates.Config's struct-tag driven
// validation.
func (c Config) Validate() liberr.Error {
	cfg := c.Config
	return cfg.Validate()
}

// ServerConfig builds the stdlib *tls.Config a listening socket hands to
// crypto/tls.Server, with no server name override (SNI dispatch, when
// needed, is sessionmgr's job, not a single Config's).
func (c Config) ServerConfig() *tls.Config {
	cfg := c.Config
	return cfg.New().TLS("")
}

// ClientConfig builds the stdlib *tls.Config a dialing socket hands to
// crypto/tls.Client, with serverName set for SNI and certificate hostname
// verification.
func (c Config) ClientConfig(serverName string) *tls.Config {
	cfg := c.Config
	return cfg.New().TLS(serverName)
}
