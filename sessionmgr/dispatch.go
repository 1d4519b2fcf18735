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

package sessionmgr

import "crypto/tls"

// GetConfigForClient resolves the *tls.Config for an inbound handshake by
// the server name the client requested, for direct use as
// tls.Config.GetConfigForClient.
//
// It looks up hello.ServerName first; on a miss, or when the client sent no
// SNI at all, it falls back to the default context. It returns ErrNoDefault
// only when there is no match and no default has been configured, which
// crypto/tls surfaces to the dialing client as a handshake failure.
func (m *Manager) GetConfigForClient(hello *tls.ClientHelloInfo) (*tls.Config, error) {
	if hello.ServerName != "" {
		if cfg, ok := m.Lookup(hello.ServerName); ok {
			return cfg.ServerConfig(), nil
		}
	}

	def, ok := m.Default()
	if !ok {
		return nil, ErrNoDefault
	}
	return def.ServerConfig(), nil
}
