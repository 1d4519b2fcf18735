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

// Package sessionmgr dispatches a TLS session configuration by server name,
// the way a listening socket picks which certificate to present once it
// learns the client's requested SNI host name. It keeps one named context
// per registered server name plus a single default context used whenever
// the requested name is empty or unknown.
package sessionmgr

import (
	"sync"

	"github.com/nabbar/ntstream/sessionctx"
)

// Manager is a concurrency-safe registry mapping server names to
// sessionctx.Config. All methods are safe for concurrent use; a single
// Manager is typically shared by every socket listening on the same
// address.
type Manager struct {
	mu sync.RWMutex

	byName map[string]sessionctx.Config

	def    sessionctx.Config
	defSet bool
}

// New returns an empty Manager with no registered names and no default.
func New() *Manager {
	return &Manager{
		byName: make(map[string]sessionctx.Config),
	}
}
