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

import "github.com/nabbar/ntstream/sessionctx"

// Register associates serverName with cfg, replacing any prior entry for
// the same name. serverName must be non-empty and cfg must carry usable
// TLS material.
func (m *Manager) Register(serverName string, cfg sessionctx.Config) error {
	if serverName == "" {
		return ErrEmptyServerName
	}
	if cfg.IsZero() {
		return ErrInvalidConfig
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.byName[serverName] = cfg
	return nil
}

// Unregister removes the entry for serverName, if any. It is a no-op when
// no such entry exists.
func (m *Manager) Unregister(serverName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byName, serverName)
}

// Lookup returns the config registered for serverName and true on a match.
// It returns the zero Config and false when no entry exists; callers that
// want automatic default fallback should use GetConfigForClient instead.
func (m *Manager) Lookup(serverName string) (sessionctx.Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.byName[serverName]
	return cfg, ok
}

// SetDefault installs cfg as the fallback used when a requested server name
// has no registered entry.
func (m *Manager) SetDefault(cfg sessionctx.Config) error {
	if cfg.IsZero() {
		return ErrInvalidConfig
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.def = cfg
	m.defSet = true
	return nil
}

// Default returns the fallback config and true when one has been set.
func (m *Manager) Default() (sessionctx.Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.def, m.defSet
}

// Names returns the server names currently registered, in no particular
// order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.byName))
	for name := range m.byName {
		out = append(out, name)
	}
	return out
}
