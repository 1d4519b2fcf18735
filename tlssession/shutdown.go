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

// Shutdown sends a close_notify alert to the peer. The alert bytes become
// available through PopOutgoingCipherText; the caller is responsible for
// writing them to the real network connection. Calling Shutdown more than
// once is harmless; only the first call's error is meaningful.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	s.shutdownSent = true
	s.mu.Unlock()

	return s.conn.Close()
}

// ShutdownSent reports whether Shutdown has been called.
func (s *Session) ShutdownSent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shutdownSent
}

// ShutdownReceived reports whether the peer's close_notify (or a clean
// io.EOF from the engine's read side) has been observed.
func (s *Session) ShutdownReceived() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shutdownReceived
}

// IsShutdownFinished reports whether both directions have shut down. It may
// become true before PopIncomingPlainText has been drained of everything
// the peer sent before its close_notify; callers must drain plaintext
// first.
func (s *Session) IsShutdownFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shutdownSent && s.shutdownReceived
}
