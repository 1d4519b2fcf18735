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
	liberr "github.com/nabbar/ntstream/errors"
)

// Error codes for every terminal or retryable condition a StreamSocket
// operation can report, registered with the shared errors.CodeError
// registry in this package's init().
const (
	CodeInvalid liberr.CodeError = iota + liberr.MinPkgStream
	CodeWouldBlock
	CodeCancelled
	CodeEOF
	CodeNotAuthorized
	CodeConnectionTimeout
	CodeConnectionRefused
	CodeConnectionDead
	CodeConnectionReset
	CodeLimit
	CodeNotImplemented
)

func init() {
	liberr.RegisterIdFctMessage(CodeInvalid, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case CodeInvalid:
		return "operation not valid in the socket's current state"
	case CodeWouldBlock:
		return "operation would block; retry or await the deadline"
	case CodeCancelled:
		return "operation cancelled"
	case CodeEOF:
		return "peer closed its sending side"
	case CodeNotAuthorized:
		return "certificate or authentication failure"
	case CodeConnectionTimeout:
		return "connection attempt timed out"
	case CodeConnectionRefused:
		return "connection refused"
	case CodeConnectionDead:
		return "connection is dead"
	case CodeConnectionReset:
		return "connection reset by peer"
	case CodeLimit:
		return "resource limit reached"
	case CodeNotImplemented:
		return "operation not implemented"
	default:
		return ""
	}
}

// newError builds an errors.Error for code, optionally wrapping parent.
func newError(code liberr.CodeError, parent ...error) liberr.Error {
	return liberr.New(code.Uint16(), getMessage(code), parent...)
}
