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

// Package flowctl tracks whether a stream socket is currently allowed to
// send or receive data, independently in each direction. Either direction
// can be disabled transiently (relaxed again later) or locked (refusing to
// relax until explicitly unlocked).
package flowctl

import "sync"

// Direction selects which half of a connection a Control call affects.
type Direction uint8

const (
	DirectionSend Direction = iota
	DirectionReceive
	DirectionBoth
)

// Control holds the enabled/locked state of both directions of a stream.
// Both directions start enabled and unlocked.
type Control struct {
	mu sync.Mutex

	sendEnabled bool
	sendLocked  bool

	recvEnabled bool
	recvLocked  bool
}

// New returns a Control with both directions enabled and unlocked.
func New() *Control {
	return &Control{
		sendEnabled: true,
		recvEnabled: true,
	}
}

// Apply disables dir. When lock is true, dir also refuses to relax until a
// matching Relax call passes unlock=true.
func (c *Control) Apply(dir Direction, lock bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dir == DirectionSend || dir == DirectionBoth {
		c.sendEnabled = false
		if lock {
			c.sendLocked = true
		}
	}
	if dir == DirectionReceive || dir == DirectionBoth {
		c.recvEnabled = false
		if lock {
			c.recvLocked = true
		}
	}
}

// Relax re-enables dir, unless dir is locked and unlock is false. Passing
// unlock=true clears the lock bit before re-enabling.
func (c *Control) Relax(dir Direction, unlock bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dir == DirectionSend || dir == DirectionBoth {
		if unlock {
			c.sendLocked = false
		}
		if !c.sendLocked {
			c.sendEnabled = true
		}
	}
	if dir == DirectionReceive || dir == DirectionBoth {
		if unlock {
			c.recvLocked = false
		}
		if !c.recvLocked {
			c.recvEnabled = true
		}
	}
}

// CanSend reports whether sending is currently enabled.
func (c *Control) CanSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendEnabled
}

// CanReceive reports whether receiving is currently enabled.
func (c *Control) CanReceive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recvEnabled
}

// SendLocked reports whether the send direction is currently locked.
func (c *Control) SendLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked
}

// ReceiveLocked reports whether the receive direction is currently locked.
func (c *Control) ReceiveLocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recvLocked
}
