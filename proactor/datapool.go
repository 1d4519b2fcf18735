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

package proactor

import "sync"

// netDataPool is a size-bucketed sync.Pool wrapper serving both as the
// DataPool and as the BlobBufferFactory for incoming and outgoing blobs.
type netDataPool struct {
	mu      sync.Mutex
	buckets map[int]*sync.Pool
}

func newNetDataPool() *netDataPool {
	return &netDataPool{buckets: make(map[int]*sync.Pool)}
}

func (d *netDataPool) bucket(size int) *sync.Pool {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.buckets[size]
	if !ok {
		sz := size
		p = &sync.Pool{New: func() any { return make([]byte, sz) }}
		d.buckets[size] = p
	}
	return p
}

// Get returns a zeroed byte slice of exactly size bytes, reused from the
// pool when possible.
func (d *netDataPool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf := d.bucket(size).Get().([]byte)
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// Put returns buf to the pool for reuse by a future Get of the same size.
func (d *netDataPool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	d.bucket(len(buf)).Put(buf)
}

// Acquire implements BlobBufferFactory by delegating to Get.
func (d *netDataPool) Acquire(size int) []byte {
	return d.Get(size)
}

// Release implements BlobBufferFactory by delegating to Put.
func (d *netDataPool) Release(buf []byte) {
	d.Put(buf)
}
