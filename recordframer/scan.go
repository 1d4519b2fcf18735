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

package recordframer

// ScanBoundary walks buf one record at a time and returns the offset of the
// first byte that cannot belong to a TLS record.
//
// It skips over every full record it can account for (header plus declared
// body), and stops as soon as either the next header fails to decode or the
// declared body runs past the end of buf. Everything before the returned
// offset is confirmed TLS ciphertext; everything at or after it is either
// non-TLS data or the start of a record still accumulating and should be
// left in place for the next call.
func ScanBoundary(buf []byte) int {
	pos := 0
	for pos < len(buf) {
		hdr, n, err := Decode(buf[pos:])
		if err != nil {
			break
		}

		end := pos + n + int(hdr.Length)
		if end > len(buf) {
			break
		}
		pos = end
	}
	return pos
}
