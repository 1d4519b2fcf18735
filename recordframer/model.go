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

// Package recordframer parses and emits TLS record headers well enough to
// tell where a run of TLS ciphertext ends within an arbitrary byte buffer,
// without touching the record body. It never allocates a crypto/tls.Conn and
// it never inspects the handshake itself; it only walks the 5-byte headers
// that precede every TLS record on the wire.
package recordframer

import (
	"encoding/binary"

	tlsvrs "github.com/nabbar/ntstream/certificates/tlsversion"
)

// HeaderLen is the fixed size, in bytes, of a TLS record header.
const HeaderLen = 5

// MaxLength is the largest content length a TLS record header may declare
// (2^14, per RFC 8446 §5.1).
const MaxLength = 1 << 14

// ContentType identifies the payload a TLS record header announces.
type ContentType uint8

const (
	ContentTypeInvalid          ContentType = 0
	ContentTypeChangeCipherSpec ContentType = 20
	ContentTypeAlert            ContentType = 21
	ContentTypeHandshake        ContentType = 22
	ContentTypeApplicationData  ContentType = 23
)

// Valid reports whether t is one of the content types recordframer will
// accept when decoding a header. ContentTypeInvalid is itself never valid
// on the wire: it exists only as the zero value of ContentType.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeChangeCipherSpec, ContentTypeAlert, ContentTypeHandshake, ContentTypeApplicationData:
		return true
	default:
		return false
	}
}

// Header is a decoded TLS record header: the content type, the legacy
// record-layer version carried in the header (not the negotiated version),
// and the declared length of the record body that follows.
type Header struct {
	Type    ContentType
	Version tlsvrs.Version
	Length  uint16
}

// Encode appends the 5-byte wire form of h to dst and returns the result.
func Encode(dst []byte, h Header) []byte {
	var hdr [HeaderLen]byte
	hdr[0] = byte(h.Type)
	binary.BigEndian.PutUint16(hdr[1:3], uint16(h.Version))
	binary.BigEndian.PutUint16(hdr[3:5], h.Length)
	return append(dst, hdr[:]...)
}

// Decode reads a single record header from the front of buf.
//
// It returns ErrWouldBlock, without consuming anything, when buf holds
// fewer than HeaderLen bytes. It returns ErrInvalid when the content type is
// unrecognized, the legacy version falls outside TLS 1.0-1.3, or the
// declared length exceeds MaxLength. On success it returns the decoded
// header and the number of bytes consumed (always HeaderLen).
func Decode(buf []byte) (Header, int, error) {
	if len(buf) < HeaderLen {
		return Header{}, 0, ErrWouldBlock
	}

	t := ContentType(buf[0])
	if !t.Valid() {
		return Header{}, 0, ErrInvalid
	}

	v := tlsvrs.Version(binary.BigEndian.Uint16(buf[1:3]))
	if v < tlsvrs.VersionTLS10 || v > tlsvrs.VersionTLS13 {
		return Header{}, 0, ErrInvalid
	}

	length := binary.BigEndian.Uint16(buf[3:5])
	if length > MaxLength {
		return Header{}, 0, ErrInvalid
	}

	return Header{Type: t, Version: v, Length: length}, HeaderLen, nil
}
