/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package protocol

import "encoding/json"

// MarshalJSON encodes p as a quoted JSON string, e.g. "tcp".
func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// MarshalYAML encodes p as a plain string for the YAML encoder to quote or not
// as it sees fit.
func (p NetworkProtocol) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// MarshalTOML encodes p as raw, unquoted string bytes.
func (p NetworkProtocol) MarshalTOML() ([]byte, error) {
	return []byte(p.String()), nil
}

// MarshalText encodes p as raw string bytes, satisfying encoding.TextMarshaler.
func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// MarshalCBOR encodes p as the raw bytes of its string form.
//
// This intentionally does not produce a CBOR text-string item: callers that
// need genuine CBOR framing should wrap the result of String() themselves.
// This mirrors MarshalText so that CBOR-based configuration loaders observe
// the same lenient round-trip as every other format here.
func (p NetworkProtocol) MarshalCBOR() ([]byte, error) {
	return []byte(p.String()), nil
}
