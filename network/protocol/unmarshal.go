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

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON parses the raw JSON bytes the same way as ParseBytes, without
// JSON decoding: a quoted name such as "tcp" matches, while a double-quoted
// value with single quotes inside it does not. Unknown content never fails:
// it sets the receiver to NetworkEmpty.
func (p *NetworkProtocol) UnmarshalJSON(data []byte) error {
	*p = ParseBytes(data)
	return nil
}

// UnmarshalYAML reads the scalar node's raw value and parses it the same way
// as Parse. It never fails.
func (p *NetworkProtocol) UnmarshalYAML(node *yaml.Node) error {
	*p = Parse(node.Value)
	return nil
}

// UnmarshalTOML accepts the []byte or string representations produced by TOML
// decoders. Any other Go type is rejected, since a TOML decoder should never
// hand this method a bool, number, or structured value for a protocol field.
// The string content itself is parsed leniently, exactly like Parse.
func (p *NetworkProtocol) UnmarshalTOML(v interface{}) error {
	switch t := v.(type) {
	case []byte:
		*p = ParseBytes(t)
		return nil
	case string:
		*p = Parse(t)
		return nil
	default:
		return fmt.Errorf("protocol: value %v is not in valid format for NetworkProtocol", v)
	}
}

// UnmarshalText accepts the raw text representation produced by MarshalText
// and parses it the same way as Parse. It never fails.
func (p *NetworkProtocol) UnmarshalText(data []byte) error {
	*p = ParseBytes(data)
	return nil
}

// UnmarshalCBOR treats data as the raw bytes of a protocol name rather than a
// genuine CBOR-encoded item, mirroring MarshalCBOR. It never fails.
func (p *NetworkProtocol) UnmarshalCBOR(data []byte) error {
	*p = ParseBytes(data)
	return nil
}
