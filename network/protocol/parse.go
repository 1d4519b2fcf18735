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
	"math"
	"strings"
)

// clean trims surrounding whitespace, then every leading and trailing single
// quote, then every leading and trailing double quote, then every leading and
// trailing backtick, and lower-cases the result.
//
// Each kind is trimmed once, in that order: quotes of an earlier kind that sit
// inside quotes of a later kind (e.g. a double-quoted string with single quotes
// baked inside it) are left in place, and the value fails to match any known
// protocol.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "'")
	s = strings.Trim(s, `"`)
	s = strings.Trim(s, "`")
	return strings.ToLower(s)
}

// Parse returns the NetworkProtocol matching s.
//
// Matching is case-insensitive and tolerant of surrounding whitespace and of
// surrounding quotes, trimmed as clean describes. It never fails: any input that does not match a
// known protocol yields NetworkEmpty.
func Parse(s string) NetworkProtocol {
	if p, ok := networkValues[clean(s)]; ok {
		return p
	}
	return NetworkEmpty
}

// ParseBytes behaves like Parse but accepts a byte slice, as produced by the
// various Unmarshal* methods. A nil slice yields NetworkEmpty.
func ParseBytes(b []byte) NetworkProtocol {
	if len(b) < 1 {
		return NetworkEmpty
	}
	return Parse(string(b))
}

// ParseInt64 returns the NetworkProtocol whose numeric value equals v.
//
// Negative values and zero yield NetworkEmpty. Values above math.MaxUint8 are
// capped to math.MaxUint8 before the range check, which still yields
// NetworkEmpty since no protocol occupies that value. The function never
// fails: it is the numeric counterpart of Parse.
func ParseInt64(v int64) NetworkProtocol {
	if v <= 0 {
		return NetworkEmpty
	}
	if v > math.MaxUint8 {
		v = math.MaxUint8
	}

	p := NetworkProtocol(v)
	if !p.valid() {
		return NetworkEmpty
	}
	return p
}
