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
	"reflect"
)

// networkProtocolType is the reflect.Type of NetworkProtocol, used by
// ViperDecoderHook to recognize its decode target.
var networkProtocolType = reflect.TypeOf(NetworkProtocol(0))

// decodeProtocolInt validates v against the closed set of defined protocols and
// returns an error describing the invalid value when it falls outside it.
//
// Unlike ParseInt64, this rejects out-of-range input instead of silently
// returning NetworkEmpty: a configuration value that does not name a real
// protocol should fail decoding rather than be swallowed.
func decodeProtocolInt(v int64) (interface{}, error) {
	p := ParseInt64(v)
	if p == NetworkEmpty {
		return nil, fmt.Errorf("invalid value %d for NetworkProtocol", v)
	}
	return p, nil
}

// ViperDecoderHook returns a mapstructure/viper decode hook that converts
// string and integer configuration values into a NetworkProtocol.
//
// String sources are parsed leniently, exactly like Parse: unrecognized
// content yields NetworkEmpty with no error, matching the tolerant behavior of
// the other Unmarshal* methods. Integer sources (signed or unsigned, of any
// width) are validated strictly: a value outside the defined protocol range
// produces an error instead of silently defaulting to NetworkEmpty. Any other
// source kind, or a target type other than NetworkProtocol, passes the
// original data through unchanged.
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != networkProtocolType {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			s, ok := data.(string)
			if !ok {
				return data, nil
			}
			return Parse(s), nil

		case reflect.Int:
			v, ok := data.(int)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Int8:
			v, ok := data.(int8)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Int16:
			v, ok := data.(int16)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Int32:
			v, ok := data.(int32)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Int64:
			v, ok := data.(int64)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(v)

		case reflect.Uint:
			v, ok := data.(uint)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Uint8:
			v, ok := data.(uint8)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Uint16:
			v, ok := data.(uint16)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Uint32:
			v, ok := data.(uint32)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		case reflect.Uint64:
			v, ok := data.(uint64)
			if !ok {
				return data, nil
			}
			return decodeProtocolInt(int64(v))

		default:
			return data, nil
		}
	}
}
