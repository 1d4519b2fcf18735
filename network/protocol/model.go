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

// Package protocol identifies the transport network family a stream socket is bound to.
//
// NetworkProtocol mirrors the string/numeric pairs accepted by the standard library's
// net.Dial and net.Listen ("tcp", "tcp4", "unix", ...) so it can be used directly to
// drive dial/listen selection while still being safe to marshal through JSON, YAML,
// TOML, text and CBOR encodings, and through Viper configuration decoding.
package protocol

// NetworkProtocol represents a network transport family.
//
// The zero value, NetworkEmpty, is not a valid transport and is returned by every
// parsing function whenever the input does not match a known protocol.
type NetworkProtocol uint8

const (
	// NetworkEmpty is the zero value and represents an unset or unrecognized protocol.
	NetworkEmpty NetworkProtocol = iota

	// NetworkUnix is the "unix" network (stream-oriented Unix domain socket).
	NetworkUnix

	// NetworkTCP is the "tcp" network (IPv4 or IPv6, resolved automatically).
	NetworkTCP

	// NetworkTCP4 is the "tcp4" network (IPv4 only).
	NetworkTCP4

	// NetworkTCP6 is the "tcp6" network (IPv6 only).
	NetworkTCP6

	// NetworkUDP is the "udp" network (IPv4 or IPv6, resolved automatically).
	NetworkUDP

	// NetworkUDP4 is the "udp4" network (IPv4 only).
	NetworkUDP4

	// NetworkUDP6 is the "udp6" network (IPv6 only).
	NetworkUDP6

	// NetworkIP is the "ip" raw network (IPv4 or IPv6, resolved automatically).
	NetworkIP

	// NetworkIP4 is the "ip4" raw network (IPv4 only).
	NetworkIP4

	// NetworkIP6 is the "ip6" raw network (IPv6 only).
	NetworkIP6

	// NetworkUnixGram is the "unixgram" network (datagram-oriented Unix domain socket).
	NetworkUnixGram
)

// networkNames maps every valid protocol to its canonical, lowercase net package name.
var networkNames = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

// networkValues is the reverse of networkNames, used by Parse / ParseBytes.
var networkValues = map[string]NetworkProtocol{
	"unix":     NetworkUnix,
	"tcp":      NetworkTCP,
	"tcp4":     NetworkTCP4,
	"tcp6":     NetworkTCP6,
	"udp":      NetworkUDP,
	"udp4":     NetworkUDP4,
	"udp6":     NetworkUDP6,
	"ip":       NetworkIP,
	"ip4":      NetworkIP4,
	"ip6":      NetworkIP6,
	"unixgram": NetworkUnixGram,
}

// valid reports whether p falls within the closed range of defined protocols.
func (p NetworkProtocol) valid() bool {
	return p >= NetworkUnix && p <= NetworkUnixGram
}
