/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package sessionctx_test

import (
	"github.com/nabbar/ntstream/certificates"
	tlscrt "github.com/nabbar/ntstream/certificates/certs"
	tlscpr "github.com/nabbar/ntstream/certificates/cipher"
	tlscrv "github.com/nabbar/ntstream/certificates/curves"
	tlsvrs "github.com/nabbar/ntstream/certificates/tlsversion"
	"github.com/nabbar/ntstream/sessionctx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	Context("zero value", func() {
		var cfg sessionctx.Config

		It("reports IsZero as true", func() {
			Expect(cfg.IsZero()).To(BeTrue())
		})

		It("passes struct-tag validation regardless", func() {
			Expect(cfg.Validate()).To(BeNil())
		})
	})

	Context("populated with a generated certificate", func() {
		var cfg sessionctx.Config

		BeforeEach(func() {
			pub, key, err := genPairPEM()
			Expect(err).ToNot(HaveOccurred())

			pair, err := tlscrt.ParsePair(key, pub)
			Expect(err).ToNot(HaveOccurred())

			cfg = sessionctx.Config{
				Config: certificates.Config{
					CurveList:  tlscrv.List(),
					CipherList: tlscpr.List(),
					Certs:      []tlscrt.Certif{pair.Model()},
					VersionMin: tlsvrs.VersionTLS12,
					VersionMax: tlsvrs.VersionTLS13,
				},
			}
		})

		It("reports IsZero as false", func() {
			Expect(cfg.IsZero()).To(BeFalse())
		})

		It("builds a non-nil server *tls.Config", func() {
			Expect(cfg.ServerConfig()).ToNot(BeNil())
		})

		It("builds a non-nil client *tls.Config carrying the server name", func() {
			c := cfg.ClientConfig("example.com")
			Expect(c).ToNot(BeNil())
			Expect(c.ServerName).To(Equal("example.com"))
		})
	})
})
