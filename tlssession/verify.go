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

package tlssession

import (
	"crypto/tls"
	"crypto/x509"
)

// verifyPeerCertificate builds the tls.Config.VerifyPeerCertificate callback
// for this session. base.InsecureSkipVerify is always set to true by New,
// so this callback is the only chain verification that runs.
func (s *Session) verifyPeerCertificate(base *tls.Config) func([][]byte, [][]*x509.Certificate) error {
	var roots *x509.CertPool
	var usage x509.ExtKeyUsage
	if s.role == RoleClient {
		roots = base.RootCAs
		usage = x509.ExtKeyUsageServerAuth
	} else {
		roots = base.ClientCAs
		usage = x509.ExtKeyUsageClientAuth
	}

	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		if len(rawCerts) == 0 {
			return nil
		}

		certs := make([]*x509.Certificate, 0, len(rawCerts))
		for _, raw := range rawCerts {
			c, err := x509.ParseCertificate(raw)
			if err != nil {
				return err
			}
			certs = append(certs, c)
		}

		leaf := certs[0]
		intermediates := x509.NewCertPool()
		for _, c := range certs[1:] {
			intermediates.AddCert(c)
		}

		chains, err := leaf.Verify(x509.VerifyOptions{
			Roots:         roots,
			Intermediates: intermediates,
			KeyUsages:     []x509.ExtKeyUsage{usage},
		})
		if err == nil {
			err = verifyHosts(leaf, s.opts.Validation.Hosts)
		}

		if err != nil {
			if !s.opts.Validation.AllowSelfSigned || !isUnknownAuthority(err) {
				return err
			}
		}

		if s.opts.Validation.EncryptionCertificateValidator != nil {
			var chain []*x509.Certificate
			if len(chains) > 0 {
				chain = chains[0]
			} else {
				chain = certs
			}
			if vErr := s.opts.Validation.EncryptionCertificateValidator(chain); vErr != nil {
				return ErrApplicationVerification
			}
		}

		return nil
	}
}

// verifyHosts reports a verification failure unless at least one entry in
// hosts matches leaf. x509.Certificate.VerifyHostname already distinguishes
// IP addresses from DNS names and forbids partial wildcard matches, so no
// separate IP-vs-name branch is needed here. An empty hosts list is always
// satisfied.
func verifyHosts(leaf *x509.Certificate, hosts []string) error {
	if len(hosts) == 0 {
		return nil
	}

	var lastErr error
	for _, h := range hosts {
		if err := leaf.VerifyHostname(h); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return lastErr
}

// isUnknownAuthority reports whether err is the chain-verification failure
// class AllowSelfSigned is meant to waive: an unknown certificate authority.
// Host-mismatch and expiry errors are never waived.
func isUnknownAuthority(err error) bool {
	_, ok := err.(x509.UnknownAuthorityError)
	return ok
}
