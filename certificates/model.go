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

package certificates

import (
	"crypto/tls"
	"io"
	"sync"

	tlsaut "github.com/nabbar/ntstream/certificates/auth"
	tlscas "github.com/nabbar/ntstream/certificates/ca"
	tlscrt "github.com/nabbar/ntstream/certificates/certs"
	tlscpr "github.com/nabbar/ntstream/certificates/cipher"
	tlscrv "github.com/nabbar/ntstream/certificates/curves"
	tlsvrs "github.com/nabbar/ntstream/certificates/tlsversion"
)

// config is the concrete implementation of TLSConfig. All mutating and
// reading methods take the mutex, matching the package's thread-safety
// contract.
type config struct {
	mu sync.RWMutex

	rand io.Reader

	cert       []tlscrt.Cert
	cipherList []tlscpr.Cipher
	curveList  []tlscrv.Curves
	caRoot     []tlscas.Cert
	clientAuth tlsaut.ClientAuth
	clientCA   []tlscas.Cert

	tlsMinVersion tlsvrs.Version
	tlsMaxVersion tlsvrs.Version

	dynSizingDisabled     bool
	ticketSessionDisabled bool
}

func (o *config) RegisterRand(rand io.Reader) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.rand = rand
}

func (o *config) SetVersionMin(v tlsvrs.Version) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.tlsMinVersion = v
}

func (o *config) GetVersionMin() tlsvrs.Version {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.tlsMinVersion
}

func (o *config) SetVersionMax(v tlsvrs.Version) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.tlsMaxVersion = v
}

func (o *config) GetVersionMax() tlsvrs.Version {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.tlsMaxVersion
}

func (o *config) SetCipherList(c []tlscpr.Cipher) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cipherList = make([]tlscpr.Cipher, 0, len(c))
	for _, i := range c {
		if i.Check() {
			o.cipherList = append(o.cipherList, i)
		}
	}
}

func (o *config) AddCiphers(c ...tlscpr.Cipher) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, i := range c {
		if i.Check() {
			o.cipherList = append(o.cipherList, i)
		}
	}
}

func (o *config) GetCiphers() []tlscpr.Cipher {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return append(make([]tlscpr.Cipher, 0, len(o.cipherList)), o.cipherList...)
}

func (o *config) SetDynamicSizingDisabled(flag bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.dynSizingDisabled = flag
}

func (o *config) SetSessionTicketDisabled(flag bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.ticketSessionDisabled = flag
}

func (o *config) Clone() TLSConfig {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return &config{
		rand:                  o.rand,
		cert:                  append(make([]tlscrt.Cert, 0, len(o.cert)), o.cert...),
		cipherList:            append(make([]tlscpr.Cipher, 0, len(o.cipherList)), o.cipherList...),
		curveList:             append(make([]tlscrv.Curves, 0, len(o.curveList)), o.curveList...),
		caRoot:                append(make([]tlscas.Cert, 0, len(o.caRoot)), o.caRoot...),
		clientAuth:            o.clientAuth,
		clientCA:              append(make([]tlscas.Cert, 0, len(o.clientCA)), o.clientCA...),
		tlsMinVersion:         o.tlsMinVersion,
		tlsMaxVersion:         o.tlsMaxVersion,
		dynSizingDisabled:     o.dynSizingDisabled,
		ticketSessionDisabled: o.ticketSessionDisabled,
	}
}

func (o *config) asTLSConfig(serverName string) *tls.Config {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var ciphers = make([]uint16, 0, len(o.cipherList))
	for _, c := range o.cipherList {
		ciphers = append(ciphers, c.Uint16())
	}

	var curves = make([]tls.CurveID, 0, len(o.curveList))
	for _, c := range o.curveList {
		curves = append(curves, tls.CurveID(c.Uint16()))
	}

	var certs = make([]tls.Certificate, 0, len(o.cert))
	for _, c := range o.cert {
		certs = append(certs, c.TLS())
	}

	var rootPool = newCertPool(o.caRoot)
	var clientPool = newCertPool(o.clientCA)

	return &tls.Config{
		Rand:                        o.rand,
		ServerName:                  serverName,
		Certificates:                certs,
		RootCAs:                     rootPool,
		ClientCAs:                   clientPool,
		ClientAuth:                  tls.ClientAuthType(o.clientAuth),
		CipherSuites:                ciphers,
		CurvePreferences:            curves,
		MinVersion:                  uint16(o.tlsMinVersion),
		MaxVersion:                  uint16(o.tlsMaxVersion),
		DynamicRecordSizingDisabled: o.dynSizingDisabled,
		SessionTicketsDisabled:      o.ticketSessionDisabled,
	}
}

func (o *config) TLS(serverName string) *tls.Config {
	return o.asTLSConfig(serverName)
}

func (o *config) TlsConfig(serverName string) *tls.Config {
	return o.asTLSConfig(serverName)
}

func (o *config) Config() *Config {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var certs = make([]tlscrt.Certif, 0, len(o.cert))
	for _, c := range o.cert {
		certs = append(certs, c.Model())
	}

	return &Config{
		CurveList:            append(make([]tlscrv.Curves, 0, len(o.curveList)), o.curveList...),
		CipherList:           append(make([]tlscpr.Cipher, 0, len(o.cipherList)), o.cipherList...),
		RootCA:               append(make([]tlscas.Cert, 0, len(o.caRoot)), o.caRoot...),
		ClientCA:             append(make([]tlscas.Cert, 0, len(o.clientCA)), o.clientCA...),
		Certs:                certs,
		VersionMin:           o.tlsMinVersion,
		VersionMax:           o.tlsMaxVersion,
		AuthClient:           o.clientAuth,
		DynamicSizingDisable: o.dynSizingDisabled,
		SessionTicketDisable: o.ticketSessionDisabled,
	}
}
