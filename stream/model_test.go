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

package stream_test

import (
	"context"

	"github.com/google/uuid"
	liberr "github.com/nabbar/ntstream/errors"
	"github.com/nabbar/ntstream/flowctl"
	"github.com/nabbar/ntstream/network/protocol"
	"github.com/nabbar/ntstream/proactor"
	"github.com/nabbar/ntstream/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StreamSocket", func() {
	var (
		p *fakeProactor
		s *stream.StreamSocket
	)

	BeforeEach(func() {
		p = newFakeProactor()
		s = stream.New(p, stream.Options{
			Transport:               protocol.NetworkTCP,
			WriteQueueLowWatermark:  1,
			WriteQueueHighWatermark: 4,
		})
	})

	connect := func() {
		var got stream.ConnectEvent
		done := make(chan struct{})
		Expect(s.Connect(proactor.Endpoint{Network: "tcp", Address: "example:7"}, stream.ConnectOptions{}, func(ev stream.ConnectEvent) {
			got = ev
			close(done)
		})).To(Succeed())
		<-done
		Expect(got.Err).To(BeNil())
	}

	It("rejects Send before the socket is connected", func() {
		Expect(s.Send([]byte("x"), stream.SendOptions{})).To(HaveOccurred())
	})

	It("connects and reports the negotiated endpoints", func() {
		connect()
		Expect(s.State()).To(Equal(stream.StateConnected))
		Expect(s.RemoteEndpoint().Address).To(Equal("example:7"))
	})

	It("reports a connect error when the dial fails and retries are exhausted", func() {
		p.dialErr = errTest
		var got stream.ConnectEvent
		done := make(chan struct{})
		Expect(s.Connect(proactor.Endpoint{Network: "tcp", Address: "example:7"}, stream.ConnectOptions{RetryCount: 2}, func(ev stream.ConnectEvent) {
			got = ev
			close(done)
		})).To(Succeed())
		<-done
		Expect(got.Err).To(HaveOccurred())
		Expect(s.State()).To(Equal(stream.StateClosed))
	})

	It("sends data and completes its callback", func() {
		connect()
		var got stream.SendEvent
		done := make(chan struct{})
		Expect(s.Send([]byte("hello"), stream.SendOptions{Callback: func(ev stream.SendEvent) {
			got = ev
			close(done)
		}})).To(Succeed())
		<-done
		Expect(got.Err).To(BeNil())
		Expect(p.sentChunks).To(HaveLen(1))
		Expect(p.sentChunks[0]).To(Equal([]byte("hello")))
	})

	It("registers a pending read and satisfies it once data arrives", func() {
		connect()
		var got stream.ReceiveEvent
		done := make(chan struct{})
		_, err := s.Receive(stream.ReceiveOptions{MinSize: 4, Callback: func(ev stream.ReceiveEvent) {
			got = ev
			close(done)
		}})
		Expect(err).ToNot(HaveOccurred())

		p.feed([]byte("data"))
		<-done

		Expect(got.Err).To(BeNil())
		Expect(got.Data).To(Equal([]byte("data")))
	})

	It("delivers EOF to a pending read when the peer closes", func() {
		connect()
		var got stream.ReceiveEvent
		done := make(chan struct{})
		_, err := s.Receive(stream.ReceiveOptions{MinSize: 4, Callback: func(ev stream.ReceiveEvent) {
			got = ev
			close(done)
		}})
		Expect(err).ToNot(HaveOccurred())

		p.feedEOF()
		<-done

		Expect(got.Err).To(HaveOccurred())
	})

	It("cancels a queued send by token before it reaches the transport", func() {
		connect()
		p.blockSend = true

		tok1 := uuid.New()
		tok2 := uuid.New()

		var ev1, ev2 stream.SendEvent
		Expect(s.Send([]byte("first"), stream.SendOptions{Token: tok1, HasToken: true, Callback: func(ev stream.SendEvent) { ev1 = ev }})).To(Succeed())
		Expect(s.Send([]byte("second"), stream.SendOptions{Token: tok2, HasToken: true, Callback: func(ev stream.SendEvent) { ev2 = ev }})).To(Succeed())

		Expect(s.CancelByToken(tok2)).To(BeTrue())
		Expect(ev2.Err).To(HaveOccurred())

		p.completeSend()
		Expect(ev1.Err).To(BeNil())
	})

	It("runs an orderly shutdown to completion once the send queue drains", func() {
		connect()
		detached := false
		s.OnClose(func() { detached = true })

		Expect(s.Shutdown(flowctl.DirectionBoth, stream.ModeOrderly)).To(Succeed())
		Expect(detached).To(BeTrue())
		Expect(s.State()).To(Equal(stream.StateClosed))
	})

	It("refuses an over-limit Send with e_WOULD_BLOCK and announces the breach exactly once", func() {
		connect()
		listener := &fakeSessionListener{}
		s.RegisterSessionListener(listener)

		err := s.Send([]byte("12345"), stream.SendOptions{})
		Expect(err).To(HaveOccurred())

		wbErr := liberr.Get(err)
		Expect(wbErr).ToNot(BeNil())
		Expect(wbErr.GetCode()).To(Equal(stream.CodeWouldBlock))
		Expect(p.sentChunks).To(BeEmpty())

		events := listener.writeQueueEvents()
		Expect(events).To(HaveLen(1))
		Expect(events[0].Breach).To(BeTrue())
		Expect(events[0].Size).To(Equal(0))

		err = s.Send([]byte("6"), stream.SendOptions{HighWatermark: 16})
		Expect(err).ToNot(HaveOccurred())
		Expect(p.sentChunks).To(HaveLen(1))
		Expect(listener.writeQueueEvents()).To(HaveLen(1))
	})

	It("satisfies TryReceive synchronously when enough data is already buffered", func() {
		connect()

		n, err := s.TryReceive(context.Background(), make([]byte, 8), stream.ReceiveOptions{MinSize: 4})
		Expect(err).To(HaveOccurred())
		Expect(liberr.Get(err).GetCode()).To(Equal(stream.CodeWouldBlock))
		Expect(n).To(Equal(0))

		p.feed([]byte("data"))

		blob := make([]byte, 8)
		n, err = s.TryReceive(context.Background(), blob, stream.ReceiveOptions{MinSize: 4})
		Expect(err).ToNot(HaveOccurred())
		Expect(blob[:n]).To(Equal([]byte("data")))
	})

	It("shuts down only the send direction, leaving receive open", func() {
		hp := newFakeProactor()
		hs := stream.New(hp, stream.Options{
			Transport:               protocol.NetworkTCP,
			KeepHalfOpen:            true,
			WriteQueueLowWatermark:  1,
			WriteQueueHighWatermark: 4,
		})
		var got stream.ConnectEvent
		done := make(chan struct{})
		Expect(hs.Connect(proactor.Endpoint{Network: "tcp", Address: "example:7"}, stream.ConnectOptions{}, func(ev stream.ConnectEvent) {
			got = ev
			close(done)
		})).To(Succeed())
		<-done
		Expect(got.Err).To(BeNil())

		Expect(hs.Shutdown(flowctl.DirectionSend, stream.ModeOrderly)).To(Succeed())
		Expect(hs.State()).To(Equal(stream.StateConnected))

		err := hs.Send([]byte("x"), stream.SendOptions{})
		Expect(err).To(HaveOccurred())

		var gotRecv stream.ReceiveEvent
		recvDone := make(chan struct{})
		_, err = hs.Receive(stream.ReceiveOptions{MinSize: 4, Callback: func(ev stream.ReceiveEvent) {
			gotRecv = ev
			close(recvDone)
		}})
		Expect(err).ToNot(HaveOccurred())
		hp.feed([]byte("data"))
		<-recvDone
		Expect(gotRecv.Err).To(BeNil())
	})

	It("shuts down send after a remote half-close completes both directions (Scenario 5)", func() {
		hp := newFakeProactor()
		hs := stream.New(hp, stream.Options{
			Transport:               protocol.NetworkTCP,
			KeepHalfOpen:            true,
			WriteQueueLowWatermark:  1,
			WriteQueueHighWatermark: 4,
		})
		done := make(chan struct{})
		Expect(hs.Connect(proactor.Endpoint{Network: "tcp", Address: "example:7"}, stream.ConnectOptions{}, func(stream.ConnectEvent) {
			close(done)
		})).To(Succeed())
		<-done

		detached := false
		hs.OnClose(func() { detached = true })

		_, err := hs.Receive(stream.ReceiveOptions{MinSize: 1, Callback: func(stream.ReceiveEvent) {}})
		Expect(err).ToNot(HaveOccurred())
		hp.feedEOF()

		Expect(hs.State()).To(Equal(stream.StateConnected))

		Expect(hs.Send([]byte("done"), stream.SendOptions{})).To(Succeed())
		Expect(hs.Shutdown(flowctl.DirectionSend, stream.ModeOrderly)).To(Succeed())

		Expect(detached).To(BeTrue())
		Expect(hs.State()).To(Equal(stream.StateClosed))
	})

	It("rejects a second concurrent Connect", func() {
		connect()
		Expect(s.Connect(proactor.Endpoint{}, stream.ConnectOptions{}, nil)).To(HaveOccurred())
	})

	It("clears the detaching flag once the proactor confirms detach", func() {
		connect()
		Expect(s.Shutdown(flowctl.DirectionBoth, stream.ModeImmediate)).To(Succeed())
		Expect(s.Detaching()).To(BeFalse())
	})
})

var errTest = &testDialError{}

type testDialError struct{}

func (e *testDialError) Error() string { return "dial refused" }
