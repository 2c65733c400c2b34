// Package testutil collects small test doubles shared across the
// module's package tests: a scripted fake standing in for the real
// remote peer, and a capturing stand-in for a callback/telemetry sink.
package testutil

import (
	"net"
)

// FakeServer is a scripted TCP peer bound to loopback, standing in for
// a GEP publisher in Subscriber-level tests: the test drives it by
// reading whatever the client sent and writing back canned frames,
// instead of mocking an interface (the command channel is a raw
// net.Conn, not an interface gsub defines).
type FakeServer struct {
	Listener net.Listener
	Addr     string
}

// NewFakeServer starts listening on loopback with an OS-assigned port.
func NewFakeServer() (*FakeServer, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	return &FakeServer{Listener: l, Addr: l.Addr().String()}, nil
}

// Accept blocks for the next inbound connection.
func (f *FakeServer) Accept() (net.Conn, error) {
	return f.Listener.Accept()
}

func (f *FakeServer) Close() error {
	return f.Listener.Close()
}
