package gep

import (
	"fmt"

	"github.com/gridedge/gsub/pkg/subscription"
	"github.com/gridedge/gsub/pkg/transport"
	"github.com/gridedge/gsub/pkg/wire"
)

func (s *Subscriber) sendCommand(code byte, payload []byte) error {
	s.mu.Lock()
	conn := s.cmdConn
	s.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	frame := make([]byte, 1+len(payload))
	frame[0] = code
	copy(frame[1:], payload)
	if err := conn.WriteFrame(frame); err != nil {
		s.emitError(err)
		return err
	}
	return nil
}

// sendDefineOperationalModes negotiates the connection's operational
// modes immediately after connect, before any subscribe, per
// original_source/DataSubscriber.cpp ordering. TSSC compression is
// requested whenever the current SubscriptionInfo does not request a
// UDP data channel; the choice is remembered in usingTSSC so Subscribe
// knows whether to reset the TSSC decoder, but each DataPacket's own
// Compressed flag (not this remembered value) decides how handlers.go
// actually decodes it.
func (s *Subscriber) sendDefineOperationalModes() error {
	info := s.getSubscriptionInfo()
	usingTSSC := !info.UDPDataChannel

	s.mu.Lock()
	s.usingTSSC = usingTSSC
	compressMetadata := s.compressMetadata
	compressSignalIndexCache := s.compressSignalIndexCache
	s.mu.Unlock()

	modes := subscription.OperationalModes(info, usingTSSC, compressMetadata, compressSignalIndexCache)
	payload := make([]byte, 4)
	wire.PutUint32BE(payload, modes)
	return s.sendCommand(wire.CommandDefineOperationalModes, payload)
}

// Subscribe sends a Subscribe command built from info. If info requests
// a UDP data channel, it is bound first and the assigned local port is
// folded into the connection string. subscribed only flips to true once
// the publisher's Succeeded response is dispatched.
func (s *Subscriber) Subscribe(info SubscriptionInfo) error {
	if !s.Connected() {
		return ErrNotConnected
	}

	if info.UDPDataChannel {
		dc, err := transport.ListenData(info.DataChannelLocalPort)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBindFailed, err)
		}
		info.DataChannelLocalPort = dc.LocalPort()

		s.mu.Lock()
		s.dataConn = dc
		s.mu.Unlock()

		s.wg.Add(1)
		go s.dataReaderLoop(dc)
	}

	s.mu.Lock()
	s.info = info
	usingTSSC := s.usingTSSC
	decoder := s.tsscDecoder
	s.mu.Unlock()
	if usingTSSC && decoder != nil {
		decoder.RequestReset()
	}

	return s.sendCommand(wire.CommandSubscribe, subscription.BuildSubscribePayload(info))
}

// Unsubscribe shuts down the UDP data reader (if any) and sends
// Unsubscribe; subscribed clears once the Succeeded response arrives.
func (s *Subscriber) Unsubscribe() error {
	if !s.Connected() {
		return ErrNotConnected
	}

	s.mu.Lock()
	dataConn := s.dataConn
	s.dataConn = nil
	s.mu.Unlock()
	if dataConn != nil {
		_ = dataConn.Close()
	}

	return s.sendCommand(wire.CommandUnsubscribe, subscription.BuildUnsubscribePayload())
}
