package gep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gridedge/gsub/pkg/callback"
	"github.com/gridedge/gsub/pkg/compact"
	"github.com/gridedge/gsub/pkg/reconnect"
	"github.com/gridedge/gsub/pkg/sigcache"
	"github.com/gridedge/gsub/pkg/telemetry"
	"github.com/gridedge/gsub/pkg/transport"
	"github.com/gridedge/gsub/pkg/tssc"
	"github.com/gridedge/gsub/pkg/wire"
)

// Connect resolves and dials the command channel, spawns the
// CallbackPump and command-reader goroutine, and sends the initial
// DefineOperationalModes negotiation. Fails with ErrAlreadyConnected
// if a connection is already up.
func (s *Subscriber) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	cfg := s.cfg
	s.mu.Unlock()

	addr := fmt.Sprintf("%s:%d", cfg.Hostname, cfg.Port)
	conn, err := transport.DialCommand(ctx, addr)
	if err != nil {
		s.telemetry.Publish(telemetry.NewErrorOccurred(err, "connect", telemetry.SeverityError))
		return &ConnectError{Host: cfg.Hostname, Port: cfg.Port, Err: err}
	}

	pump := callback.NewPump()
	pump.Start()

	s.mu.Lock()
	s.cmdConn = conn
	s.cache = sigcache.New()
	s.tsscDecoder = tssc.NewDecoder()
	s.pump = pump
	s.connected = true
	s.subscribed = false
	s.disconnecting = false
	s.mu.Unlock()

	s.btMu.Lock()
	s.baseTimes = compact.BaseTimeOffsets{}
	s.btMu.Unlock()

	s.wg.Add(1)
	go s.commandReaderLoop(conn)

	if err := s.sendDefineOperationalModes(); err != nil {
		s.logger.Warnf("failed to send operational modes: %v", err)
	}

	s.logger.Infof("connected to %s", addr)
	s.telemetry.Publish(telemetry.NewConnectionStatusChanged(true))
	return nil
}

// Disconnect tears the connection down per spec.md's ConnectionLifecycle
// ordering: release the callback queue, close sockets, join every
// reader goroutine, reset the queue, fire connectionTerminated, and
// finally invoke (or cancel) auto-reconnect. Idempotent: calling it
// again on an already-disconnected Subscriber is a no-op.
func (s *Subscriber) Disconnect(autoReconnect bool) error {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return nil
	}
	s.disconnecting = true
	s.connected = false
	s.subscribed = false
	cmdConn := s.cmdConn
	dataConn := s.dataConn
	pump := s.pump
	s.cmdConn = nil
	s.dataConn = nil
	s.pump = nil
	s.mu.Unlock()

	if pump != nil {
		pump.Stop()
	}
	if cmdConn != nil {
		_ = cmdConn.Close()
	}
	if dataConn != nil {
		_ = dataConn.Close()
	}
	s.wg.Wait()
	if pump != nil {
		pump.Reset()
	}

	s.telemetry.Publish(telemetry.NewConnectionStatusChanged(false))
	s.logger.Infof("disconnected")

	s.mu.Lock()
	cb := s.onConnectionTerminated
	s.mu.Unlock()
	if cb != nil {
		cb()
	}

	cfg := s.getConnectorConfig()
	if autoReconnect && cfg.AutoReconnect {
		go s.runReconnect()
	} else {
		s.mu.Lock()
		r := s.reconnector
		s.mu.Unlock()
		if r != nil {
			r.Cancel()
		}
	}

	s.mu.Lock()
	s.disconnecting = false
	s.mu.Unlock()
	return nil
}

func (s *Subscriber) runReconnect() {
	info := s.getSubscriptionInfo()
	cfg := s.getConnectorConfig()

	var attempt int
	onErr := func(err error) {
		attempt++
		s.telemetry.Publish(telemetry.NewReconnectAttempted(attempt, err))
		s.emitError(fmt.Errorf("gep: reconnect attempt %d failed: %w", attempt, err))
	}

	r := reconnect.New(cfg.MaxRetries, time.Duration(cfg.RetryIntervalMs)*time.Millisecond, s.Connect, onErr)
	s.mu.Lock()
	s.reconnector = r
	s.mu.Unlock()

	if !r.Run(context.Background()) {
		return
	}
	if err := s.Subscribe(info); err != nil {
		s.emitError(fmt.Errorf("gep: re-subscribe after reconnect failed: %w", err))
	}
}

func (s *Subscriber) commandReaderLoop(conn *transport.CommandConn) {
	defer s.wg.Done()
	for {
		body, err := conn.ReadFrame()
		if err != nil {
			s.handleChannelError(err)
			return
		}
		s.handleFrame(body)
	}
}

func (s *Subscriber) dataReaderLoop(conn *transport.DataConn) {
	defer s.wg.Done()
	buf := make([]byte, wire.MaxPacketSize)
	for {
		n, err := conn.ReadDatagram(buf)
		if err != nil {
			// Expected on Close() during Unsubscribe/Disconnect; the
			// UDP channel's own errors never terminate the TCP
			// connection, per spec.md's concurrency model.
			return
		}
		s.handleFrame(buf[:n])
	}
}

func (s *Subscriber) handleChannelError(err error) {
	if s.isDisconnecting() {
		return
	}
	if !errors.Is(err, io.EOF) {
		s.emitError(fmt.Errorf("gep: command channel read failed: %w", err))
	}
	go func() { _ = s.Disconnect(true) }()
}
