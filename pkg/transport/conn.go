package transport

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// CommandConn is the TCP command/response channel: framed reads and
// writes over a single connection, writes serialized by a mutex the
// way xiabin827-gohislip's Conn protects its writer.
type CommandConn struct {
	raw    net.Conn
	reader *FrameReader
	writer *bufio.Writer
	mu     sync.Mutex
}

// DialCommand opens the TCP command channel to addr.
func DialCommand(ctx context.Context, addr string) (*CommandConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial command channel %s: %w", addr, err)
	}
	return NewCommandConn(conn), nil
}

// NewCommandConn wraps an already-established net.Conn.
func NewCommandConn(c net.Conn) *CommandConn {
	return &CommandConn{
		raw:    c,
		reader: NewFrameReader(bufio.NewReader(c), false),
		writer: bufio.NewWriter(c),
	}
}

// ReadFrame blocks for one complete frame payload.
func (c *CommandConn) ReadFrame() ([]byte, error) {
	return c.reader.ReadFrame()
}

// WriteFrame sends one framed command payload.
func (c *CommandConn) WriteFrame(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := WriteFrame(c.writer, payload); err != nil {
		return err
	}
	return c.writer.Flush()
}

// Close closes the underlying connection.
func (c *CommandConn) Close() error {
	return c.raw.Close()
}

// SetReadDeadline forwards to the underlying connection. The
// Subscriber's command-reader loop does not set a deadline.
func (c *CommandConn) SetReadDeadline(t time.Time) error {
	return c.raw.SetReadDeadline(t)
}

// DataConn is the optional UDP data channel: raw datagrams, no framing
// header, bound to a local port advertised to the publisher in the
// subscription's dataChannel connection-string block.
type DataConn struct {
	conn *net.UDPConn
}

// ListenData binds a UDP socket on localPort for receiving the data
// channel. Passing 0 lets the OS choose a port; callers must read back
// LocalPort() to learn what was assigned before building the
// subscription's connection string.
func ListenData(localPort uint16) (*DataConn, error) {
	addr := &net.UDPAddr{Port: int(localPort)}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind data channel on port %d: %w", localPort, err)
	}
	return &DataConn{conn: conn}, nil
}

// LocalPort reports the bound local UDP port.
func (d *DataConn) LocalPort() uint16 {
	return uint16(d.conn.LocalAddr().(*net.UDPAddr).Port)
}

// ReadDatagram reads one UDP datagram into buf, returning the number of
// bytes read. buf should be sized at wire.MaxPacketSize.
func (d *DataConn) ReadDatagram(buf []byte) (int, error) {
	n, _, err := d.conn.ReadFromUDP(buf)
	return n, err
}

// Close closes the UDP socket.
func (d *DataConn) Close() error {
	return d.conn.Close()
}
