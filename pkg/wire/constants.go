// Package wire holds the GEP wire-protocol constants and byte-order helpers:
// frame markers, command/response codes, data packet flags, and operational
// mode bits. The command, response and operational-mode values are this
// module's own numbering, not copied from a canonical protocol header;
// CommandSubscribe alone is pinned (0x08).
package wire

// CommandFrameMarker precedes every command frame sent on the TCP command
// channel. Only the payload-size field that follows it is interpreted by
// default; transport.NewFrameReader's validateMarker flag enables a
// stricter check.
var CommandFrameMarker = [4]byte{0xAA, 0xBB, 0xCC, 0xDD}

// CommandHeaderSize is the marker (4 bytes) plus the little-endian payload
// size (4 bytes) that prefixes every command frame.
const CommandHeaderSize = 8

// ResponseHeaderSize is the reserved word (4 bytes) plus the little-endian
// payload size (4 bytes) that prefixes every response frame.
const ResponseHeaderSize = 8

// Server command codes (client -> server). Subscribe must stay 0x08:
// a status message quotes it literally ("server command 0x08").
const (
	CommandConnect                     byte = 0x00
	CommandMetadataRefresh             byte = 0x01
	CommandRotateCipherKeys            byte = 0x02
	CommandUpdateProcessingInterval    byte = 0x03
	CommandDefineOperationalModes      byte = 0x04
	CommandConfirmNotification         byte = 0x05
	CommandConfirmBufferBlock          byte = 0x06
	CommandPublishCommandMeasurements  byte = 0x07
	CommandSubscribe                   byte = 0x08
	CommandUnsubscribe                 byte = 0x09
	CommandAuthenticate                byte = 0x0A
	CommandUserCommand00               byte = 0xD0
)

// UserCommand returns the code for UserCommand00..0F, n in [0,0x0F].
func UserCommand(n byte) byte {
	return CommandUserCommand00 + (n & 0x0F)
}

// Server response codes (server -> client).
const (
	ResponseSucceeded               byte = 0x80
	ResponseFailed                  byte = 0x81
	ResponseDataPacket               byte = 0x82
	ResponseDataStartTime            byte = 0x83
	ResponseProcessingComplete        byte = 0x84
	ResponseUpdateSignalIndexCache    byte = 0x85
	ResponseUpdateBaseTimes          byte = 0x86
	ResponseUpdateCipherKeys         byte = 0x87
	ResponseConfigurationChanged      byte = 0x88
	ResponseBufferBlock              byte = 0x89
	ResponseNotify                   byte = 0x8A
	ResponseNoOp                     byte = 0x8B
	ResponseUserResponse00           byte = 0xE0
)

// UserResponse returns the code for UserResponse00..0F, n in [0,0x0F].
func UserResponse(n byte) byte {
	return ResponseUserResponse00 + (n & 0x0F)
}

// Data packet flags (u8 bitfield), carried in the first byte of a
// DataPacket response body.
const (
	DataPacketFlagNoFlags     byte = 0x00
	DataPacketFlagSynchronized byte = 0x01
	DataPacketFlagCompact      byte = 0x02
	DataPacketFlagCompressed   byte = 0x80
)

// Compact-measurement flags, carried per-measurement inside a Compact
// (non-TSSC) DataPacket.
const (
	CompactFlagCalculated     byte = 0x01
	CompactFlagDiscarded      byte = 0x02
	CompactFlagBaseTimeOffset byte = 0x20
	CompactFlagTimeIndex      byte = 0x40
	CompactFlagIncludeTime    byte = 0x80
)

// Operational mode bits (u32 bitfield, big-endian on the wire), negotiated
// once per connection via DefineOperationalModes.
const (
	OperationalModeCompressPayloadData      uint32 = 1 << 5
	OperationalModeCompressSignalIndexCache uint32 = 1 << 6
	OperationalModeCompressMetadata         uint32 = 1 << 7
	OperationalModeUseCommonSerialization    uint32 = 1 << 24
	OperationalModeEncodingMask              uint32 = 0x03 << 8
	OperationalModeEncodingUTF8              uint32 = 0 << 8
	OperationalModeCompressionGZip           uint32 = 1 << 16
	OperationalModeCompressionTSSC           uint32 = 1 << 17
)

// TSSC packet layout constants.
const (
	TSSCVersion byte = 85
)

// MaxPacketSize bounds a single UDP datagram read on the optional data
// channel.
const MaxPacketSize = 32768

// MaxStreamFrameSize bounds a single TCP command/response frame. GZip'd
// SignalIndexCache updates and DataPacket responses routinely exceed a
// UDP datagram's size, so the stream channel gets its own, much larger
// cap rather than reusing MaxPacketSize.
const MaxStreamFrameSize = 64 * 1024 * 1024

// DefaultDataChannelLocalPort is SubscriptionInfo's default UDP port.
const DefaultDataChannelLocalPort uint16 = 9500
