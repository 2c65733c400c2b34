// Package dispatch implements the ResponseDispatcher: a pure function
// from a response frame body to a tagged Event, via a single switch
// over the response code.
package dispatch

import (
	"fmt"

	"github.com/gridedge/gsub/pkg/protoerr"
	"github.com/gridedge/gsub/pkg/wire"
)

// Kind discriminates the Event variants produced by Dispatch.
type Kind int

const (
	KindSucceeded Kind = iota
	KindFailed
	KindDataPacket
	KindDataStartTime
	KindProcessingComplete
	KindSignalIndexCacheUpdated
	KindBaseTimesUpdated
	KindConfigurationChanged
	KindNoOp
	KindUnknownResponse
)

// Event is the tagged result of dispatching one response frame body.
// Only the fields relevant to Kind are populated.
type Event struct {
	Kind Kind

	CommandCode byte
	Message     string

	// Succeeded(Subscribe|Unsubscribe) only.
	SubscriptionChanged bool
	Subscribed          bool

	// Succeeded(MetadataRefresh) only: opaque, forwarded unchanged.
	MetadataPayload []byte

	// DataPacket only.
	DataPacketFlags byte
	DataPacketBody  []byte

	// DataStartTime only.
	StartTime int64

	// SignalIndexCacheUpdated only: still GZip-wrapped if negotiated;
	// pkg/sigcache.Parse handles decompression.
	SignalIndexCachePayload []byte

	// BaseTimesUpdated only.
	BaseTimeIndex   int32
	BaseTimeOffsets [2]int64

	// UnknownResponse only.
	UnknownCode byte
}

// Dispatch parses one response frame body: `{responseCode, commandCode,
// payload}`, and routes it to the matching Event. It is a pure function:
// no state is read or mutated. An "other" response code is not a Go
// error — it is reported through the ordinary error-message callback
// path as KindUnknownResponse, not treated as fatal.
func Dispatch(frameBody []byte) (Event, error) {
	if len(frameBody) < 2 {
		return Event{}, protoerr.NewProtocolError("dispatch", "frame body too short: %d bytes", len(frameBody))
	}
	responseCode := frameBody[0]
	commandCode := frameBody[1]
	payload := frameBody[2:]

	switch responseCode {
	case wire.ResponseSucceeded:
		return handleSucceeded(commandCode, payload), nil
	case wire.ResponseFailed:
		return Event{
			Kind:        KindFailed,
			CommandCode: commandCode,
			Message:     fmt.Sprintf("Received failure code in response to server command 0x%02X: %s", commandCode, payload),
		}, nil
	case wire.ResponseDataPacket:
		if len(payload) < 1 {
			return Event{}, protoerr.NewProtocolError("dispatch", "data packet payload empty")
		}
		return Event{Kind: KindDataPacket, DataPacketFlags: payload[0], DataPacketBody: payload[1:]}, nil
	case wire.ResponseDataStartTime:
		if len(payload) < 8 {
			return Event{}, protoerr.NewProtocolError("dispatch", "data start time payload too short: %d bytes", len(payload))
		}
		return Event{Kind: KindDataStartTime, StartTime: wire.Int64BE(payload)}, nil
	case wire.ResponseProcessingComplete:
		return Event{Kind: KindProcessingComplete, Message: string(payload)}, nil
	case wire.ResponseUpdateSignalIndexCache:
		return Event{Kind: KindSignalIndexCacheUpdated, SignalIndexCachePayload: payload}, nil
	case wire.ResponseUpdateBaseTimes:
		if len(payload) < 4+8+8 {
			return Event{}, protoerr.NewProtocolError("dispatch", "base times payload too short: %d bytes", len(payload))
		}
		return Event{
			Kind:            KindBaseTimesUpdated,
			BaseTimeIndex:   wire.Int32BE(payload[0:4]),
			BaseTimeOffsets: [2]int64{wire.Int64BE(payload[4:12]), wire.Int64BE(payload[12:20])},
		}, nil
	case wire.ResponseConfigurationChanged:
		return Event{Kind: KindConfigurationChanged}, nil
	case wire.ResponseNoOp:
		return Event{Kind: KindNoOp}, nil
	default:
		return Event{Kind: KindUnknownResponse, UnknownCode: responseCode}, nil
	}
}

func handleSucceeded(commandCode byte, payload []byte) Event {
	if commandCode == wire.CommandMetadataRefresh {
		return Event{Kind: KindSucceeded, CommandCode: commandCode, MetadataPayload: payload}
	}

	msg := fmt.Sprintf("Received success code in response to server command 0x%02X: %s", commandCode, payload)
	ev := Event{Kind: KindSucceeded, CommandCode: commandCode, Message: msg}
	if commandCode == wire.CommandSubscribe || commandCode == wire.CommandUnsubscribe {
		ev.SubscriptionChanged = true
		ev.Subscribed = commandCode == wire.CommandSubscribe
	}
	return ev
}
