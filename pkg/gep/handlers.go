package gep

import (
	"errors"
	"fmt"

	"github.com/gridedge/gsub/pkg/compact"
	"github.com/gridedge/gsub/pkg/dispatch"
	"github.com/gridedge/gsub/pkg/sigcache"
	"github.com/gridedge/gsub/pkg/telemetry"
	"github.com/gridedge/gsub/pkg/wire"
)

func (s *Subscriber) handleFrame(body []byte) {
	event, err := dispatch.Dispatch(body)
	if err != nil {
		s.emitError(err)
		return
	}
	s.handleEvent(event)
}

func (s *Subscriber) handleEvent(event dispatch.Event) {
	switch event.Kind {
	case dispatch.KindSucceeded:
		s.handleSucceeded(event)
	case dispatch.KindFailed:
		s.emitError(errors.New(event.Message))
	case dispatch.KindDataPacket:
		s.handleDataPacket(event)
	case dispatch.KindDataStartTime:
		s.setDataStartTime(event.StartTime)
	case dispatch.KindProcessingComplete:
		s.emitStatus(event.Message)
	case dispatch.KindSignalIndexCacheUpdated:
		s.handleSignalIndexCacheUpdated(event)
	case dispatch.KindBaseTimesUpdated:
		s.handleBaseTimesUpdated(event)
	case dispatch.KindConfigurationChanged, dispatch.KindNoOp:
		// No payload to act on.
	case dispatch.KindUnknownResponse:
		s.emitError(fmt.Errorf("gep: received unknown response code %#02x", event.UnknownCode))
	}
}

func (s *Subscriber) handleSucceeded(event dispatch.Event) {
	if event.CommandCode == wire.CommandMetadataRefresh {
		s.mu.Lock()
		cb := s.onMetadata
		pump := s.pump
		s.mu.Unlock()
		if cb == nil || pump == nil {
			return
		}
		payload := event.MetadataPayload
		pump.Enqueue("metadata", func() { cb(payload) })
		return
	}
	if event.SubscriptionChanged {
		s.setSubscribed(event.Subscribed)
	}
	s.emitStatus(event.Message)
}

func (s *Subscriber) handleSignalIndexCacheUpdated(event dispatch.Event) {
	s.mu.Lock()
	compressed := s.compressSignalIndexCache
	cache := s.cache
	s.mu.Unlock()

	entries, err := sigcache.Parse(event.SignalIndexCachePayload, compressed)
	if err != nil {
		// Per original_source/DataSubscriber.cpp: drop this update,
		// keep serving the previous cache.
		s.emitError(err)
		return
	}
	cache.Load(entries)
	s.telemetry.Publish(telemetry.NewSignalIndexCacheUpdated(len(entries)))
}

func (s *Subscriber) handleBaseTimesUpdated(event dispatch.Event) {
	s.btMu.Lock()
	s.baseTimes = compact.BaseTimeOffsets{
		Offsets:     event.BaseTimeOffsets,
		ActiveIndex: event.BaseTimeIndex,
	}
	s.btMu.Unlock()
}

// handleDataPacket routes each DataPacket on its own Compressed flag
// (wire.DataPacketFlagCompressed), matching
// original_source/DataSubscriber.cpp's NewMeasurementsDispatcher: the
// flag is per-packet, not a property of the connection.
func (s *Subscriber) handleDataPacket(event dispatch.Event) {
	if event.DataPacketFlags&wire.DataPacketFlagCompressed != 0 {
		_, _, rest, err := compact.ParseDataPacketHeader(event.DataPacketFlags, event.DataPacketBody)
		if err != nil {
			s.emitError(err)
			return
		}

		s.mu.Lock()
		decoder := s.tsscDecoder
		s.mu.Unlock()

		points, unsolicitedReset, err := decoder.Decode(rest)
		if err != nil {
			s.emitError(err)
		}
		if unsolicitedReset {
			s.emitStatus("TSSC decoder observed an unsolicited sequence reset")
		}
		for _, pt := range points {
			s.resolveAndDeliver(pt.PointID, pt.Timestamp, pt.Quality, pt.Value)
		}
		return
	}

	info := s.getSubscriptionInfo()
	measurements, err := compact.Decode(event.DataPacketFlags, event.DataPacketBody, s.getBaseTimes(), s.defaultTimestamp(), info.UseMillisecondResolution)
	if err != nil {
		s.emitError(err)
		return
	}
	for _, m := range measurements {
		s.resolveAndDeliver(m.SignalIndex, m.Timestamp, m.Quality, m.Value)
	}
}

func (s *Subscriber) resolveAndDeliver(signalIndex uint16, timestamp int64, quality uint32, value float32) {
	s.mu.Lock()
	cache := s.cache
	s.mu.Unlock()

	entry, ok := cache.Lookup(signalIndex)
	if !ok {
		s.telemetry.Publish(telemetry.NewMeasurementDropped("unresolved signal index"))
		return
	}
	s.telemetry.Publish(telemetry.NewMeasurementReceived(signalIndex))

	m := Measurement{
		SignalID:  entry.SignalID,
		Source:    entry.Source,
		ID:        entry.ID,
		Timestamp: timestamp,
		Quality:   quality,
		Value:     value,
	}

	s.mu.Lock()
	cb := s.onMeasurement
	pump := s.pump
	s.mu.Unlock()
	if cb == nil || pump == nil {
		return
	}
	pump.Enqueue("measurement", func() { cb(m) })
}

func (s *Subscriber) emitError(err error) {
	s.telemetry.Publish(telemetry.NewErrorOccurred(err, "dispatch", telemetry.SeverityError))
	s.logger.Errorf("%v", err)

	s.mu.Lock()
	cb := s.onError
	pump := s.pump
	s.mu.Unlock()
	if cb == nil || pump == nil {
		return
	}
	pump.Enqueue("error", func() { cb(err) })
}

func (s *Subscriber) emitStatus(message string) {
	s.logger.Infof("%s", message)

	s.mu.Lock()
	cb := s.onStatus
	pump := s.pump
	s.mu.Unlock()
	if cb == nil || pump == nil {
		return
	}
	pump.Enqueue("status", func() { cb(message) })
}
