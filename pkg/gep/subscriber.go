package gep

import (
	"sync"

	"github.com/gridedge/gsub/pkg/callback"
	"github.com/gridedge/gsub/pkg/compact"
	"github.com/gridedge/gsub/pkg/logging"
	"github.com/gridedge/gsub/pkg/reconnect"
	"github.com/gridedge/gsub/pkg/sigcache"
	"github.com/gridedge/gsub/pkg/telemetry"
	"github.com/gridedge/gsub/pkg/transport"
	"github.com/gridedge/gsub/pkg/tssc"
)

// Subscriber is the GEP subscription client's public API: it owns the
// command/data connections, the three thread/goroutine roles (command
// reader, data reader, callback pump) and the SignalIndexCache/TSSC/
// base-time state shared between them.
type Subscriber struct {
	mu sync.Mutex

	cfg  ConnectorConfig
	info SubscriptionInfo

	logger    *logging.Logger
	telemetry telemetry.Publisher

	// compressMetadata and compressSignalIndexCache decide which
	// optional payload compressions are requested in
	// DefineOperationalModes. There's no user-facing knob for them in
	// SubscriptionInfo: New turns compressSignalIndexCache on (so the
	// cache update exercises compress/gzip) and leaves compressMetadata
	// off.
	compressMetadata         bool
	compressSignalIndexCache bool

	connected     bool
	subscribed    bool
	disconnecting bool

	cmdConn  *transport.CommandConn
	dataConn *transport.DataConn

	cache       *sigcache.Cache
	tsscDecoder *tssc.Decoder
	usingTSSC   bool

	btMu      sync.RWMutex
	baseTimes compact.BaseTimeOffsets

	dataStartTime int64

	pump        *callback.Pump
	wg          sync.WaitGroup
	reconnector *reconnect.Reconnector

	onMeasurement          MeasurementFunc
	onStatus               StatusFunc
	onError                ErrorFunc
	onMetadata             MetadataFunc
	onConnectionTerminated ConnectionTerminatedFunc
}

// New builds a Subscriber from its connector and subscription
// configuration. logger and pub may be nil: a default stderr logger
// and a no-op telemetry publisher are used respectively.
func New(cfg ConnectorConfig, info SubscriptionInfo, logger *logging.Logger, pub telemetry.Publisher) *Subscriber {
	if logger == nil {
		logger = logging.New(LoggingConfig{})
	}
	if pub == nil {
		pub = telemetry.NewNoopPublisher()
	}
	return &Subscriber{
		cfg:                      cfg,
		info:                     info,
		logger:                   logger,
		telemetry:                pub,
		compressSignalIndexCache: true,
	}
}

// SetConnectorConfig replaces the connector configuration used by the
// next Connect call. Changing it while connected has no effect on the
// current connection.
func (s *Subscriber) SetConnectorConfig(cfg ConnectorConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// SetSubscriptionInfo replaces the subscription description used by
// the next DefineOperationalModes sent on Connect and by the
// re-subscribe after an automatic reconnect. Subscribe does not read
// it: Subscribe uses its own argument and stores that in its place.
// Safe to call before Connect or between Subscribe calls.
func (s *Subscriber) SetSubscriptionInfo(info SubscriptionInfo) {
	s.mu.Lock()
	s.info = info
	s.mu.Unlock()
}

func (s *Subscriber) getSubscriptionInfo() SubscriptionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

func (s *Subscriber) getConnectorConfig() ConnectorConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Connected reports whether the command channel is currently up.
func (s *Subscriber) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Subscribed reports whether a Subscribe has been acknowledged with no
// intervening Unsubscribe.
func (s *Subscriber) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribed
}

func (s *Subscriber) setSubscribed(v bool) {
	s.mu.Lock()
	s.subscribed = v
	s.mu.Unlock()
	s.telemetry.Publish(telemetry.NewSubscriptionStatusChanged(v))
}

func (s *Subscriber) isDisconnecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnecting
}

func (s *Subscriber) setDataStartTime(t int64) {
	s.mu.Lock()
	s.dataStartTime = t
	s.mu.Unlock()
}

// DataStartTime reports the most recent DataStartTime tick, or 0 if
// none has been received yet.
func (s *Subscriber) DataStartTime() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataStartTime
}

func (s *Subscriber) getBaseTimes() compact.BaseTimeOffsets {
	s.btMu.RLock()
	defer s.btMu.RUnlock()
	return s.baseTimes
}

func (s *Subscriber) defaultTimestamp() int64 {
	return nowTicks()
}
