// Package subscription builds GEP connection strings and frames the
// Subscribe/Unsubscribe commands and operational-mode negotiation that
// drive a subscription.
package subscription

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gridedge/gsub/pkg/geptypes"
	"github.com/gridedge/gsub/pkg/version"
	"github.com/gridedge/gsub/pkg/wire"
)

// BuildConnectionString renders info as the semicolon-separated
// `key=value` connection string the publisher expects, with a nested
// assemblyInfo block always present and a dataChannel block present
// only when UDP was requested.
func BuildConnectionString(info geptypes.SubscriptionInfo) string {
	var b strings.Builder

	writeKV(&b, "remotelySynchronized", boolStr(info.RemotelySynchronized))
	writeKV(&b, "trackLatestMeasurements", boolStr(info.Throttled)) // preserved key spelling for server compatibility
	writeKV(&b, "includeTime", boolStr(info.IncludeTime))
	writeKV(&b, "lagTime", strconv.FormatFloat(info.LagTime, 'f', -1, 64))
	writeKV(&b, "leadTime", strconv.FormatFloat(info.LeadTime, 'f', -1, 64))
	writeKV(&b, "useLocalClockAsRealTime", boolStr(info.UseLocalClockAsRealTime))
	writeKV(&b, "useMillisecondResolution", boolStr(info.UseMillisecondResolution))
	writeKV(&b, "processingInterval", strconv.FormatInt(int64(info.ProcessingInterval), 10))
	if info.FilterExpression != "" {
		writeKV(&b, "filterExpression", info.FilterExpression)
	}
	if info.StartTime != "" {
		writeKV(&b, "startTimeConstraint", info.StartTime)
	}
	if info.StopTime != "" {
		writeKV(&b, "stopTimeConstraint", info.StopTime)
	}
	if info.ConstraintParameters != "" {
		writeKV(&b, "timeConstraintParameters", info.ConstraintParameters)
	}

	bi := version.Info()
	fmt.Fprintf(&b, "assemblyInfo={source=gsub; version=%s; buildDate=%s};", bi.Version, bi.Built)

	if info.UDPDataChannel {
		fmt.Fprintf(&b, "dataChannel={localport=%d};", info.DataChannelLocalPort)
	}

	if info.ExtraConnectionStringParameters != "" {
		b.WriteString(info.ExtraConnectionStringParameters)
		if !strings.HasSuffix(info.ExtraConnectionStringParameters, ";") {
			b.WriteByte(';')
		}
	}

	return b.String()
}

func writeKV(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte(';')
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// DataPacketFlags computes the Subscribe command's dataPacketFlags
// byte from the subscription info: Compact is always requested
// (TSSC is negotiated separately via operational modes, not this
// byte), Synchronized only when remotely synchronized.
func DataPacketFlags(info geptypes.SubscriptionInfo) byte {
	flags := wire.DataPacketFlagCompact
	if info.RemotelySynchronized {
		flags |= wire.DataPacketFlagSynchronized
	}
	return flags
}

// BuildSubscribePayload frames the Subscribe command body:
// `{u8 dataPacketFlags; u32 BE connectionStringSize; utf8 bytes}`.
func BuildSubscribePayload(info geptypes.SubscriptionInfo) []byte {
	connStr := []byte(BuildConnectionString(info))

	payload := make([]byte, 1+4+len(connStr))
	payload[0] = DataPacketFlags(info)
	wire.PutUint32BE(payload[1:5], uint32(len(connStr)))
	copy(payload[5:], connStr)
	return payload
}

// BuildUnsubscribePayload is the (empty) Unsubscribe command body.
func BuildUnsubscribePayload() []byte {
	return nil
}

// OperationalModes computes the operational-modes bitfield sent via
// DefineOperationalModes. GZip, UTF8 and UseCommonSerializationFormat
// are always set; the rest are negotiated from info and whether TSSC
// compression is requested for the TCP data channel.
func OperationalModes(info geptypes.SubscriptionInfo, useTSSC, compressMetadata, compressSignalIndexCache bool) uint32 {
	modes := wire.OperationalModeCompressionGZip |
		wire.OperationalModeEncodingUTF8 |
		wire.OperationalModeUseCommonSerialization

	if !info.UDPDataChannel {
		modes |= wire.OperationalModeCompressPayloadData
		if useTSSC {
			modes |= wire.OperationalModeCompressionTSSC
		}
	}
	if compressMetadata {
		modes |= wire.OperationalModeCompressMetadata
	}
	if compressSignalIndexCache {
		modes |= wire.OperationalModeCompressSignalIndexCache
	}
	return modes
}
