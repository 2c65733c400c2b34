package subscription

import (
	"strings"
	"testing"

	"github.com/gridedge/gsub/pkg/geptypes"
	"github.com/gridedge/gsub/pkg/wire"
)

func TestBuildConnectionStringIncludesAssemblyInfo(t *testing.T) {
	info := geptypes.DefaultSubscriptionInfo()
	s := BuildConnectionString(info)
	if !strings.Contains(s, "assemblyInfo={source=gsub;") {
		t.Fatalf("missing assemblyInfo block: %s", s)
	}
	if strings.Contains(s, "dataChannel=") {
		t.Fatalf("dataChannel block present without UDP requested: %s", s)
	}
}

func TestBuildConnectionStringIncludesDataChannelWhenUDPRequested(t *testing.T) {
	info := geptypes.DefaultSubscriptionInfo()
	info.UDPDataChannel = true
	info.DataChannelLocalPort = 9600
	s := BuildConnectionString(info)
	if !strings.Contains(s, "dataChannel={localport=9600};") {
		t.Fatalf("missing dataChannel block: %s", s)
	}
}

func TestBuildConnectionStringPreservesThrottledKeySpelling(t *testing.T) {
	info := geptypes.DefaultSubscriptionInfo()
	info.Throttled = true
	s := BuildConnectionString(info)
	if !strings.Contains(s, "trackLatestMeasurements=true;") {
		t.Fatalf("expected trackLatestMeasurements key, got: %s", s)
	}
}

func TestBuildSubscribePayloadLayout(t *testing.T) {
	info := geptypes.DefaultSubscriptionInfo()
	payload := BuildSubscribePayload(info)

	if payload[0]&wire.DataPacketFlagCompact == 0 {
		t.Fatal("expected Compact flag set")
	}
	size := wire.Uint32BE(payload[1:5])
	if int(size) != len(payload)-5 {
		t.Fatalf("connectionStringSize = %d, want %d", size, len(payload)-5)
	}
	if string(payload[5:]) != BuildConnectionString(info) {
		t.Fatal("payload connection string does not match BuildConnectionString output")
	}
}

func TestOperationalModesAlwaysIncludesBaseline(t *testing.T) {
	info := geptypes.DefaultSubscriptionInfo()
	modes := OperationalModes(info, false, false, false)
	for _, bit := range []uint32{wire.OperationalModeCompressionGZip, wire.OperationalModeUseCommonSerialization} {
		if modes&bit == 0 {
			t.Fatalf("expected baseline bit %#x set in %#x", bit, modes)
		}
	}
}

func TestOperationalModesTSSCOnlyWithoutUDP(t *testing.T) {
	info := geptypes.DefaultSubscriptionInfo()
	modes := OperationalModes(info, true, false, false)
	if modes&wire.OperationalModeCompressionTSSC == 0 {
		t.Fatal("expected TSSC bit set when TCP data channel and useTSSC=true")
	}

	info.UDPDataChannel = true
	modes = OperationalModes(info, true, false, false)
	if modes&wire.OperationalModeCompressionTSSC != 0 {
		t.Fatal("TSSC must not be negotiated over a UDP data channel")
	}
}
