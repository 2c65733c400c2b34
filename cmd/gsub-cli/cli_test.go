package main

import (
	"testing"

	"github.com/gridedge/gsub/pkg/telemetry"
)

func TestShouldPrintStatusFirstSnapshotAlwaysPrints(t *testing.T) {
	c := &CLI{}
	if !c.shouldPrintStatus(telemetry.Snapshot{}) {
		t.Fatal("expected the first snapshot to print")
	}
}

func TestShouldPrintStatusSuppressesUnchangedSnapshot(t *testing.T) {
	c := &CLI{lastSnapshot: telemetry.Snapshot{MeasurementsReceived: 5, Connected: true, Subscribed: true}}
	unchanged := telemetry.Snapshot{MeasurementsReceived: 5, Connected: true, Subscribed: true}
	if c.shouldPrintStatus(unchanged) {
		t.Fatal("expected an unchanged snapshot to be suppressed")
	}
}

func TestShouldPrintStatusOnCountChange(t *testing.T) {
	c := &CLI{lastSnapshot: telemetry.Snapshot{MeasurementsReceived: 5, Connected: true, Subscribed: true}}
	changed := telemetry.Snapshot{MeasurementsReceived: 6, Connected: true, Subscribed: true}
	if !c.shouldPrintStatus(changed) {
		t.Fatal("expected a changed measurement count to print")
	}
}

func TestShouldPrintStatusOnNewErrors(t *testing.T) {
	c := &CLI{lastSnapshot: telemetry.Snapshot{MeasurementsReceived: 5, ErrorsTotal: 1, Connected: true, Subscribed: true}}
	changed := telemetry.Snapshot{MeasurementsReceived: 5, ErrorsTotal: 2, Connected: true, Subscribed: true}
	if !c.shouldPrintStatus(changed) {
		t.Fatal("expected a new error to print")
	}
}

func TestShouldPrintStatusOnConnectionChange(t *testing.T) {
	c := &CLI{lastSnapshot: telemetry.Snapshot{MeasurementsReceived: 5, Connected: true, Subscribed: true}}
	changed := telemetry.Snapshot{MeasurementsReceived: 5, Connected: false, Subscribed: false}
	if !c.shouldPrintStatus(changed) {
		t.Fatal("expected a connection status change to print")
	}
}
