package gep

import "time"

// ticksPerSecond and unixEpochTicks convert between Go's Unix-based
// clock and the wire format's 100-ns ticks since 0001-01-01 (the .NET
// DateTime epoch), so a measurement with no timestamp of its own never
// surfaces a zero time.Time.
const (
	ticksPerSecond = 10_000_000
	unixEpochTicks = 621355968000000000
)

func nowTicks() int64 {
	now := time.Now().UTC()
	return unixEpochTicks + now.Unix()*ticksPerSecond + int64(now.Nanosecond())/100
}
