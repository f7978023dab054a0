package hub

import (
	"fmt"
	"time"
)

// FarcasterEpoch is the start of the Farcaster epoch in Unix seconds
// (2021-01-01T00:00:00Z). Message timestamps count seconds from here.
const FarcasterEpoch int64 = 1609459200

// maxFarcasterTime bounds timestamps to the uint32 seconds range
const maxFarcasterTime = int64(1<<32 - 1)

// FromFarcasterTime converts a Farcaster timestamp to a UTC time.Time
func FromFarcasterTime(ts int64) (time.Time, error) {
	if ts < 0 || ts > maxFarcasterTime {
		return time.Time{}, fmt.Errorf("%w: %d", ErrBadTimestamp, ts)
	}
	return time.Unix(FarcasterEpoch+ts, 0).UTC(), nil
}

// ToFarcasterTime converts a time.Time to a Farcaster timestamp
func ToFarcasterTime(t time.Time) (int64, error) {
	ts := t.Unix() - FarcasterEpoch
	if ts < 0 || ts > maxFarcasterTime {
		return 0, fmt.Errorf("%w: %s", ErrBadTimestamp, t.Format(time.RFC3339))
	}
	return ts, nil
}
