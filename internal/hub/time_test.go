package hub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/hub-shuttle/internal/hub"
)

func TestFromFarcasterTime(t *testing.T) {
	epoch, err := hub.FromFarcasterTime(0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), epoch)

	later, err := hub.FromFarcasterTime(120_000_000)
	require.NoError(t, err)
	assert.Equal(t, hub.FarcasterEpoch+120_000_000, later.Unix())

	_, err = hub.FromFarcasterTime(-1)
	assert.ErrorIs(t, err, hub.ErrBadTimestamp)

	_, err = hub.FromFarcasterTime(int64(1)<<32 + 10)
	assert.ErrorIs(t, err, hub.ErrBadTimestamp)
}

func TestToFarcasterTime(t *testing.T) {
	ts, err := hub.ToFarcasterTime(time.Date(2021, 1, 1, 0, 0, 1, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ts)

	_, err = hub.ToFarcasterTime(time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.ErrorIs(t, err, hub.ErrBadTimestamp)
}

func TestFarcasterTime_RoundTrip(t *testing.T) {
	instant, err := hub.FromFarcasterTime(98_765_432)
	require.NoError(t, err)

	ts, err := hub.ToFarcasterTime(instant)
	require.NoError(t, err)
	assert.Equal(t, int64(98_765_432), ts)
}
