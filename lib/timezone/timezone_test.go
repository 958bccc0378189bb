package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToday(t *testing.T) {
	today := Today()
	require.Equal(t, Location, today.Location())
	require.Equal(t, 0, today.Hour())
	require.Equal(t, 0, today.Minute())

	// Today falls on the same calendar day as Now
	now := Now()
	require.Equal(t, now.Year(), today.Year())
	require.Equal(t, now.YearDay(), today.YearDay())
}

func TestNowPinned(t *testing.T) {
	require.Equal(t, "America/Denver", Location.String())
	require.Equal(t, Location, Now().Location())
	require.WithinDuration(t, time.Now(), Now(), time.Second)
}
