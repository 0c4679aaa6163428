package rest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampFractionalSeconds(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01T18:30:00.123Z"`), &ts))
	require.Equal(t, time.Date(2025, 6, 1, 18, 30, 0, 123_000_000, time.UTC), ts.Time)
}

func TestTimestampWholeSeconds(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01T18:30:00+02:00"`), &ts))
	require.Equal(t, 18, ts.Hour())
}

func TestTimestampNoLayoutMatchesIsHardFailure(t *testing.T) {
	var ts Timestamp
	err := json.Unmarshal([]byte(`"June 1st, 2025"`), &ts)
	require.Error(t, err)
	require.True(t, ts.IsZero(), "failed parse must not default to a usable time")
}

func TestTimestampRoundTrip(t *testing.T) {
	in := Timestamp{Time: time.Date(2025, 6, 1, 18, 30, 0, 500_000_000, time.UTC)}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Timestamp
	require.NoError(t, json.Unmarshal(data, &out))
	require.True(t, in.Equal(out.Time))
}
