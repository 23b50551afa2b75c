package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, SessionTypeConsultation.DurationMinutes())
	assert.Equal(t, 60, SessionTypeCouples.DurationMinutes())
	assert.Equal(t, 60, SessionTypeFamily.DurationMinutes())
	assert.Equal(t, 50, SessionTypeIndividual.DurationMinutes())
	assert.Equal(t, 50, SessionTypeGroup.DurationMinutes())
	// Unknown types get the default length.
	assert.Equal(t, 50, SessionType("Workshop").DurationMinutes())
}

func TestRateMultiplier(t *testing.T) {
	assert.InDelta(t, 1.2, SessionTypeConsultation.RateMultiplier(), 0.001)
	assert.InDelta(t, 0.6, SessionTypeGroup.RateMultiplier(), 0.001)
	assert.InDelta(t, 1.0, SessionTypeIndividual.RateMultiplier(), 0.001)
}

func TestStatusBillable(t *testing.T) {
	assert.True(t, SessionStatusCompleted.Billable())
	assert.True(t, SessionStatusRescheduled.Billable())
	assert.False(t, SessionStatusCancelled.Billable())
	assert.False(t, SessionStatusNoShow.Billable())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 8)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-08"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d.String(), parsed.String())
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDateWeekend(t *testing.T) {
	assert.True(t, NewDate(2024, time.March, 9).Weekend())  // Saturday
	assert.True(t, NewDate(2024, time.March, 10).Weekend()) // Sunday
	assert.False(t, NewDate(2024, time.March, 8).Weekend()) // Friday
}

func TestParseBucket(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly"} {
		b, err := ParseBucket(valid)
		require.NoError(t, err)
		assert.Equal(t, Bucket(valid), b)
	}

	b, err := ParseBucket("")
	require.NoError(t, err)
	assert.Equal(t, BucketDaily, b)

	_, err = ParseBucket("hourly")
	assert.Error(t, err)
}
