package generator

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/therapy-report-api/internal/model"
)

func seeded(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)))
}

func TestGenerateInvalidRange(t *testing.T) {
	svc := seeded(1)

	_, err := svc.Generate(GenerateRequest{
		Count:     10,
		StartDate: model.NewDate(2024, time.March, 10),
		EndDate:   model.NewDate(2024, time.March, 1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerateNeverOnWeekends(t *testing.T) {
	svc := seeded(42)

	records, err := svc.Generate(GenerateRequest{
		Count:     500,
		StartDate: model.NewDate(2024, time.January, 1),
		EndDate:   model.NewDate(2024, time.December, 31),
	})
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, r := range records {
		wd := r.SessionDate.Weekday()
		assert.NotEqual(t, time.Saturday, wd, "session %s on Saturday", r.SessionID)
		assert.NotEqual(t, time.Sunday, wd, "session %s on Sunday", r.SessionID)
	}
}

func TestGenerateWeekendCandidatesDropped(t *testing.T) {
	// Mon 2024-03-04 through Sun 2024-03-10: five weekdays, two
	// weekend days. Weekend draws are discarded, not resampled.
	svc := seeded(7)

	records, err := svc.Generate(GenerateRequest{
		Count:     100,
		StartDate: model.NewDate(2024, time.March, 4),
		EndDate:   model.NewDate(2024, time.March, 10),
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(records), 100)
	for _, r := range records {
		assert.NotEqual(t, "2024-03-09", r.SessionDate.String())
		assert.NotEqual(t, "2024-03-10", r.SessionDate.String())
	}
}

func TestGenerateBillingInvariant(t *testing.T) {
	svc := seeded(99)

	records, err := svc.Generate(GenerateRequest{
		Count:     1000,
		StartDate: model.NewDate(2024, time.January, 1),
		EndDate:   model.NewDate(2024, time.June, 30),
	})
	require.NoError(t, err)

	for _, r := range records {
		switch r.Status {
		case model.SessionStatusCancelled, model.SessionStatusNoShow:
			assert.Zero(t, r.Amount, "session %s should not be billed", r.SessionID)
		default:
			assert.Greater(t, r.Amount, 0.0, "session %s should be billed", r.SessionID)
		}
	}
}

func TestGenerateDurationDeterminedByType(t *testing.T) {
	svc := seeded(3)

	records, err := svc.Generate(GenerateRequest{
		Count:     500,
		StartDate: model.NewDate(2024, time.January, 1),
		EndDate:   model.NewDate(2024, time.March, 31),
	})
	require.NoError(t, err)

	for _, r := range records {
		assert.Equal(t, r.SessionType.DurationMinutes(), r.DurationMinutes)
	}
}

func TestGenerateAmountFollowsRateTable(t *testing.T) {
	svc := seeded(11)

	rates := make(map[string]float64, len(Therapists))
	for _, th := range Therapists {
		rates[th.ID] = th.HourlyRate
	}

	records, err := svc.Generate(GenerateRequest{
		Count:     500,
		StartDate: model.NewDate(2024, time.January, 1),
		EndDate:   model.NewDate(2024, time.March, 31),
	})
	require.NoError(t, err)

	for _, r := range records {
		if !r.Status.Billable() {
			continue
		}
		want := rates[r.TherapistID] * r.SessionType.RateMultiplier()
		assert.InDelta(t, want, r.Amount, 0.005, "session %s", r.SessionID)
	}
}

func TestGenerateFieldFormats(t *testing.T) {
	svc := seeded(5)

	sessionID := regexp.MustCompile(`^S\d{4}$`)
	clientID := regexp.MustCompile(`^C\d{3}$`)
	sessionTime := regexp.MustCompile(`^(09|1[0-7]):(00|30)$`)

	records, err := svc.Generate(GenerateRequest{
		Count:     200,
		StartDate: model.NewDate(2024, time.April, 1),
		EndDate:   model.NewDate(2024, time.April, 30),
	})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range records {
		assert.Regexp(t, sessionID, r.SessionID)
		assert.Regexp(t, clientID, r.ClientID)
		assert.Regexp(t, sessionTime, r.SessionTime)
		assert.False(t, seen[r.SessionID], "duplicate session id %s", r.SessionID)
		seen[r.SessionID] = true
		assert.NotEmpty(t, r.Notes)
	}
}

func TestGenerateSeededReproducibility(t *testing.T) {
	req := GenerateRequest{
		Count:     300,
		StartDate: model.NewDate(2024, time.February, 1),
		EndDate:   model.NewDate(2024, time.May, 31),
	}

	first, err := seeded(1234).Generate(req)
	require.NoError(t, err)
	second, err := seeded(1234).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateStatusDistributionRoughlyMatchesWeights(t *testing.T) {
	svc := seeded(2024)

	records, err := svc.Generate(GenerateRequest{
		Count:     5000,
		StartDate: model.NewDate(2024, time.January, 1),
		EndDate:   model.NewDate(2024, time.December, 31),
	})
	require.NoError(t, err)

	completed := 0
	for _, r := range records {
		if r.Status == model.SessionStatusCompleted {
			completed++
		}
	}
	rate := float64(completed) / float64(len(records))
	assert.InDelta(t, 0.75, rate, 0.05)
}
