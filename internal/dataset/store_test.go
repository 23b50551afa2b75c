package dataset

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/therapy-report-api/internal/generator"
	"github.com/jwalitptl/therapy-report-api/internal/model"
	"github.com/jwalitptl/therapy-report-api/pkg/metrics"
)

// Prometheus collectors register globally, so share one set across
// the package's tests.
var testMetrics = metrics.NewMetrics("test_dataset_store")

func sampleRecords(t *testing.T) []model.SessionRecord {
	t.Helper()
	svc := generator.NewService(rand.New(rand.NewSource(77)))
	records, err := svc.Generate(generator.GenerateRequest{
		Count:     50,
		StartDate: model.NewDate(2024, time.February, 1),
		EndDate:   model.NewDate(2024, time.April, 30),
	})
	require.NoError(t, err)
	require.NotEmpty(t, records)
	return records
}

func TestCSVRoundTrip(t *testing.T) {
	records := sampleRecords(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	loaded, err := ReadCSV(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, loaded, len(records))

	for i := range records {
		assert.Equal(t, records[i].SessionID, loaded[i].SessionID)
		assert.Equal(t, records[i].SessionDate.String(), loaded[i].SessionDate.String())
		assert.Equal(t, records[i].SessionTime, loaded[i].SessionTime)
		assert.Equal(t, records[i].SessionType, loaded[i].SessionType)
		assert.Equal(t, records[i].DurationMinutes, loaded[i].DurationMinutes)
		assert.Equal(t, records[i].Status, loaded[i].Status)
		assert.Equal(t, records[i].Amount, loaded[i].Amount)
		assert.Equal(t, records[i].Notes, loaded[i].Notes)
	}

	// Serializing the re-parsed set reproduces the bytes exactly.
	var again bytes.Buffer
	require.NoError(t, WriteCSV(&again, loaded))
	assert.Equal(t, buf.String(), again.String())
}

func TestReadCSVKeepsUnknownCategories(t *testing.T) {
	csv := "session_id,therapist_id,therapist_name,client_id,session_date,session_time,session_type,duration_minutes,status,amount,notes\n" +
		"S0001,T001,Dr. Sarah Johnson,C001,2024-03-04,10:00,Workshop,45,Pending,120.00,edited by hand\n"

	records, err := ReadCSV(bytes.NewReader([]byte(csv)))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.SessionType("Workshop"), records[0].SessionType)
	assert.Equal(t, model.SessionStatus("Pending"), records[0].Status)
}

func TestReadCSVRejectsBadRows(t *testing.T) {
	csv := "session_id,therapist_id,therapist_name,client_id,session_date,session_time,session_type,duration_minutes,status,amount,notes\n" +
		"S0001,T001,Dr. Sarah Johnson,C001,not-a-date,10:00,Individual Therapy,50,Completed,150.00,ok\n"

	_, err := ReadCSV(bytes.NewReader([]byte(csv)))
	assert.Error(t, err)
}

func TestStoreLoadMissingFileIsNoData(t *testing.T) {
	store := NewStore(time.Minute, nil)
	missing := filepath.Join(t.TempDir(), "absent.csv")

	_, err := store.LoadCSV(missing)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = store.LoadJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestStoreCSVSaveLoad(t *testing.T) {
	store := NewStore(time.Minute, nil)
	records := sampleRecords(t)
	path := filepath.Join(t.TempDir(), "sessions.csv")

	require.NoError(t, store.SaveCSV(path, records))

	loaded, err := store.LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, loaded, len(records))
}

func TestStoreJSONSaveLoad(t *testing.T) {
	store := NewStore(time.Minute, nil)
	records := sampleRecords(t)
	path := filepath.Join(t.TempDir(), "sessions.json")

	require.NoError(t, store.SaveJSON(path, records))

	loaded, err := store.LoadJSON(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(records))
	assert.Equal(t, records[0].SessionID, loaded[0].SessionID)
	assert.Equal(t, records[0].SessionDate.String(), loaded[0].SessionDate.String())
}

func TestStoreSaveInvalidatesCache(t *testing.T) {
	store := NewStore(time.Hour, nil)
	records := sampleRecords(t)
	path := filepath.Join(t.TempDir(), "sessions.csv")

	require.NoError(t, store.SaveCSV(path, records))
	first, err := store.LoadCSV(path)
	require.NoError(t, err)

	require.NoError(t, store.SaveCSV(path, records[:10]))
	second, err := store.LoadCSV(path)
	require.NoError(t, err)

	assert.Len(t, first, len(records))
	assert.Len(t, second, 10)
}

func TestStoreLoadCountsOutcomes(t *testing.T) {
	store := NewStore(time.Hour, testMetrics)
	records := sampleRecords(t)
	path := filepath.Join(t.TempDir(), "sessions.csv")

	loads := func(status string) float64 {
		return testutil.ToFloat64(testMetrics.DatasetLoads.WithLabelValues("csv", status))
	}
	noData := loads("no_data")
	success := loads("success")
	hits := loads("cache_hit")

	_, err := store.LoadCSV(path)
	require.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, noData+1, loads("no_data"))

	require.NoError(t, store.SaveCSV(path, records))
	_, err = store.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, success+1, loads("success"))

	_, err = store.LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, hits+1, loads("cache_hit"))
}

func TestSourceLoadsConfiguredPath(t *testing.T) {
	store := NewStore(time.Minute, nil)
	records := sampleRecords(t)
	path := filepath.Join(t.TempDir(), "sessions.csv")
	require.NoError(t, store.SaveCSV(path, records))

	source := NewSource(store, path)
	loaded, err := source.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, len(records))
}
