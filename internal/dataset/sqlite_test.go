package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costpulse/internal/domain/cpih"
	"costpulse/pkg/errors"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func monthRecord(year int, month time.Month, headline float64) *cpih.IndexRecord {
	return &cpih.IndexRecord{
		Date: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		Values: map[cpih.Category]float64{
			cpih.CategoryFood:       4.1,
			cpih.CategoryHousing:    6.9,
			cpih.CategoryTransport:  1.2,
			cpih.CategoryHealth:     5.4,
			cpih.CategoryRecreation: 3.3,
			cpih.CategoryMisc:       2.8,
		},
		Headline: headline,
	}
}

func TestSQLiteStore_LatestPicksNewestRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Inserted out of order.
	require.NoError(t, store.Insert(ctx, monthRecord(2025, time.February, 3.8)))
	require.NoError(t, store.Insert(ctx, monthRecord(2025, time.April, 4.0)))
	require.NoError(t, store.Insert(ctx, monthRecord(2025, time.March, 3.9)))

	record, err := store.Latest(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Apr 2025", record.MonthLabel())
	assert.Equal(t, 4.0, record.Headline)
	require.Len(t, record.Values, cpih.CategoryCount)
	assert.Equal(t, 6.9, record.Values[cpih.CategoryHousing])
}

func TestSQLiteStore_EmptyDataset(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Latest(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDataUnavailable), "got %v", err)
}

func TestSQLiteStore_ObservesNewReleaseNextCall(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, monthRecord(2025, time.February, 3.8)))
	first, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Feb 2025", first.MonthLabel())

	require.NoError(t, store.Insert(ctx, monthRecord(2025, time.March, 3.9)))
	second, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Mar 2025", second.MonthLabel())
}

func TestSQLiteStore_CorrectedReleaseUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, monthRecord(2025, time.March, 3.9)))
	corrected := monthRecord(2025, time.March, 4.2)
	require.NoError(t, store.Insert(ctx, corrected))

	record, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.2, record.Headline)
}
