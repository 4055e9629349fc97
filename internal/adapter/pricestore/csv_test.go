package pricestore

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrichain/advisory-service/internal/domain"
	"github.com/agrichain/advisory-service/internal/observability"
)

func testStore(path string) *Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(path, logger, observability.NewMetricsForTesting())
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	series := domain.GenerateSyntheticSeries(domain.DefaultSeed)[:100]

	require.NoError(t, WriteDataset(path, series))
	got, err := ReadDataset(path)
	require.NoError(t, err)

	require.Len(t, got, len(series))
	assert.Equal(t, series[0].Market, got[0].Market)
	assert.Equal(t, series[0].ModalPrice, got[0].ModalPrice)
	assert.True(t, series[0].Date.Equal(got[0].Date))
}

func TestStore_GeneratesMissingDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "prices.csv")
	s := testStore(path)

	series, err := s.Series()
	require.NoError(t, err)
	assert.Len(t, series, len(domain.Crops)*len(domain.Mandis)*domain.SeriesDays)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_MemoizesSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	s := testStore(path)

	first, err := s.Series()
	require.NoError(t, err)

	// Removing the file does not disturb the cached copy.
	require.NoError(t, os.Remove(path))
	second, err := s.Series()
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}

func TestStore_ReusesExistingDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	custom := []domain.PriceRecord{{
		State: domain.DefaultState, District: "Pune", Market: "Pune APMC",
		Commodity: "Tomato", Date: domain.SeriesAnchorDate,
		MinPrice: 900, MaxPrice: 1100, ModalPrice: 1000,
	}}
	require.NoError(t, WriteDataset(path, custom))

	series, err := testStore(path).Series()
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 1000, series[0].ModalPrice)
}

func TestReadDataset_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte("State,District,Market,Commodity,Arrival_Date,Min_Price,Max_Price,Modal_Price\nMaharashtra,Pune,Pune APMC,Tomato,not-a-date,1,2,3\n"), 0o644))

	_, err := ReadDataset(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arrival date")
}

func TestReadDataset_MissingFile(t *testing.T) {
	_, err := ReadDataset(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
