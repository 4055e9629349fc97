package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticForecast(t *testing.T) {
	start := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	fc := SyntheticForecast(0, start, 14)

	t.Run("one entry per day", func(t *testing.T) {
		require.Len(t, fc, 14)
		assert.Equal(t, start, fc[0].Date)
		assert.Equal(t, start.AddDate(0, 0, 13), fc[13].Date)
	})

	t.Run("same seed reproduces the forecast", func(t *testing.T) {
		assert.Equal(t, fc, SyntheticForecast(0, start, 14))
	})

	t.Run("values stay in physical bounds", func(t *testing.T) {
		for _, d := range fc {
			require.GreaterOrEqual(t, d.Precipitation, 0.0)
			require.GreaterOrEqual(t, d.Humidity, 30.0)
			require.LessOrEqual(t, d.Humidity, 100.0)
		}
	})
}

func TestForecastWindow(t *testing.T) {
	fc := Forecast{
		{Humidity: 60, Precipitation: 0, TempMax: 30},
		{Humidity: 70, Precipitation: 2, TempMax: 32},
		{Humidity: 80, Precipitation: 4, TempMax: 34},
	}

	t.Run("averages the requested days", func(t *testing.T) {
		w := fc.Window(0, 3)
		assert.InDelta(t, 70, w.Humidity, 1e-9)
		assert.InDelta(t, 2, w.Rain, 1e-9)
		assert.InDelta(t, 32, w.TempMax, 1e-9)
	})

	t.Run("truncates past the forecast end", func(t *testing.T) {
		w := fc.Window(2, 7)
		assert.InDelta(t, 80, w.Humidity, 1e-9)
	})

	t.Run("empty window yields neutral defaults", func(t *testing.T) {
		w := fc.Window(10, 7)
		assert.Equal(t, defaultAvgHumidity, w.Humidity)
		assert.Equal(t, defaultAvgRain, w.Rain)
		assert.Equal(t, defaultAvgTempMax, w.TempMax)
	})

	t.Run("empty forecast yields neutral defaults", func(t *testing.T) {
		w := Forecast{}.Window(0, 7)
		assert.Equal(t, defaultAvgHumidity, w.Humidity)
	})
}
