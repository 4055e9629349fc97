package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steadyForecast(humidity, tempMax float64, days int) Forecast {
	fc := make(Forecast, 0, days)
	for i := 0; i < days; i++ {
		fc = append(fc, WeatherDay{
			Date:     time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			TempMax:  tempMax,
			Humidity: humidity,
		})
	}
	return fc
}

func TestAssessSpoilage(t *testing.T) {
	t.Run("perishable crop in heat and humidity is high risk", func(t *testing.T) {
		a := AssessSpoilage(SpoilageInput{
			Crop:         "Tomato",
			StorageType:  "Open (Field)",
			TransitHours: 12,
			Forecast:     steadyForecast(90, 38, SpoilageForecastDays),
		})

		assert.Equal(t, RiskHigh, a.Risk)
		assert.Equal(t, "🔴", a.Indicator)
		assert.Equal(t, 1.0, a.Score)
		assert.Equal(t, 100, a.ProbabilityPct)
		assert.Equal(t, 5, a.ShelfLifeDays)
	})

	t.Run("durable grain in cold storage is low risk", func(t *testing.T) {
		a := AssessSpoilage(SpoilageInput{
			Crop:        "Wheat",
			StorageType: "Cold Storage",
			Forecast:    steadyForecast(40, 15, SpoilageForecastDays),
		})

		assert.Equal(t, RiskLow, a.Risk)
		assert.Equal(t, "🟢", a.Indicator)
		assert.Equal(t, 0.0, a.Score)
	})

	t.Run("moderate conditions land in the middle tier", func(t *testing.T) {
		a := AssessSpoilage(SpoilageInput{
			Crop:        "Potato",
			StorageType: "Warehouse",
			Forecast:    steadyForecast(70, 27.5, SpoilageForecastDays),
		})

		// 0.6·0.5 + 0.5·0.5·0.5 + 0.10 storage = 0.525
		assert.Equal(t, RiskMedium, a.Risk)
		assert.InDelta(t, 0.525, a.Score, 1e-9)
		assert.Equal(t, 52, a.ProbabilityPct)
	})

	t.Run("transit exposure saturates at a full day", func(t *testing.T) {
		base := SpoilageInput{Crop: "Onion", StorageType: "Warehouse", Forecast: steadyForecast(60, 28, SpoilageForecastDays)}
		day := base
		day.TransitHours = 24
		twoDays := base
		twoDays.TransitHours = 48

		assert.Equal(t, AssessSpoilage(day).Score, AssessSpoilage(twoDays).Score)
	})

	t.Run("cold storage lowers the score", func(t *testing.T) {
		warehouse := SpoilageInput{Crop: "Grapes", StorageType: "Warehouse", Forecast: steadyForecast(70, 30, SpoilageForecastDays)}
		cold := warehouse
		cold.StorageType = "Cold Storage"

		assert.Less(t, AssessSpoilage(cold).Score, AssessSpoilage(warehouse).Score)
	})

	t.Run("unknown crop and storage use neutral defaults", func(t *testing.T) {
		a := AssessSpoilage(SpoilageInput{
			Crop:        "Durian",
			StorageType: "Rooftop",
			Forecast:    steadyForecast(70, 30, SpoilageForecastDays),
		})

		assert.Equal(t, defaultSpoilageParams.ShelfDays, a.ShelfLifeDays)
		// 0.6·0.5 + 0.5·0.6·0.5 + 0.10 = 0.55
		assert.InDelta(t, 0.55, a.Score, 1e-9)
	})

	t.Run("empty forecast degrades to neutral averages", func(t *testing.T) {
		a := AssessSpoilage(SpoilageInput{Crop: "Rice", StorageType: "Warehouse"})
		assert.Equal(t, defaultAvgHumidity, a.AvgHumidity)
		assert.Equal(t, defaultAvgTempMax, a.AvgTempMax)
	})
}

func TestMitigationsFor(t *testing.T) {
	t.Run("high risk gets the strongest actions first", func(t *testing.T) {
		actions := mitigationsFor(RiskHigh)
		require.Len(t, actions, maxMitigationActions)
		assert.Equal(t, "Use refrigerated transport", actions[0].Action)
		assert.Equal(t, "Move produce to cold storage", actions[1].Action)
		assert.Equal(t, "High", actions[0].Effectiveness)
	})

	t.Run("low risk gets lightweight actions", func(t *testing.T) {
		actions := mitigationsFor(RiskLow)
		require.Len(t, actions, 3)
		assert.Equal(t, "Keep produce dry and shaded", actions[0].Action)
		for _, a := range actions {
			assert.NotEqual(t, "Use refrigerated transport", a.Action)
		}
	})

	t.Run("effectiveness ordering is stable", func(t *testing.T) {
		actions := mitigationsFor(RiskMedium)
		for i := 1; i < len(actions); i++ {
			require.LessOrEqual(t,
				effectivenessRank[actions[i-1].Effectiveness],
				effectivenessRank[actions[i].Effectiveness])
		}
	})
}
