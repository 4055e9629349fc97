package domain

import (
	"context"
	"math/rand"
	"time"
)

// ForecastProvider supplies a daily forecast for a coordinate.
type ForecastProvider interface {
	DailyForecast(ctx context.Context, coord Coordinate, days int) (Forecast, error)
}

// Neutral window averages substituted when a forecast window is empty.
const (
	defaultAvgHumidity = 65.0
	defaultAvgRain     = 2.0
	defaultAvgTempMax  = 30.0
)

// WeatherDay is one day of a daily forecast.
type WeatherDay struct {
	Date          time.Time `json:"date"`
	TempMax       float64   `json:"temp_max"`
	TempMin       float64   `json:"temp_min"`
	Precipitation float64   `json:"precipitation"`
	Humidity      float64   `json:"humidity"`
}

// Forecast is a run of consecutive daily observations starting at day zero.
type Forecast []WeatherDay

// SyntheticForecast generates a deterministic fallback forecast when the live
// provider is unreachable. A fixed seed keeps degraded responses stable across
// retries.
func SyntheticForecast(seed int64, start time.Time, days int) Forecast {
	rng := rand.New(rand.NewSource(seed))
	fc := make(Forecast, 0, days)
	for i := 0; i < days; i++ {
		tmax := roundTo(28+rng.NormFloat64()*3, 1)
		tmin := roundTo(18+rng.NormFloat64()*2, 1)
		precip := roundTo(max(0, 1+rng.NormFloat64()*3), 1)
		humidity := roundTo(clip(60+rng.NormFloat64()*15, 30, 100), 1)
		fc = append(fc, WeatherDay{
			Date:          start.AddDate(0, 0, i),
			TempMax:       tmax,
			TempMin:       tmin,
			Precipitation: precip,
			Humidity:      humidity,
		})
	}
	return fc
}

// WindowAverages summarizes one slice of a forecast for the scoring engines.
type WindowAverages struct {
	Humidity float64
	Rain     float64
	TempMax  float64
}

// Window averages the forecast days in [start, start+length). Out-of-range
// days are skipped; a fully empty window yields the neutral defaults so
// scoring still produces an answer when the forecast runs short.
func (f Forecast) Window(start, length int) WindowAverages {
	var humSum, rainSum, tempSum float64
	var n int
	for i := start; i < start+length && i < len(f); i++ {
		if i < 0 {
			continue
		}
		humSum += f[i].Humidity
		rainSum += f[i].Precipitation
		tempSum += f[i].TempMax
		n++
	}
	if n == 0 {
		return WindowAverages{
			Humidity: defaultAvgHumidity,
			Rain:     defaultAvgRain,
			TempMax:  defaultAvgTempMax,
		}
	}
	return WindowAverages{
		Humidity: humSum / float64(n),
		Rain:     rainSum / float64(n),
		TempMax:  tempSum / float64(n),
	}
}
