package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/agrichain/advisory-service/internal/domain"
	"github.com/agrichain/advisory-service/internal/observability"
)

// Client implements domain.ForecastProvider using the Open-Meteo forecast API.
// A circuit breaker sheds requests while the provider is failing so advisory
// latency stays bounded; callers fall back to a synthetic forecast.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timezone   string
	logger     *slog.Logger
	metrics    *observability.Metrics
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates an Open-Meteo client.
func NewClient(baseURL, timezone string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:  baseURL,
		timezone: timezone,
		logger:   logger,
		metrics:  metrics,
		breaker:  cb,
	}
}

// DailyForecast fetches up to days of daily aggregates for a coordinate.
func (c *Client) DailyForecast(ctx context.Context, coord domain.Coordinate, days int) (domain.Forecast, error) {
	params := url.Values{
		"latitude":      {fmt.Sprintf("%.4f", coord.Lat)},
		"longitude":     {fmt.Sprintf("%.4f", coord.Lon)},
		"daily":         {"temperature_2m_max,temperature_2m_min,precipitation_sum,relative_humidity_2m_max"},
		"forecast_days": {strconv.Itoa(days)},
		"timezone":      {c.timezone},
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (any, error) {
		return c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	})
	c.metrics.WeatherAPIDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch err {
		case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests:
			c.metrics.WeatherFetches.WithLabelValues("rejected").Inc()
		default:
			c.metrics.WeatherFetches.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	c.metrics.WeatherFetches.WithLabelValues("success").Inc()
	return result.(domain.Forecast), nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.Forecast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return payload.toForecast()
}

// Open-Meteo API response types.

type response struct {
	Daily daily `json:"daily"`
}

type daily struct {
	Time          []string  `json:"time"`
	TempMax       []float64 `json:"temperature_2m_max"`
	TempMin       []float64 `json:"temperature_2m_min"`
	Precipitation []float64 `json:"precipitation_sum"`
	Humidity      []float64 `json:"relative_humidity_2m_max"`
}

func (r response) toForecast() (domain.Forecast, error) {
	d := r.Daily
	n := len(d.Time)
	if n == 0 {
		return nil, fmt.Errorf("empty forecast payload")
	}
	if len(d.TempMax) != n || len(d.TempMin) != n || len(d.Precipitation) != n || len(d.Humidity) != n {
		return nil, fmt.Errorf("ragged forecast payload: %d days, %d/%d/%d/%d values",
			n, len(d.TempMax), len(d.TempMin), len(d.Precipitation), len(d.Humidity))
	}

	fc := make(domain.Forecast, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse("2006-01-02", d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("parse forecast date %q: %w", d.Time[i], err)
		}
		fc = append(fc, domain.WeatherDay{
			Date:          date,
			TempMax:       d.TempMax[i],
			TempMin:       d.TempMin[i],
			Precipitation: d.Precipitation[i],
			Humidity:      d.Humidity[i],
		})
	}
	return fc, nil
}
