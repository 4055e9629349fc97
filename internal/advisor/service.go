// Package advisor orchestrates the harvest, mandi, and spoilage engines:
// it resolves inputs, fetches supporting data, absorbs provider failures,
// and publishes served recommendations for downstream analytics.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrichain/advisory-service/internal/domain"
	"github.com/agrichain/advisory-service/internal/observability"
)

// PriceSource serves the mandi price dataset.
type PriceSource interface {
	Series() ([]domain.PriceRecord, error)
}

// EventPublisher records served advisories. A nil publisher disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.AdvisoryEvent) error
}

// Service wires the advisory engines to their data sources.
type Service struct {
	prices    PriceSource
	weather   domain.ForecastProvider
	publisher EventPublisher
	location  *time.Location
	topN      int
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates the advisory service. publisher may be nil.
func New(prices PriceSource, weather domain.ForecastProvider, publisher EventPublisher, location *time.Location, topN int, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		prices:    prices,
		weather:   weather,
		publisher: publisher,
		location:  location,
		topN:      topN,
		logger:    logger,
		metrics:   metrics,
	}
}

// HarvestRequest asks when to harvest one field.
type HarvestRequest struct {
	Crop       string
	District   string
	SowingDate time.Time
}

// Validate reports the first invalid field.
func (r HarvestRequest) Validate() error {
	if r.Crop == "" {
		return errors.New("crop is required")
	}
	if r.SowingDate.IsZero() {
		return errors.New("sowing_date is required")
	}
	return nil
}

// MandiRequest asks where to sell one lot.
type MandiRequest struct {
	Crop        string
	District    string
	QuantityQtl float64
	TopN        int
}

func (r MandiRequest) Validate() error {
	if r.Crop == "" {
		return errors.New("crop is required")
	}
	if r.QuantityQtl <= 0 {
		return errors.New("quantity_qtl must be positive")
	}
	return nil
}

// SpoilageRequest asks how risky storing or moving one lot is.
type SpoilageRequest struct {
	Crop         string
	District     string
	StorageType  string
	TransitHours float64
}

func (r SpoilageRequest) Validate() error {
	if r.Crop == "" {
		return errors.New("crop is required")
	}
	if r.TransitHours < 0 {
		return errors.New("transit_hours must not be negative")
	}
	return nil
}

// ContextRequest asks for the full farm briefing used to ground assistants.
type ContextRequest struct {
	Crop         string
	District     string
	QuantityQtl  float64
	StorageType  string
	TransitHours float64
	SowingDate   time.Time
}

func (r ContextRequest) Validate() error {
	if r.Crop == "" {
		return errors.New("crop is required")
	}
	if r.SowingDate.IsZero() {
		return errors.New("sowing_date is required")
	}
	if r.QuantityQtl <= 0 {
		return errors.New("quantity_qtl must be positive")
	}
	return nil
}

// Harvest recommends a harvest window and publishes the served advisory.
func (s *Service) Harvest(ctx context.Context, req HarvestRequest) (domain.HarvestRecommendation, error) {
	rec, err := s.computeHarvest(ctx, req)
	if err != nil {
		return domain.HarvestRecommendation{}, err
	}
	s.publish(ctx, domain.EngineHarvest, req.Crop, req.District, rec)
	return rec, nil
}

// Mandis ranks markets for a lot and publishes the served advisory.
func (s *Service) Mandis(ctx context.Context, req MandiRequest) ([]domain.MandiOption, error) {
	ranked, err := s.computeMandis(ctx, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EngineMandi, req.Crop, req.District, ranked)
	return ranked, nil
}

// Spoilage assesses a lot's spoilage risk and publishes the served advisory.
func (s *Service) Spoilage(ctx context.Context, req SpoilageRequest) (domain.SpoilageAssessment, error) {
	assessment, err := s.computeSpoilage(ctx, req)
	if err != nil {
		return domain.SpoilageAssessment{}, err
	}
	s.publish(ctx, domain.EngineSpoilage, req.Crop, req.District, assessment)
	return assessment, nil
}

func (s *Service) computeHarvest(ctx context.Context, req HarvestRequest) (rec domain.HarvestRecommendation, err error) {
	defer s.observe(domain.EngineHarvest, time.Now())(&err)
	if err = req.Validate(); err != nil {
		return domain.HarvestRecommendation{}, err
	}

	series, err := s.prices.Series()
	if err != nil {
		return domain.HarvestRecommendation{}, fmt.Errorf("load price series: %w", err)
	}

	today := domain.Today(s.location)
	rec = domain.RecommendHarvest(domain.HarvestInput{
		Crop:       req.Crop,
		District:   req.District,
		SowingDate: req.SowingDate,
		Today:      today,
		Forecast:   s.forecast(ctx, req.District, domain.HarvestForecastDays, today),
		Index:      domain.BuildWeeklyIndex(domain.FilterCrop(series, req.Crop)),
	})
	return rec, nil
}

func (s *Service) computeMandis(ctx context.Context, req MandiRequest) (ranked []domain.MandiOption, err error) {
	defer s.observe(domain.EngineMandi, time.Now())(&err)
	if err = req.Validate(); err != nil {
		return nil, err
	}

	series, err := s.prices.Series()
	if err != nil {
		return nil, fmt.Errorf("load price series: %w", err)
	}

	if _, known := domain.DistrictCoordinate(req.District); !known {
		s.logger.Warn("unknown district, ranking from default", "district", req.District, "default", domain.DefaultDistrict)
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.topN
	}
	return domain.RankMandis(domain.MandiRankInput{
		Crop:        req.Crop,
		District:    req.District,
		QuantityQtl: req.QuantityQtl,
		TopN:        topN,
		Series:      domain.FilterCrop(series, req.Crop),
	}), nil
}

func (s *Service) computeSpoilage(ctx context.Context, req SpoilageRequest) (assessment domain.SpoilageAssessment, err error) {
	defer s.observe(domain.EngineSpoilage, time.Now())(&err)
	if err = req.Validate(); err != nil {
		return domain.SpoilageAssessment{}, err
	}

	today := domain.Today(s.location)
	return domain.AssessSpoilage(domain.SpoilageInput{
		Crop:         req.Crop,
		StorageType:  req.StorageType,
		TransitHours: req.TransitHours,
		Forecast:     s.forecast(ctx, req.District, domain.SpoilageForecastDays, today),
	}), nil
}

// CheckReadiness reports whether the service can serve advisories: the price
// dataset must load. Weather is not checked because the engines degrade to a
// synthetic forecast without it.
func (s *Service) CheckReadiness(_ context.Context) error {
	if _, err := s.prices.Series(); err != nil {
		return fmt.Errorf("price dataset: %w", err)
	}
	return nil
}

// forecast fetches the live forecast for a district, substituting a synthetic
// one when the provider is down. Advisories keep flowing through outages.
func (s *Service) forecast(ctx context.Context, district string, days int, today time.Time) domain.Forecast {
	coord, known := domain.DistrictCoordinate(district)
	if !known {
		s.logger.Warn("unknown district, using default coordinates", "district", district, "default", domain.DefaultDistrict)
	}

	fc, err := s.weather.DailyForecast(ctx, coord, days)
	if err != nil {
		s.logger.Warn("weather fetch failed, using synthetic forecast", "district", district, "error", err)
		s.metrics.WeatherFallbacks.Inc()
		return domain.SyntheticForecast(0, today, days)
	}
	return fc
}

// observe times one engine run and counts its outcome.
func (s *Service) observe(engine string, start time.Time) func(err *error) {
	return func(err *error) {
		s.metrics.AdvisoryDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
		outcome := "success"
		if *err != nil {
			outcome = "error"
		}
		s.metrics.AdvisoryRequests.WithLabelValues(engine, outcome).Inc()
	}
}

// publish records a served advisory. Failures are logged, never surfaced:
// the farmer's answer does not depend on the analytics pipeline.
func (s *Service) publish(ctx context.Context, engine, crop, district string, payload any) {
	if s.publisher == nil {
		return
	}
	event, err := domain.NewAdvisoryEvent(engine, crop, district, payload)
	if err != nil {
		s.logger.Error("build advisory event", "engine", engine, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish advisory event", "engine", engine, "error", err)
	}
}
