package domain

import (
	"math"
	"time"
)

// Confidence tiers for a harvest recommendation.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

const (
	// HarvestForecastDays is how much forecast the engine wants; shorter
	// forecasts degrade to neutral window averages.
	HarvestForecastDays = 14

	harvestCandidateDays  = 7
	harvestWeatherWindow  = 7
	harvestWindowSpanDays = 5
	neutralComponentScore = 0.5
)

// Harvest score weights. The three components are each bounded to [0,1].
const (
	priceWeight   = 0.5
	weatherWeight = 0.3
	soilWeight    = 0.2
)

// HarvestInput carries everything the harvest engine scores on. Today must be
// midnight in the farmer's timezone; Forecast day zero must align with it.
type HarvestInput struct {
	Crop       string
	District   string
	SowingDate time.Time
	Today      time.Time
	Forecast   Forecast
	Index      WeeklyIndex
}

// ScoreComponents breaks a harvest score into its weighted signals,
// each rounded to three decimals.
type ScoreComponents struct {
	Price   float64 `json:"price"`
	Weather float64 `json:"weather"`
	Soil    float64 `json:"soil"`
}

// PricePoint is one day of the price outlook chart.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// HarvestRecommendation is the engine's answer: an optimal harvest window with
// a confidence tier and an expected price premium over harvesting immediately.
type HarvestRecommendation struct {
	Crop               string          `json:"crop"`
	District           string          `json:"district"`
	WindowStart        time.Time       `json:"window_start"`
	WindowEnd          time.Time       `json:"window_end"`
	Score              float64         `json:"score"`
	Confidence         string          `json:"confidence"`
	ExpectedPremiumPct int             `json:"expected_premium_pct"`
	Components         ScoreComponents `json:"components"`
	Forecast           Forecast        `json:"weather"`
	Chart              []PricePoint    `json:"chart"`
	Reasons            []string        `json:"reasons"`
}

// RecommendHarvest scores the next seven candidate start days and picks the
// earliest day with the maximum combined score. The recommended window spans
// five days from that start.
func RecommendHarvest(in HarvestInput) HarvestRecommendation {
	maturity := MaturityDays(in.Crop)
	daysSinceSowing := calendarDaysSince(in.SowingDate, in.Today)

	bestOffset := 0
	bestScore := -1.0
	var bestComponents ScoreComponents

	for d := 0; d < harvestCandidateDays; d++ {
		candidate := in.Today.AddDate(0, 0, d)
		_, week := candidate.ISOWeek()

		ps := priceSeasonalityScore(in.Index, week)
		ws := weatherScore(in.Forecast.Window(d, harvestWeatherWindow))
		ss := soilReadinessScore(daysSinceSowing+d, maturity)

		total := priceWeight*ps + weatherWeight*ws + soilWeight*ss
		if total > bestScore {
			bestScore = total
			bestOffset = d
			bestComponents = ScoreComponents{
				Price:   roundTo(ps, 3),
				Weather: roundTo(ws, 3),
				Soil:    roundTo(ss, 3),
			}
		}
	}

	score := roundTo(bestScore, 3)
	confidence, premium := confidenceTier(score)
	start := in.Today.AddDate(0, 0, bestOffset)

	rec := HarvestRecommendation{
		Crop:               in.Crop,
		District:           in.District,
		WindowStart:        start,
		WindowEnd:          start.AddDate(0, 0, harvestWindowSpanDays),
		Score:              score,
		Confidence:         confidence,
		ExpectedPremiumPct: premium,
		Components:         bestComponents,
		Forecast:           in.Forecast,
		Chart:              priceOutlookChart(in.Index, in.Today),
	}
	rec.Reasons = harvestReasons(in.Crop, daysSinceSowing, rec.Components)
	return rec
}

// calendarDaysSince counts whole calendar days from sowing to today in
// today's location. Sowing dates arrive as UTC midnights while today is a
// regional midnight; a raw duration diff would shave a day off east of UTC.
func calendarDaysSince(sowing, today time.Time) int {
	s := sowing.In(today.Location())
	sowMidnight := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, today.Location())
	return int(math.Round(today.Sub(sowMidnight).Hours() / 24))
}

// priceSeasonalityScore normalizes the candidate week's price against the
// index range. An absent week borrows the earliest indexed week; an empty or
// flat index scores neutral.
func priceSeasonalityScore(idx WeeklyIndex, week int) float64 {
	if len(idx) == 0 {
		return neutralComponentScore
	}
	wp, ok := idx[week]
	if !ok {
		wp = idx[idx.Weeks()[0]]
	}
	min, max := idx.Bounds()
	if max == min {
		return neutralComponentScore
	}
	return clip((wp-min)/(max-min), 0, 1)
}

// weatherScore favors dry, mild conditions: low humidity, little rain, and
// temperatures near 27°C.
func weatherScore(w WindowAverages) float64 {
	hs := clip((90-w.Humidity)/60, 0, 1)
	rs := clip((10-w.Rain)/10, 0, 1)
	ts := clip(1-math.Abs(w.TempMax-27)/20, 0, 1)
	return 0.5*hs + 0.35*rs + 0.15*ts
}

// soilReadinessScore peaks at full maturity (ratio 1.0), ramps up before 85%
// maturity, and decays sharply once the crop is more than 10% overdue.
func soilReadinessScore(daysSinceSowing, maturityDays int) float64 {
	ratio := float64(daysSinceSowing) / float64(maturityDays)
	switch {
	case ratio < 0.85:
		return ratio / 0.85 * 0.6
	case ratio <= 1.10:
		return 1 - 2*math.Abs(ratio-1)
	default:
		return max(0, 1-3*(ratio-1.10))
	}
}

// confidenceTier maps a score to a tier and the expected premium percentage.
// Premium multipliers are tier-specific so a Low-confidence answer never
// promises a large gain.
func confidenceTier(score float64) (string, int) {
	switch {
	case score >= 0.65:
		return ConfidenceHigh, int(math.Round(score * 28))
	case score >= 0.45:
		return ConfidenceMedium, int(math.Round(score * 18))
	default:
		return ConfidenceLow, int(math.Round(score * 10))
	}
}

// priceOutlookChart projects the weekly index onto the next fourteen calendar
// days. Days in unindexed weeks show the index mean; an empty index flattens
// to the fallback price.
func priceOutlookChart(idx WeeklyIndex, today time.Time) []PricePoint {
	points := make([]PricePoint, 0, HarvestForecastDays)
	for d := 0; d < HarvestForecastDays; d++ {
		date := today.AddDate(0, 0, d)
		price := FallbackPriceEstimate
		if len(idx) > 0 {
			_, week := date.ISOWeek()
			price = idx.Price(week)
		}
		points = append(points, PricePoint{Date: date, Price: roundTo(price, 0)})
	}
	return points
}
