package domain

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Synthetic series shape: one record per crop × mandi × day for a fixed run of
// consecutive days. The anchor date and length are part of the dataset
// contract; downstream consumers key charts off this range.
const (
	SeriesDays  = 180
	DefaultSeed = 42

	// DefaultState scopes every record; the loader filters on it.
	DefaultState = "Maharashtra"

	// FallbackPriceEstimate is the flat ₹/quintal estimate substituted when a
	// market or week has no price history at all.
	FallbackPriceEstimate = 1800.0

	seasonalAmplitude = 0.15
	noiseStdDev       = 0.05
)

// SeriesAnchorDate is the first calendar day of the synthetic series.
var SeriesAnchorDate = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

// PriceRecord is one Agmarknet-style daily price row.
// Prices are whole ₹ per quintal.
type PriceRecord struct {
	State      string    `json:"state"`
	District   string    `json:"district"`
	Market     string    `json:"market"`
	Commodity  string    `json:"commodity"`
	Date       time.Time `json:"arrival_date"`
	MinPrice   int       `json:"min_price"`
	MaxPrice   int       `json:"max_price"`
	ModalPrice int       `json:"modal_price"`
}

// GenerateSyntheticSeries produces the deterministic synthetic price dataset.
// The draw order (crop outer, mandi middle, date inner) and the single seeded
// generator are load-bearing: the same seed must reproduce the same series
// bit-for-bit.
func GenerateSyntheticSeries(seed int64) []PriceRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]PriceRecord, 0, len(Crops)*len(Mandis)*SeriesDays)

	for _, crop := range Crops {
		band := CropBasePrices[crop]
		basePrice := (band.Low + band.High) / 2

		for _, mandi := range Mandis {
			mult := MandiMultipliers[mandi]
			for day := 0; day < SeriesDays; day++ {
				date := SeriesAnchorDate.AddDate(0, 0, day)
				seasonal := seasonalAmplitude * math.Sin(2*math.Pi*float64(date.YearDay())/365)
				noise := rng.NormFloat64() * noiseStdDev

				price := basePrice * mult * (1 + seasonal + noise)
				price = clip(price, band.Low*0.7, band.High*1.3)

				records = append(records, PriceRecord{
					State:      DefaultState,
					District:   strings.TrimSuffix(mandi, " APMC"),
					Market:     mandi,
					Commodity:  crop,
					Date:       date,
					MinPrice:   int(math.Round(price * 0.92)),
					MaxPrice:   int(math.Round(price * 1.08)),
					ModalPrice: int(math.Round(price)),
				})
			}
		}
	}
	return records
}

// FilterCrop returns the records for one commodity (case-insensitive) within
// DefaultState, sorted by date ascending.
func FilterCrop(series []PriceRecord, crop string) []PriceRecord {
	out := make([]PriceRecord, 0, SeriesDays*len(Mandis))
	for _, r := range series {
		if r.State == DefaultState && strings.EqualFold(r.Commodity, crop) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// WeeklyIndex maps ISO week number to the mean modal price of that week.
type WeeklyIndex map[int]float64

// BuildWeeklyIndex groups records by ISO week and averages their modal prices.
func BuildWeeklyIndex(series []PriceRecord) WeeklyIndex {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range series {
		_, week := r.Date.ISOWeek()
		sums[week] += float64(r.ModalPrice)
		counts[week]++
	}

	idx := make(WeeklyIndex, len(sums))
	for week, sum := range sums {
		idx[week] = sum / float64(counts[week])
	}
	return idx
}

// Weeks returns the indexed ISO weeks in ascending order.
func (w WeeklyIndex) Weeks() []int {
	weeks := make([]int, 0, len(w))
	for wk := range w {
		weeks = append(weeks, wk)
	}
	sort.Ints(weeks)
	return weeks
}

// Mean returns the average weekly price across the index, or 0 when empty.
func (w WeeklyIndex) Mean() float64 {
	if len(w) == 0 {
		return 0
	}
	var sum float64
	for _, p := range w {
		sum += p
	}
	return sum / float64(len(w))
}

// Bounds returns the minimum and maximum weekly prices. Zero values when empty.
func (w WeeklyIndex) Bounds() (min, max float64) {
	first := true
	for _, p := range w {
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

// Price returns the mean price for the given ISO week, or the index mean when
// the week is absent.
func (w WeeklyIndex) Price(week int) float64 {
	if p, ok := w[week]; ok {
		return p
	}
	return w.Mean()
}

// RollingModalMean averages the modal price of a market's last n records
// (by date). Returns 0 when the market has no records; callers substitute a
// flat estimate so a zero price cannot corrupt profit ranking.
func RollingModalMean(series []PriceRecord, market string, n int) float64 {
	var recs []PriceRecord
	for _, r := range series {
		if r.Market == market {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return 0
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
	if len(recs) > n {
		recs = recs[len(recs)-n:]
	}

	var sum float64
	for _, r := range recs {
		sum += float64(r.ModalPrice)
	}
	return sum / float64(len(recs))
}
