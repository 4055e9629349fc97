package domain

import (
	"math"
	"sort"
)

// mandiPriceLookback is how many recent records feed a market's expected price.
const mandiPriceLookback = 7

// MandiRankInput selects the markets to rank for one farmer's lot.
// Series should already be filtered to the crop (see FilterCrop).
type MandiRankInput struct {
	Crop        string
	District    string
	QuantityQtl float64
	TopN        int
	Series      []PriceRecord
}

// MandiOption is one ranked market. Money fields are whole ₹; NetPerQtl is
// the ranking key (expected price minus per-quintal transport).
type MandiOption struct {
	Market             string  `json:"market"`
	DistanceKm         float64 `json:"distance_km"`
	ExpectedPrice      int     `json:"expected_price"`
	TransportPerQtl    int     `json:"transport_cost_per_qtl"`
	NetPerQtl          int     `json:"net_per_qtl"`
	TotalTransportCost int     `json:"total_transport_cost"`
	Reason             string  `json:"reason"`
}

// RankMandis scores every known market by net realizable price per quintal
// and returns the top N, ties broken by market declaration order. Markets with
// no price history rank on the flat fallback estimate rather than zero.
func RankMandis(in MandiRankInput) []MandiOption {
	district := in.District
	if _, ok := DistrictCoords[district]; !ok {
		district = DefaultDistrict
	}

	type scored struct {
		opt MandiOption
		net float64
	}
	options := make([]scored, 0, len(Mandis))

	for _, mandi := range Mandis {
		expected := RollingModalMean(in.Series, mandi, mandiPriceLookback)
		if expected == 0 {
			expected = FallbackPriceEstimate
		}

		distance := DistanceToMandi(district, mandi)
		costPerQtl := roundTo(distance*TransportCostPerKmPerQtl, 2)
		net := roundTo(expected-costPerQtl, 2)

		opt := MandiOption{
			Market:             mandi,
			DistanceKm:         distance,
			ExpectedPrice:      int(math.Round(expected)),
			TransportPerQtl:    int(math.Round(costPerQtl)),
			NetPerQtl:          int(math.Round(net)),
			TotalTransportCost: int(math.Round(costPerQtl * in.QuantityQtl)),
		}
		opt.Reason = mandiReason(expected, costPerQtl, net, distance)
		options = append(options, scored{opt: opt, net: net})
	}

	sort.SliceStable(options, func(i, j int) bool { return options[i].net > options[j].net })

	n := in.TopN
	if n <= 0 || n > len(options) {
		n = len(options)
	}
	out := make([]MandiOption, 0, n)
	for _, s := range options[:n] {
		out = append(out, s.opt)
	}
	return out
}
