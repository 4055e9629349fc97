package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mandiHistory(market string, modal int, days int) []PriceRecord {
	recs := make([]PriceRecord, 0, days)
	for d := 0; d < days; d++ {
		recs = append(recs, PriceRecord{
			Market:     market,
			Date:       SeriesAnchorDate.AddDate(0, 0, d),
			ModalPrice: modal,
		})
	}
	return recs
}

func TestRankMandis(t *testing.T) {
	t.Run("orders by net price descending", func(t *testing.T) {
		series := append(mandiHistory("Mumbai APMC", 5000, 7), mandiHistory("Pune APMC", 3000, 7)...)
		ranked := RankMandis(MandiRankInput{
			Crop:        "Tomato",
			District:    "Pune",
			QuantityQtl: 10,
			Series:      series,
		})

		require.Len(t, ranked, len(Mandis))
		assert.Equal(t, "Mumbai APMC", ranked[0].Market)
		assert.Equal(t, "Pune APMC", ranked[1].Market)
		for i := 1; i < len(ranked); i++ {
			require.GreaterOrEqual(t, ranked[i-1].NetPerQtl, ranked[i].NetPerQtl)
		}
	})

	t.Run("net equals expected price minus transport", func(t *testing.T) {
		series := mandiHistory("Nashik APMC", 2400, 7)
		ranked := RankMandis(MandiRankInput{Crop: "Onion", District: "Pune", QuantityQtl: 5, Series: series})

		var nashik MandiOption
		for _, opt := range ranked {
			if opt.Market == "Nashik APMC" {
				nashik = opt
			}
		}
		require.NotEmpty(t, nashik.Market)
		assert.Equal(t, 2400, nashik.ExpectedPrice)
		assert.Equal(t, DistanceToMandi("Pune", "Nashik APMC"), nashik.DistanceKm)
		assert.Equal(t, nashik.ExpectedPrice-nashik.TransportPerQtl, nashik.NetPerQtl)
	})

	t.Run("markets without history use the fallback estimate", func(t *testing.T) {
		ranked := RankMandis(MandiRankInput{Crop: "Wheat", District: "Pune", QuantityQtl: 1, Series: nil})
		for _, opt := range ranked {
			require.Equal(t, int(FallbackPriceEstimate), opt.ExpectedPrice)
		}
	})

	t.Run("unknown district ranks from the default district", func(t *testing.T) {
		got := RankMandis(MandiRankInput{Crop: "Wheat", District: "Atlantis", QuantityQtl: 1})
		want := RankMandis(MandiRankInput{Crop: "Wheat", District: DefaultDistrict, QuantityQtl: 1})
		assert.Equal(t, want, got)
	})

	t.Run("top N trims the tail", func(t *testing.T) {
		ranked := RankMandis(MandiRankInput{Crop: "Wheat", District: "Pune", QuantityQtl: 1, TopN: 3})
		assert.Len(t, ranked, 3)
	})

	t.Run("total transport scales with quantity", func(t *testing.T) {
		one := RankMandis(MandiRankInput{Crop: "Wheat", District: "Pune", QuantityQtl: 1, TopN: len(Mandis)})
		ten := RankMandis(MandiRankInput{Crop: "Wheat", District: "Pune", QuantityQtl: 10, TopN: len(Mandis)})
		for i := range one {
			require.InDelta(t, float64(one[i].TotalTransportCost)*10, float64(ten[i].TotalTransportCost), 5)
		}
	})

	t.Run("every option carries a reason", func(t *testing.T) {
		for _, opt := range RankMandis(MandiRankInput{Crop: "Wheat", District: "Pune", QuantityQtl: 1}) {
			require.NotEmpty(t, opt.Reason)
		}
	})
}
