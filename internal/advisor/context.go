package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agrichain/advisory-service/internal/domain"
)

// FarmContext is a plain-text briefing covering one farm's full advisory
// picture, built to ground chat assistants and extension workers.
type FarmContext struct {
	Context     string    `json:"context"`
	GeneratedAt time.Time `json:"generated_at"`
}

// contextTopMandis bounds the markets listed in the briefing.
const contextTopMandis = 3

// FarmContext runs all three engines and renders their results as one
// briefing. A failed engine degrades to an error line in its section so the
// remaining sections still inform.
func (s *Service) FarmContext(ctx context.Context, req ContextRequest) (fc FarmContext, err error) {
	defer s.observe(domain.EngineContext, time.Now())(&err)
	if err = req.Validate(); err != nil {
		return FarmContext{}, err
	}

	harvest, harvestErr := s.computeHarvest(ctx, HarvestRequest{
		Crop:       req.Crop,
		District:   req.District,
		SowingDate: req.SowingDate,
	})
	mandis, mandisErr := s.computeMandis(ctx, MandiRequest{
		Crop:        req.Crop,
		District:    req.District,
		QuantityQtl: req.QuantityQtl,
		TopN:        contextTopMandis,
	})
	spoilage, spoilageErr := s.computeSpoilage(ctx, SpoilageRequest{
		Crop:         req.Crop,
		District:     req.District,
		StorageType:  req.StorageType,
		TransitHours: req.TransitHours,
	})

	fc = FarmContext{
		Context:     renderFarmContext(req, harvest, harvestErr, mandis, mandisErr, spoilage, spoilageErr),
		GeneratedAt: domain.Today(s.location),
	}
	s.publish(ctx, domain.EngineContext, req.Crop, req.District, fc)
	return fc, nil
}

func renderFarmContext(
	req ContextRequest,
	harvest domain.HarvestRecommendation, harvestErr error,
	mandis []domain.MandiOption, mandisErr error,
	spoilage domain.SpoilageAssessment, spoilageErr error,
) string {
	lines := []string{
		"=== FARMER PROFILE ===",
		fmt.Sprintf("Crop: %s", req.Crop),
		fmt.Sprintf("District: %s, Maharashtra", req.District),
		fmt.Sprintf("Quantity: %g quintals", req.QuantityQtl),
		fmt.Sprintf("Storage: %s", req.StorageType),
		fmt.Sprintf("Transit Duration: %g hours", req.TransitHours),
		fmt.Sprintf("Sowing Date: %s", req.SowingDate.Format("02 January 2006")),
		"",
	}

	lines = append(lines, "=== HARVEST RECOMMENDATION ===")
	if harvestErr != nil {
		lines = append(lines, fmt.Sprintf("Error: %v", harvestErr), "")
	} else {
		lines = append(lines,
			fmt.Sprintf("Best Window: %s to %s", harvest.WindowStart.Format("2006-01-02"), harvest.WindowEnd.Format("2006-01-02")),
			fmt.Sprintf("Expected Price Premium: +%d%%", harvest.ExpectedPremiumPct),
			fmt.Sprintf("Confidence: %s", harvest.Confidence),
			fmt.Sprintf("Reason 1: %s", reasonOrNA(harvest.Reasons, 0)),
			fmt.Sprintf("Reason 2: %s", reasonOrNA(harvest.Reasons, 1)),
			fmt.Sprintf("Price Seasonality Score: %d%%", int(harvest.Components.Price*100)),
			fmt.Sprintf("Weather Score: %d%%", int(harvest.Components.Weather*100)),
			fmt.Sprintf("Soil Readiness Score: %d%%", int(harvest.Components.Soil*100)),
			"",
		)
	}

	lines = append(lines, "=== TOP MANDIS ===")
	if mandisErr != nil {
		lines = append(lines, fmt.Sprintf("Error: %v", mandisErr), "")
	} else {
		for i, m := range mandis {
			lines = append(lines, fmt.Sprintf(
				"#%d %s: Price ₹%d/qtl, Transport ₹%d/qtl, Net Profit ₹%d/qtl, Distance %.0f km",
				i+1, m.Market, m.ExpectedPrice, m.TransportPerQtl, m.NetPerQtl, m.DistanceKm,
			))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "=== SPOILAGE RISK ===")
	if spoilageErr != nil {
		lines = append(lines, fmt.Sprintf("Error: %v", spoilageErr), "")
	} else {
		topAction := "N/A"
		if len(spoilage.Actions) > 0 {
			a := spoilage.Actions[0]
			topAction = fmt.Sprintf("%s (Cost: %s, Effectiveness: %s)", a.Action, a.Cost, a.Effectiveness)
		}
		lines = append(lines,
			fmt.Sprintf("Risk Level: %s (%d%% probability)", spoilage.Risk, spoilage.ProbabilityPct),
			fmt.Sprintf("Reason: %s", spoilage.Reason),
			fmt.Sprintf("Top Action: %s", topAction),
			"",
		)
	}

	return strings.Join(lines, "\n")
}

func reasonOrNA(reasons []string, i int) string {
	if i < len(reasons) {
		return reasons[i]
	}
	return "N/A"
}
