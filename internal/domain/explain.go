package domain

import (
	"fmt"
	"strings"
)

// maxHarvestReasons caps the rationale shown with a harvest recommendation.
const maxHarvestReasons = 2

// harvestReasons renders plain-language rationale from the score components.
// Bands align with the tier thresholds documented in the package doc.
func harvestReasons(crop string, daysSinceSowing int, c ScoreComponents) []string {
	reasons := make([]string, 0, maxHarvestReasons+1)

	switch {
	case c.Price >= 0.6:
		pct := int(c.Price * 25)
		reasons = append(reasons, fmt.Sprintf("Mandi prices are historically %d-%d%% higher this week for %s", pct, pct+5, crop))
	case c.Price >= 0.4:
		reasons = append(reasons, fmt.Sprintf("Mandi prices are moderately good this week for %s", crop))
	default:
		reasons = append(reasons, "Prices are currently below average; consider waiting a few days")
	}

	switch {
	case c.Weather >= 0.6:
		reasons = append(reasons, "Weather forecast shows dry conditions, ideal for harvest and transport")
	case c.Weather >= 0.4:
		reasons = append(reasons, "Weather is acceptable; moderate humidity expected over the next week")
	default:
		reasons = append(reasons, "High humidity or rainfall forecast; risk of field spoilage if delayed")
	}

	if len(reasons) < maxHarvestReasons && c.Soil >= 0.7 {
		reasons = append(reasons, fmt.Sprintf("Crop is fully mature at %d days since sowing", daysSinceSowing))
	}
	if len(reasons) > maxHarvestReasons {
		reasons = reasons[:maxHarvestReasons]
	}
	return reasons
}

// mandiReason summarizes why a market placed where it did.
func mandiReason(avgPrice, transport, net, distanceKm float64) string {
	switch {
	case net > 2200:
		return fmt.Sprintf("Top choice: highest net return at ₹%.0f/qtl despite ₹%.0f transport", net, transport)
	case distanceKm < 60:
		return fmt.Sprintf("Nearby market (%.0f km away) with competitive price of ₹%.0f/qtl", distanceKm, avgPrice)
	default:
		return fmt.Sprintf("Good price ₹%.0f/qtl; transport cost of ₹%.0f is manageable", avgPrice, transport)
	}
}

// spoilageReason names the dominant driver behind a risk tier.
func spoilageReason(risk, crop string, humidity, tempMax float64, storageType string) string {
	switch risk {
	case RiskHigh:
		switch {
		case humidity > 75:
			return fmt.Sprintf("3-day humidity forecast is %.0f%%+, very high spoilage risk for %s", humidity, crop)
		case tempMax > 32:
			return fmt.Sprintf("Temperature forecast exceeds %.0f°C, rapid spoilage expected for %s", tempMax, crop)
		default:
			return fmt.Sprintf("Open storage plus long transit time creates high spoilage risk for %s", crop)
		}
	case RiskMedium:
		return fmt.Sprintf("Moderate humidity (%.0f%%) and %s storage pose manageable risk for %s", humidity, strings.ToLower(storageType), crop)
	default:
		return fmt.Sprintf("Low humidity (%.0f%%) and controlled storage keep spoilage risk low for %s", humidity, crop)
	}
}
