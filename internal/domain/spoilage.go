package domain

import "sort"

// Spoilage risk tiers.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"
)

// SpoilageForecastDays is the weather window the assessor averages over.
const SpoilageForecastDays = 3

const (
	transitWeight       = 0.20
	tempComponentWeight = 0.5
)

// riskIndicators are the per-tier traffic-light markers shown to farmers.
var riskIndicators = map[string]string{
	RiskHigh:   "🔴",
	RiskMedium: "🟡",
	RiskLow:    "🟢",
}

// SpoilageInput describes one stored or soon-to-move lot.
type SpoilageInput struct {
	Crop         string
	StorageType  string
	TransitHours float64
	Forecast     Forecast
}

// MitigationAction is one recommended countermeasure.
type MitigationAction struct {
	Action        string `json:"action"`
	Cost          string `json:"cost"`
	Effectiveness string `json:"effectiveness"`
}

// mitigation ties an action to the risk tiers it applies to.
type mitigation struct {
	MitigationAction
	tiers []string
}

// mitigationCatalogue is ordered; the per-tier selection keeps this order
// within each effectiveness band.
var mitigationCatalogue = []mitigation{
	{MitigationAction{"Use refrigerated transport", "₹200/quintal", "High"}, []string{RiskHigh, RiskMedium}},
	{MitigationAction{"Harvest at dawn when temperatures are low", "Free", "Medium"}, []string{RiskHigh, RiskMedium}},
	{MitigationAction{"Apply wax coating before transport", "₹50/quintal", "Medium"}, []string{RiskHigh, RiskMedium}},
	{MitigationAction{"Move produce to cold storage", "₹80/quintal/month", "High"}, []string{RiskHigh}},
	{MitigationAction{"Use ventilated jute bags", "₹10/quintal", "Medium"}, []string{RiskMedium, RiskLow}},
	{MitigationAction{"Keep produce dry and shaded", "Free", "High"}, []string{RiskLow}},
	{MitigationAction{"Sort and discard damaged produce before storage", "Free", "Medium"}, []string{RiskHigh, RiskMedium, RiskLow}},
}

var effectivenessRank = map[string]int{"High": 0, "Medium": 1, "Low": 2}

const maxMitigationActions = 4

// SpoilageAssessment is the assessor's answer for one lot.
type SpoilageAssessment struct {
	Crop           string             `json:"crop"`
	StorageType    string             `json:"storage_type"`
	TransitHours   float64            `json:"transit_hours"`
	Score          float64            `json:"score"`
	Risk           string             `json:"risk"`
	Indicator      string             `json:"indicator"`
	ProbabilityPct int                `json:"spoilage_probability_pct"`
	ShelfLifeDays  int                `json:"shelf_life_days"`
	AvgHumidity    float64            `json:"avg_humidity"`
	AvgTempMax     float64            `json:"avg_temp_max"`
	Actions        []MitigationAction `json:"actions"`
	Reason         string             `json:"reason"`
}

// AssessSpoilage scores a lot's spoilage risk from crop sensitivity, the
// three-day weather outlook, transit exposure, and storage conditions.
func AssessSpoilage(in SpoilageInput) SpoilageAssessment {
	params := SpoilageParamsFor(in.Crop)
	w := in.Forecast.Window(0, SpoilageForecastDays)

	humNorm := clip((w.Humidity-40)/60, 0, 1)
	tempNorm := clip((w.TempMax-15)/25, 0, 1)
	transitNorm := clip(in.TransitHours/24, 0, 1)

	raw := params.HumiditySensitivity*humNorm +
		params.TempSensitivity*tempNorm*tempComponentWeight +
		transitWeight*transitNorm
	score := roundTo(clip(raw+StoragePenalty(in.StorageType), 0, 1), 3)

	risk := riskTier(score)
	return SpoilageAssessment{
		Crop:           in.Crop,
		StorageType:    in.StorageType,
		TransitHours:   in.TransitHours,
		Score:          score,
		Risk:           risk,
		Indicator:      riskIndicators[risk],
		ProbabilityPct: int(score * 100),
		ShelfLifeDays:  params.ShelfDays,
		AvgHumidity:    roundTo(w.Humidity, 1),
		AvgTempMax:     roundTo(w.TempMax, 1),
		Actions:        mitigationsFor(risk),
		Reason:         spoilageReason(risk, in.Crop, w.Humidity, w.TempMax, in.StorageType),
	}
}

func riskTier(score float64) string {
	switch {
	case score >= 0.65:
		return RiskHigh
	case score >= 0.35:
		return RiskMedium
	default:
		return RiskLow
	}
}

// mitigationsFor picks the actions applicable to a tier, most effective
// first, capped at four.
func mitigationsFor(risk string) []MitigationAction {
	var applicable []MitigationAction
	for _, m := range mitigationCatalogue {
		for _, tier := range m.tiers {
			if tier == risk {
				applicable = append(applicable, m.MitigationAction)
				break
			}
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return effectivenessRank[applicable[i].Effectiveness] < effectivenessRank[applicable[j].Effectiveness]
	})
	if len(applicable) > maxMitigationActions {
		applicable = applicable[:maxMitigationActions]
	}
	return applicable
}
