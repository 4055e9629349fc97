package domain

// PriceRange is a crop's base modal price band in ₹/quintal.
type PriceRange struct {
	Low  float64
	High float64
}

// Crops lists every commodity the synthetic dataset and the engines know about,
// in the order used for deterministic series generation.
var Crops = []string{
	"Tomato", "Onion", "Wheat", "Potato", "Rice",
	"Soybean", "Cotton", "Sugarcane", "Maize", "Grapes",
}

// Mandis lists the APMC markets in declaration order. Ranking ties preserve
// this order.
var Mandis = []string{
	"Pune APMC", "Nashik APMC", "Nagpur APMC", "Solapur APMC",
	"Kolhapur APMC", "Aurangabad APMC", "Mumbai APMC", "Sangli APMC",
}

// CropBasePrices holds the base price band per crop (₹/quintal).
var CropBasePrices = map[string]PriceRange{
	"Tomato":    {800, 2800},
	"Onion":     {600, 2200},
	"Wheat":     {1800, 2500},
	"Potato":    {700, 1800},
	"Rice":      {1600, 2800},
	"Soybean":   {3000, 4500},
	"Cotton":    {5000, 7500},
	"Sugarcane": {280, 380},
	"Maize":     {1200, 2000},
	"Grapes":    {4000, 9000},
}

// MandiMultipliers scales a crop's base price per market.
var MandiMultipliers = map[string]float64{
	"Pune APMC":       1.10,
	"Nashik APMC":     1.08,
	"Nagpur APMC":     1.05,
	"Solapur APMC":    1.02,
	"Kolhapur APMC":   1.06,
	"Aurangabad APMC": 1.03,
	"Mumbai APMC":     1.15,
	"Sangli APMC":     1.04,
}

// CropMaturityDays is the sowing-to-harvest period per crop.
// defaultMaturityDays applies to crops missing from the table.
var CropMaturityDays = map[string]int{
	"Tomato":    90,
	"Onion":     120,
	"Wheat":     120,
	"Potato":    80,
	"Rice":      130,
	"Soybean":   100,
	"Cotton":    180,
	"Sugarcane": 365,
	"Maize":     90,
	"Grapes":    150,
}

const defaultMaturityDays = 100

// MaturityDays returns the crop's maturity period, defaulting for unknown crops.
func MaturityDays(crop string) int {
	if d, ok := CropMaturityDays[crop]; ok {
		return d
	}
	return defaultMaturityDays
}

// SpoilageParams captures how fast a crop degrades under heat and humidity.
type SpoilageParams struct {
	TempSensitivity     float64
	HumiditySensitivity float64
	ShelfDays           int
}

// CropSpoilageParams holds per-crop spoilage sensitivities.
var CropSpoilageParams = map[string]SpoilageParams{
	"Tomato":    {0.9, 0.85, 5},
	"Onion":     {0.4, 0.70, 30},
	"Wheat":     {0.2, 0.55, 180},
	"Potato":    {0.5, 0.60, 60},
	"Rice":      {0.3, 0.60, 150},
	"Soybean":   {0.3, 0.50, 120},
	"Cotton":    {0.2, 0.40, 180},
	"Sugarcane": {0.7, 0.65, 2},
	"Maize":     {0.4, 0.55, 90},
	"Grapes":    {0.8, 0.80, 7},
}

// defaultSpoilageParams is the neutral profile for unknown crops.
var defaultSpoilageParams = SpoilageParams{TempSensitivity: 0.5, HumiditySensitivity: 0.6, ShelfDays: 30}

// SpoilageParamsFor returns the crop's spoilage profile, defaulting for unknown crops.
func SpoilageParamsFor(crop string) SpoilageParams {
	if p, ok := CropSpoilageParams[crop]; ok {
		return p
	}
	return defaultSpoilageParams
}

// StoragePenalties adjusts the raw spoilage score per storage type. Cold
// storage is negative: it lowers risk. Unknown storage types use
// defaultStoragePenalty (treated like a warehouse).
var StoragePenalties = map[string]float64{
	"Open (Field)": 0.30,
	"Warehouse":    0.10,
	"Cold Storage": -0.10,
}

const defaultStoragePenalty = 0.10

// StoragePenalty returns the additive score adjustment for a storage type.
func StoragePenalty(storageType string) float64 {
	if p, ok := StoragePenalties[storageType]; ok {
		return p
	}
	return defaultStoragePenalty
}
