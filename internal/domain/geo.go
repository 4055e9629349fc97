package domain

import "math"

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// TransportCostPerKmPerQtl is the flat trucking rate in ₹ per km per quintal.
const TransportCostPerKmPerQtl = 4.0

// DistrictCoords maps Maharashtra district names to their coordinates.
var DistrictCoords = map[string]Coordinate{
	"Pune":       {18.5204, 73.8567},
	"Nashik":     {19.9975, 73.7898},
	"Nagpur":     {21.1458, 79.0882},
	"Solapur":    {17.6868, 75.9064},
	"Aurangabad": {19.8762, 75.3433},
	"Kolhapur":   {16.7050, 74.2433},
	"Amravati":   {20.9320, 77.7769},
	"Sangli":     {16.8524, 74.5815},
	"Satara":     {17.6805, 74.0183},
	"Latur":      {18.4088, 76.5604},
	"Osmanabad":  {18.1860, 76.0419},
	"Nanded":     {19.1383, 77.3210},
	"Jalgaon":    {21.0077, 75.5626},
	"Dhule":      {20.9042, 74.7749},
	"Raigad":     {18.5158, 73.1812},
	"Ratnagiri":  {16.9902, 73.3120},
	"Sindhudurg": {16.3491, 73.8552},
	"Palghar":    {19.6967, 72.7697},
	"Thane":      {19.2183, 72.9781},
	"Mumbai":     {19.0760, 72.8777},
	"Ahmednagar": {19.0952, 74.7496},
	"Beed":       {18.9891, 75.7601},
	"Hingoli":    {19.7173, 77.1490},
	"Jalna":      {19.8347, 75.8816},
	"Parbhani":   {19.2704, 76.7766},
	"Akola":      {20.7002, 77.0082},
	"Buldhana":   {20.5292, 76.1842},
	"Washim":     {20.1119, 77.1431},
	"Yavatmal":   {20.3888, 78.1204},
	"Gondiya":    {21.4605, 80.1952},
}

// MandiCoords maps APMC market names to their coordinates.
var MandiCoords = map[string]Coordinate{
	"Pune APMC":       {18.5196, 73.8553},
	"Nashik APMC":     {19.9750, 73.7578},
	"Nagpur APMC":     {21.1220, 79.0748},
	"Solapur APMC":    {17.6930, 75.9012},
	"Kolhapur APMC":   {16.7009, 74.2433},
	"Aurangabad APMC": {19.8680, 75.3320},
	"Mumbai APMC":     {19.0596, 72.8295},
	"Sangli APMC":     {16.8561, 74.5610},
}

// DefaultDistrict is substituted when a caller names a district that is not in
// the coordinate table. Unknown names never fail, see the package doc.
const DefaultDistrict = "Pune"

// DistrictCoordinate resolves a district name, falling back to DefaultDistrict.
// The second return reports whether the name resolved directly.
func DistrictCoordinate(district string) (Coordinate, bool) {
	if c, ok := DistrictCoords[district]; ok {
		return c, true
	}
	return DistrictCoords[DefaultDistrict], false
}

// Haversine returns the great-circle distance between two coordinates in km.
func Haversine(a, b Coordinate) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lon - a.Lon)

	h := math.Pow(math.Sin(dPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceToMandi returns the km distance from a district to a mandi, rounded
// to one decimal. Unknown names yield 0, a silent default rather than an error,
// so a typoed market ranks as zero-distance. Callers should warn when either
// name fails to resolve.
func DistanceToMandi(district, mandi string) float64 {
	from, okFrom := DistrictCoords[district]
	to, okTo := MandiCoords[mandi]
	if !okFrom || !okTo {
		return 0
	}
	return roundTo(Haversine(from, to), 1)
}

// TransportCost estimates the total trucking cost in ₹ for quantityQtl
// quintals from a district to a mandi. Unknown names yield 0 (see
// DistanceToMandi).
func TransportCost(district, mandi string, quantityQtl float64) float64 {
	from, okFrom := DistrictCoords[district]
	to, okTo := MandiCoords[mandi]
	if !okFrom || !okTo {
		return 0
	}
	return roundTo(Haversine(from, to)*TransportCostPerKmPerQtl*quantityQtl, 2)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// clip bounds v to [lo, hi].
func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
