package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistance - great-circle distance between two points in kilometers
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates - true for a real coordinate pair. The ML service sends
// 0,0 for places it has no position for, which is treated as missing.
func ValidateCoordinates(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// LatLon - a point on a route
type LatLon struct {
	Lat float64
	Lon float64
}

// RouteLengthKm - sum of legs between consecutive valid points, in kilometers.
// Points without a valid position are skipped.
func RouteLengthKm(points []LatLon) float64 {
	var (
		total float64
		prev  *LatLon
	)
	for i := range points {
		p := points[i]
		if !ValidateCoordinates(p.Lat, p.Lon) {
			continue
		}
		if prev != nil {
			total += HaversineDistance(prev.Lat, prev.Lon, p.Lat, p.Lon)
		}
		prev = &p
	}
	return math.Round(total*100) / 100
}
