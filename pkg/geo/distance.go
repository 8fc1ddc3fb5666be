package geo

import "math"

// EarthRadiusMeters mean earth radius. Edge weights are expected in meters too, otherwise the A*
// heuristic stops being admissible.
const EarthRadiusMeters = 6371000.0

type Location struct {
	Latitude  float64
	Longitude float64
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func NewLocation(latDegree float64, lonDegree float64) Location {
	return Location{
		Latitude:  degreeToRadians(latDegree),
		Longitude: degreeToRadians(lonDegree),
	}
}

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func havFormula(locationOne Location, locationTwo Location) float64 {
	latitudeDiff := locationOne.Latitude - locationTwo.Latitude
	longitudeDiff := locationOne.Longitude - locationTwo.Longitude

	havLatitude := havFunction(latitudeDiff)
	havLongitude := havFunction(longitudeDiff)

	return havLatitude + math.Cos(locationOne.Latitude)*math.Cos(locationTwo.Latitude)*havLongitude
}

func archaversine(havAngle float64) float64 {
	// clamp, floating error bisa bikin havAngle sedikit > 1
	if havAngle > 1 {
		havAngle = 1
	}
	return 2.0 * math.Asin(math.Sqrt(havAngle))
}

// HaversineDistanceLoc great-circle distance in meters.
func HaversineDistanceLoc(locationOne Location, locationTwo Location) float64 {
	return EarthRadiusMeters * archaversine(havFormula(locationOne, locationTwo))
}

// HaversineDistance treats X as longitude and Y as latitude, result in meters.
func HaversineDistance(p1, p2 Point) float64 {
	return HaversineDistanceLoc(NewLocation(p1.Y, p1.X), NewLocation(p2.Y, p2.X))
}
