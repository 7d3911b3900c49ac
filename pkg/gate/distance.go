package gate

import (
	"math"

	"github.com/alienwaste/alienwaste-backend/pkg/state"
)

// EarthRadiusMeters is the mean Earth radius used by the spherical approximation
const EarthRadiusMeters = 6371e3

// Distance returns the great-circle distance between a and b in meters (Haversine)
func Distance(a, b state.Location) float64 {
	phi1 := a.Latitude * math.Pi / 180
	phi2 := b.Latitude * math.Pi / 180
	dPhi := (b.Latitude - a.Latitude) * math.Pi / 180
	dLambda := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// Rounding can push h marginally past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}
