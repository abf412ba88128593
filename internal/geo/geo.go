// Package geo holds the distance and grouping predicates used by mission clustering.
package geo

import (
	"math"

	"github.com/polkiloo/flashrescue/internal/domain/model"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(a, b model.Location) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// SameCategory reports whether two listings can share a mission.
func SameCategory(a, b model.Listing) bool {
	return a.Category == b.Category
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
