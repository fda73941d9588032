// Package geo vérifie qu'une soumission tombe dans la zone et la fenêtre
// temporelle d'un challenge.
package geo

import (
	"math"
	"time"
)

// EarthRadiusKm rayon moyen de la Terre
const EarthRadiusKm = 6371.0

// Point est une coordonnée GPS décimale
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm calcule la distance orthodromique en kilomètres entre deux
// points (formule de haversine). Largement suffisant à l'échelle d'un campus.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// WithinRadius vérifie que le point se trouve à radiusKm ou moins du centre.
// La frontière est incluse.
func WithinRadius(center, p Point, radiusKm float64) bool {
	return DistanceKm(center, p) <= radiusKm
}

// WithinWindow vérifie start <= t < end, en UTC.
// Borne incluse au début, exclue à la fin.
func WithinWindow(t, start, end time.Time) bool {
	t = t.UTC()
	return !t.Before(start.UTC()) && t.Before(end.UTC())
}

// Validate combine la vérification de zone et de fenêtre temporelle.
// Les deux échecs partagent volontairement un seul verdict : le message
// utilisateur ne distingue pas "trop loin" de "mauvais moment".
func Validate(center, p Point, radiusKm float64, takenAt, start, end time.Time) bool {
	return WithinRadius(center, p, radiusKm) && WithinWindow(takenAt, start, end)
}
