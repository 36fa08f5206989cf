// Package geo provides the geographic primitives shared by the
// neighborhood analysis service: coordinate values, bounding boxes and
// great-circle distance.
package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the mean radius of Earth in meters.
const EarthRadius = 6371000.0

// Point is a geographic coordinate. Immutable value.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BoundingBox is an axis-aligned lat/lon rectangle used to scope
// spatial queries. MinLat/MinLon are the southwest corner.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// BoundingBoxFromRadius derives the box covering a circle of radiusMeters
// around center, using an equirectangular approximation (degrees per
// meter at the center's latitude).
//
// The approximation is valid for radii up to a few kilometers at
// non-polar latitudes; near the poles cos(lat) approaches zero and the
// longitude span blows up. This is a known limitation of the service,
// not something callers should compensate for.
func BoundingBoxFromRadius(center Point, radiusMeters float64) BoundingBox {
	latDelta := radiusMeters / 111000.0
	lonDelta := radiusMeters / (111000.0 * math.Cos(center.Latitude*math.Pi/180.0))
	return BoundingBox{
		MinLon: center.Longitude - lonDelta,
		MinLat: center.Latitude - latDelta,
		MaxLon: center.Longitude + lonDelta,
		MaxLat: center.Latitude + latDelta,
	}
}

// Contains reports whether p lies inside the box (borders included).
func (bb BoundingBox) Contains(p Point) bool {
	return p.Latitude >= bb.MinLat && p.Latitude <= bb.MaxLat &&
		p.Longitude >= bb.MinLon && p.Longitude <= bb.MaxLon
}

// OverpassString renders the box in the south,west,north,east order the
// Overpass API expects inside a query filter.
func (bb BoundingBox) OverpassString() string {
	return fmt.Sprintf("%f,%f,%f,%f", bb.MinLat, bb.MinLon, bb.MaxLat, bb.MaxLon)
}

// Haversine returns the great-circle distance in meters between two
// points given in degrees. Deterministic and symmetric in its arguments.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadius * c
}

// Distance is Haversine over Point values.
func Distance(a, b Point) float64 {
	return Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// ValidateCoords rejects coordinates outside the valid lat/lon ranges.
func ValidateCoords(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("invalid latitude: %f (must be between -90 and 90)", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("invalid longitude: %f (must be between -180 and 180)", lon)
	}
	return nil
}
