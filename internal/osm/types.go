package osm

import "github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"

// TagPredicate is one key=value filter understood by the Overpass
// feature search, e.g. amenity=hospital.
type TagPredicate struct {
	Key   string
	Value string
}

// OverpassElement is a raw element returned from the Overpass API.
// Lat/Lon are set for nodes; ways and relations carry a provider-computed
// centroid in Center when the query asks for `out center`.
type OverpassElement struct {
	ID     int64    `json:"id"`
	Type   string   `json:"type"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// Coordinates resolves the element's position: a node's own lat/lon, or
// the provider-supplied centroid for ways and relations. The second
// return is false when the element has no resolvable position; such
// elements cannot be scored or displayed and are dropped by callers.
func (e *OverpassElement) Coordinates() (geo.Point, bool) {
	if e.Type == "node" {
		if e.Lat == nil || e.Lon == nil {
			return geo.Point{}, false
		}
		return geo.Point{Latitude: *e.Lat, Longitude: *e.Lon}, true
	}
	if e.Center == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: e.Center.Lat, Longitude: e.Center.Lon}, true
}

type overpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// Place is a Nominatim geocoding result. Nominatim serializes
// coordinates as strings.
type Place struct {
	PlaceID     int64             `json:"place_id"`
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Class       string            `json:"class,omitempty"`
	Type        string            `json:"type,omitempty"`
	Address     map[string]string `json:"address,omitempty"`
}
