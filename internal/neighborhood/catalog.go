package neighborhood

import "github.com/SocialHealthAI/Data-Analytics-Assistant/internal/osm"

// Category is one Social Determinants of Health grouping: a unique name
// plus the OSM tag predicates that identify its features. The catalog is
// defined once at process start and never mutated; adding a grouping is
// a new entry here and nothing else.
type Category struct {
	Name       string
	Predicates []osm.TagPredicate
}

var catalog = []Category{
	{Name: "healthcare", Predicates: []osm.TagPredicate{
		{Key: "amenity", Value: "hospital"}, {Key: "amenity", Value: "clinic"},
		{Key: "amenity", Value: "doctors"}, {Key: "amenity", Value: "dentist"},
		{Key: "amenity", Value: "pharmacy"}, {Key: "amenity", Value: "health_post"},
	}},
	{Name: "education", Predicates: []osm.TagPredicate{
		{Key: "amenity", Value: "school"}, {Key: "amenity", Value: "kindergarten"},
		{Key: "amenity", Value: "college"}, {Key: "amenity", Value: "university"},
		{Key: "amenity", Value: "library"},
	}},
	{Name: "food_access", Predicates: []osm.TagPredicate{
		{Key: "shop", Value: "supermarket"}, {Key: "shop", Value: "convenience"},
		{Key: "shop", Value: "grocery"}, {Key: "amenity", Value: "food_bank"},
		{Key: "amenity", Value: "marketplace"},
	}},
	{Name: "economic_stability", Predicates: []osm.TagPredicate{
		{Key: "amenity", Value: "bank"}, {Key: "amenity", Value: "atm"},
		{Key: "amenity", Value: "post_office"}, {Key: "shop", Value: "mall"},
		{Key: "shop", Value: "department_store"}, {Key: "shop", Value: "clothes"},
	}},
	{Name: "housing", Predicates: []osm.TagPredicate{
		{Key: "building", Value: "apartments"}, {Key: "building", Value: "house"},
		{Key: "building", Value: "residential"}, {Key: "amenity", Value: "social_facility"},
	}},
	{Name: "transportation", Predicates: []osm.TagPredicate{
		{Key: "public_transport", Value: "stop_position"}, {Key: "railway", Value: "station"},
		{Key: "amenity", Value: "bus_station"}, {Key: "highway", Value: "bus_stop"},
		{Key: "amenity", Value: "bicycle_rental"}, {Key: "amenity", Value: "car_rental"},
	}},
	{Name: "environment", Predicates: []osm.TagPredicate{
		{Key: "leisure", Value: "park"}, {Key: "leisure", Value: "garden"},
		{Key: "leisure", Value: "playground"}, {Key: "leisure", Value: "nature_reserve"},
		{Key: "landuse", Value: "forest"},
	}},
	{Name: "community", Predicates: []osm.TagPredicate{
		{Key: "amenity", Value: "community_centre"}, {Key: "amenity", Value: "place_of_worship"},
		{Key: "amenity", Value: "social_centre"}, {Key: "amenity", Value: "theatre"},
		{Key: "amenity", Value: "arts_centre"},
	}},
	{Name: "safety", Predicates: []osm.TagPredicate{
		{Key: "amenity", Value: "police"}, {Key: "amenity", Value: "fire_station"},
		{Key: "amenity", Value: "townhall"}, {Key: "emergency", Value: "ambulance_station"},
		{Key: "emergency", Value: "fire_hydrant"},
	}},
}

// Catalog returns the static category table in analysis order. Callers
// must treat it as read-only.
func Catalog() []Category {
	return catalog
}

// subgroupKeys is the fixed priority list used to derive a feature's
// subgroup label from its tags. First present non-empty value wins.
var subgroupKeys = []string{
	"amenity", "shop", "leisure", "public_transport", "railway",
	"highway", "landuse", "building", "emergency",
}

func deriveSubgroup(tags map[string]string) string {
	for _, key := range subgroupKeys {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return ""
}
