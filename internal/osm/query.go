package osm

import (
	"fmt"
	"strings"

	"github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"
)

// overpassTimeout is the server-side evaluation budget annotated on
// every query.
const overpassTimeout = 25

// buildFeatureQuery renders the Overpass QL for one category search:
// every predicate ORed across node, way and relation kinds inside the
// box, with `out center` so ways and relations carry a centroid we can
// compute distances from.
func buildFeatureQuery(bbox geo.BoundingBox, predicates []TagPredicate) string {
	var filters strings.Builder
	for _, p := range predicates {
		for _, kind := range []string{"node", "way", "relation"} {
			fmt.Fprintf(&filters, "%s[%q=%q](%s);", kind, p.Key, p.Value, bbox.OverpassString())
		}
	}
	return fmt.Sprintf("[out:json][timeout:%d];(%s);out center;", overpassTimeout, filters.String())
}

// buildKeyedNodeQuery renders a query matching nodes carrying any of the
// given tag keys, whatever the value. Used for generic POI discovery.
func buildKeyedNodeQuery(bbox geo.BoundingBox, keys []string) string {
	var filters strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&filters, "node[%q](%s);", key, bbox.OverpassString())
	}
	return fmt.Sprintf("[out:json][timeout:%d];(%s);out body;", overpassTimeout, filters.String())
}
