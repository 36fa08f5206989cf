package neighborhood

import (
	"math"
	"sort"

	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/osm"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"
)

// maxRetainedFeatures caps how many features each category keeps in the
// report; metrics still cover everything that matched.
const maxRetainedFeatures = 10

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// scoreCategory converts one category's raw elements into the retained
// feature list, metrics and score.
//
// Elements without resolvable coordinates are dropped: they can be
// neither scored nor displayed. The score is supply plus proximity on a
// 0-10 scale: up to 5 points saturating at five matches, plus up to 5
// points decaying linearly from the center to the search radius.
func scoreCategory(cat Category, center geo.Point, radiusMeters float64, elements []osm.OverpassElement) (CategoryResult, float64) {
	features := make([]Feature, 0, len(elements))
	var sum, min float64
	for _, el := range elements {
		pt, ok := el.Coordinates()
		if !ok {
			continue
		}
		dist := geo.Distance(center, pt)
		sum += dist
		if len(features) == 0 || dist < min {
			min = dist
		}

		name := el.Tags["name"]
		if name == "" {
			name = "Unnamed"
		}
		features = append(features, Feature{
			ID:              el.ID,
			Name:            name,
			Type:            el.Type,
			Coordinates:     pt,
			Distance:        round1(dist),
			Tags:            el.Tags,
			FeatureGroup:    cat.Name,
			SubFeatureGroup: deriveSubgroup(el.Tags),
		})
	}

	count := len(features)
	if count == 0 {
		return CategoryResult{
			Count:    0,
			Features: []Feature{},
			Metrics:  &Metrics{TotalCount: 0},
		}, 0
	}

	sort.Slice(features, func(i, j int) bool {
		return features[i].Distance < features[j].Distance
	})

	countScore := math.Min(float64(count)/5.0, 1.0) * 5.0
	proximityScore := (1.0 - math.Min(min/radiusMeters, 1.0)) * 5.0
	score := countScore + proximityScore

	avg := round1(sum / float64(count))
	minRounded := round1(min)
	retained := features
	if len(retained) > maxRetainedFeatures {
		retained = retained[:maxRetainedFeatures]
	}

	return CategoryResult{
		Count:    count,
		Features: retained,
		Metrics: &Metrics{
			TotalCount:  count,
			AvgDistance: &avg,
			MinDistance: &minRounded,
		},
	}, score
}
