// Package neighborhood implements the SDOH neighborhood analysis: fan
// out one spatial feature search per category around a point, score
// each category by supply and proximity, and aggregate into a single
// report.
package neighborhood

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	errx "github.com/SocialHealthAI/Data-Analytics-Assistant/internal/core/error"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/osm"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"
	logx "github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/logger"
	"github.com/rs/zerolog"
)

const (
	// DefaultRadius is the search radius in meters when the caller does
	// not supply one.
	DefaultRadius = 1000.0
	// walkableDistance is the threshold below which a feature counts
	// toward the walkability index.
	walkableDistance = 500.0
	// maxWalkability caps the walkability index.
	maxWalkability = 10
	// unknownAddress annotates the report when reverse geocoding fails.
	unknownAddress = "Unknown location"
)

// Provider is the slice of the geo client the analyzer depends on.
type Provider interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*osm.Place, error)
	SearchFeatures(ctx context.Context, bbox geo.BoundingBox, predicates []osm.TagPredicate) ([]osm.OverpassElement, error)
}

// Analyzer runs neighborhood analyses. It is stateless across calls;
// every invocation builds a fresh report.
type Analyzer struct {
	provider Provider
	catalog  []Category
	log      zerolog.Logger
}

func NewAnalyzer(provider Provider) *Analyzer {
	return &Analyzer{
		provider: provider,
		catalog:  Catalog(),
		log:      logx.With("neighborhood"),
	}
}

// Analyze runs the full analysis for a point and radius.
//
// Only two failure classes abort the call: invalid parameters and an
// unavailable provider session. Everything else degrades: a failed
// reverse geocode leaves a placeholder address, a failed category query
// becomes that category's error result with score zero, and elements
// without coordinates are silently dropped. The caller therefore always
// gets a well-formed report on any non-fatal path.
func (a *Analyzer) Analyze(ctx context.Context, latitude, longitude, radiusMeters float64) (*Report, error) {
	if err := geo.ValidateCoords(latitude, longitude); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("invalid radius: %f (must be positive)", radiusMeters)
	}

	center := geo.Point{Latitude: latitude, Longitude: longitude}

	address := unknownAddress
	place, err := a.provider.ReverseGeocode(ctx, latitude, longitude)
	switch {
	case errors.Is(err, errx.ErrProviderUnavailable):
		return nil, err
	case err != nil:
		a.log.Warn().Err(err).Float64("lat", latitude).Float64("lon", longitude).
			Msg("reverse geocode failed, using placeholder address")
	case place.DisplayName != "":
		address = place.DisplayName
	}

	// One box for all categories.
	bbox := geo.BoundingBoxFromRadius(center, radiusMeters)

	type outcome struct {
		result CategoryResult
		score  float64
	}

	// Fan out one provider query per category. Each goroutine writes
	// only its own slot, so no synchronization beyond the join.
	outcomes := make([]outcome, len(a.catalog))
	var wg sync.WaitGroup
	for i, cat := range a.catalog {
		wg.Add(1)
		go func(i int, cat Category) {
			defer wg.Done()
			a.log.Info().Str("category", cat.Name).Msg("analyzing category")
			elements, err := a.provider.SearchFeatures(ctx, bbox, cat.Predicates)
			if err != nil {
				a.log.Warn().Err(err).Str("category", cat.Name).Msg("category analysis failed")
				outcomes[i] = outcome{result: CategoryResult{Error: err.Error()}, score: 0}
				return
			}
			result, score := scoreCategory(cat, center, radiusMeters, elements)
			outcomes[i] = outcome{result: result, score: score}
		}(i, cat)
	}
	wg.Wait()

	metricGroups := make(map[string]CategoryResult, len(a.catalog))
	scores := make(map[string]float64, len(a.catalog))
	var total float64
	for i, cat := range a.catalog {
		metricGroups[cat.Name] = outcomes[i].result
		scores[cat.Name] = round1(outcomes[i].score)
		total += outcomes[i].score
	}

	overall := 0.0
	if len(scores) > 0 {
		overall = total / float64(len(scores))
	}

	return &Report{
		Center:         Center{Coordinates: center, Address: address},
		Scores:         Scores{Overall: round1(overall), Walkability: walkability(metricGroups), MetricGroups: scores},
		MetricGroups:   metricGroups,
		AnalysisRadius: radiusMeters,
		Timestamp:      time.Now(),
	}, nil
}

// walkability combines the number of features within walking distance
// with the number of categories having at least one, capped at 10. The
// two units are deliberately conflated; this is a simplistic heuristic,
// not a principled index.
func walkability(metricGroups map[string]CategoryResult) int {
	walkableFeatures := 0
	walkableCategories := 0
	for _, result := range metricGroups {
		if result.Error != "" {
			continue
		}
		n := 0
		for _, f := range result.Features {
			if f.Distance <= walkableDistance {
				n++
			}
		}
		if n > 0 {
			walkableFeatures += n
			walkableCategories++
		}
	}

	score := walkableFeatures + walkableCategories
	if score > maxWalkability {
		score = maxWalkability
	}
	return score
}
