package neighborhood

import (
	"time"

	"github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"
)

// Feature is one scored point of interest. The name, coordinates,
// feature_group and sub_feature_group fields are consumed verbatim by
// the map rendering layer and must keep these JSON names.
type Feature struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	Coordinates     geo.Point         `json:"coordinates"`
	Distance        float64           `json:"distance"`
	Tags            map[string]string `json:"tags"`
	FeatureGroup    string            `json:"feature_group"`
	SubFeatureGroup string            `json:"sub_feature_group,omitempty"`
}

// Metrics summarizes one category's features. Average and minimum are
// absent (null) when the category matched nothing.
type Metrics struct {
	TotalCount  int      `json:"total_count"`
	AvgDistance *float64 `json:"avg_distance"`
	MinDistance *float64 `json:"min_distance"`
}

// CategoryResult is the per-category payload: either features plus
// metrics, or an error marker when the provider query failed. The two
// cases are mutually exclusive.
type CategoryResult struct {
	Count    int       `json:"count"`
	Features []Feature `json:"features"`
	Metrics  *Metrics  `json:"metrics,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Center describes the analyzed point with its resolved address.
type Center struct {
	Coordinates geo.Point `json:"coordinates"`
	Address     string    `json:"address"`
}

// Scores aggregates the per-category scores with the two derived
// indices.
type Scores struct {
	Overall      float64            `json:"overall"`
	Walkability  int                `json:"walkability"`
	MetricGroups map[string]float64 `json:"metric_groups"`
}

// Report is the aggregate analysis result. It is assembled once per
// invocation and immutable afterwards.
type Report struct {
	Center         Center                    `json:"center"`
	Scores         Scores                    `json:"scores"`
	MetricGroups   map[string]CategoryResult `json:"metric_groups"`
	AnalysisRadius float64                   `json:"analysis_radius"`
	Timestamp      time.Time                 `json:"timestamp"`
}
