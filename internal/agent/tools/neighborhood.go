// Package tools adapts the neighborhood analyzer into eino tool
// definitions for the agent layer. The agent itself (model binding,
// prompting) lives outside this repository.
package tools

import (
	"context"

	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/neighborhood"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type AnalyzeNeighborhoodInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius,omitempty"`
}

func createAnalyzeNeighborhoodTool(analyzer *neighborhood.Analyzer) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: "analyze_neighborhood",
			Desc: "Search around a geographic point to identify nearby establishments, amenities, and points of interest grouped by Social Determinants of Health categories (healthcare, education, food access, transportation, and more). Returns per-category features with distances, per-category scores, an overall score and a walkability score. Use this tool for neighborhood analysis, location-based recommendations, and proximity-based decision making.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"latitude": {
					Type:     "number",
					Desc:     "Latitude of the point to analyze, in decimal degrees (-90 to 90)",
					Required: true,
				},
				"longitude": {
					Type:     "number",
					Desc:     "Longitude of the point to analyze, in decimal degrees (-180 to 180)",
					Required: true,
				},
				"radius": {
					Type: "number",
					Desc: "Search radius in meters (default: 1000)",
				},
			}),
		},
		func(ctx context.Context, in *AnalyzeNeighborhoodInput) (*neighborhood.Report, error) {
			radius := in.Radius
			if radius == 0 {
				radius = neighborhood.DefaultRadius
			}
			return analyzer.Analyze(ctx, in.Latitude, in.Longitude, radius)
		},
	)
}

// GetTools returns every tool this service contributes to the agent.
func GetTools(analyzer *neighborhood.Analyzer) []tool.BaseTool {
	return []tool.BaseTool{
		createAnalyzeNeighborhoodTool(analyzer),
	}
}
