package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/neighborhood"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/osm"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"
	"github.com/cloudwego/eino/components/tool"
)

type stubProvider struct{}

func (stubProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*osm.Place, error) {
	return &osm.Place{DisplayName: "Test City"}, nil
}

func (stubProvider) SearchFeatures(ctx context.Context, bbox geo.BoundingBox, predicates []osm.TagPredicate) ([]osm.OverpassElement, error) {
	return nil, nil
}

func TestGetTools(t *testing.T) {
	analyzer := neighborhood.NewAnalyzer(stubProvider{})
	all := GetTools(analyzer)
	if len(all) != 1 {
		t.Fatalf("got %d tools, want 1", len(all))
	}

	info, err := all[0].Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Name != "analyze_neighborhood" {
		t.Errorf("tool name = %q", info.Name)
	}
}

func TestAnalyzeNeighborhoodToolInvoke(t *testing.T) {
	analyzer := neighborhood.NewAnalyzer(stubProvider{})
	invokable, ok := GetTools(analyzer)[0].(tool.InvokableTool)
	if !ok {
		t.Fatal("tool is not invokable")
	}

	out, err := invokable.InvokableRun(context.Background(), `{"latitude": 40.7128, "longitude": -74.0060}`)
	if err != nil {
		t.Fatalf("InvokableRun: %v", err)
	}

	var report neighborhood.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("tool output not a report: %v", err)
	}
	if report.Center.Address != "Test City" {
		t.Errorf("address = %q", report.Center.Address)
	}
	if report.AnalysisRadius != neighborhood.DefaultRadius {
		t.Errorf("radius = %v, want default", report.AnalysisRadius)
	}
}
