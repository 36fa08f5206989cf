package osm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	errx "github.com/SocialHealthAI/Data-Analytics-Assistant/internal/core/error"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"
)

func testBBox() geo.BoundingBox {
	return geo.BoundingBoxFromRadius(geo.Point{Latitude: 40.7128, Longitude: -74.0060}, 1000)
}

func TestClientNotConnected(t *testing.T) {
	c := NewClient(Config{}, nil)
	ctx := context.Background()

	if _, err := c.ReverseGeocode(ctx, 40.7, -74.0); !errors.Is(err, errx.ErrProviderUnavailable) {
		t.Errorf("ReverseGeocode on unconnected client: got %v, want ErrProviderUnavailable", err)
	}
	if _, err := c.SearchFeatures(ctx, testBBox(), nil); !errors.Is(err, errx.ErrProviderUnavailable) {
		t.Errorf("SearchFeatures on unconnected client: got %v, want ErrProviderUnavailable", err)
	}
	if _, err := c.Geocode(ctx, "New York"); !errors.Is(err, errx.ErrProviderUnavailable) {
		t.Errorf("Geocode on unconnected client: got %v, want ErrProviderUnavailable", err)
	}
}

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/reverse") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		w.Write([]byte(`{"place_id": 123, "display_name": "City Hall, New York, USA", "lat": "40.7128", "lon": "-74.0060"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{NominatimBaseURL: srv.URL, UserAgent: "test-agent", TimeoutSeconds: 5}, nil)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Close()

	place, err := c.ReverseGeocode(context.Background(), 40.7128, -74.0060)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if place.DisplayName != "City Hall, New York, USA" {
		t.Errorf("DisplayName = %q", place.DisplayName)
	}
}

func TestReverseGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{NominatimBaseURL: srv.URL, TimeoutSeconds: 5}, nil)
	c.Connect()
	defer c.Close()

	_, err := c.ReverseGeocode(context.Background(), 40.7, -74.0)
	if err == nil {
		t.Fatal("expected error for HTTP 503")
	}
	var appErr *errx.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Message != errx.GeocodeErrorMessage {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestSearchFeatures(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		r.ParseForm()
		gotQuery = r.PostFormValue("data")
		w.Write([]byte(`{"elements": [
			{"type": "node", "id": 1, "lat": 40.713, "lon": -74.007, "tags": {"amenity": "hospital", "name": "General"}},
			{"type": "way", "id": 2, "center": {"lat": 40.714, "lon": -74.005}, "tags": {"amenity": "clinic"}},
			{"type": "relation", "id": 3, "tags": {"amenity": "clinic"}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{OverpassURL: srv.URL, TimeoutSeconds: 5}, nil)
	c.Connect()
	defer c.Close()

	predicates := []TagPredicate{{Key: "amenity", Value: "hospital"}, {Key: "amenity", Value: "clinic"}}
	elements, err := c.SearchFeatures(context.Background(), testBBox(), predicates)
	if err != nil {
		t.Fatalf("SearchFeatures: %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(elements))
	}

	for _, want := range []string{
		`node["amenity"="hospital"]`,
		`way["amenity"="hospital"]`,
		`relation["amenity"="hospital"]`,
		`node["amenity"="clinic"]`,
		"[out:json][timeout:25]",
		"out center;",
	} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query missing %q:\n%s", want, gotQuery)
		}
	}

	// Node resolves to its own position.
	pt, ok := elements[0].Coordinates()
	if !ok || pt.Latitude != 40.713 {
		t.Errorf("node coordinates = %v, %v", pt, ok)
	}
	// Way resolves to the provider centroid.
	pt, ok = elements[1].Coordinates()
	if !ok || pt.Longitude != -74.005 {
		t.Errorf("way coordinates = %v, %v", pt, ok)
	}
	// Relation without a centroid is unresolvable.
	if _, ok := elements[2].Coordinates(); ok {
		t.Error("relation without center should not resolve coordinates")
	}
}

func TestSearchFeaturesUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"elements": []}`))
	}))
	defer srv.Close()

	cache := NewMemoryCache()
	c := NewClient(Config{OverpassURL: srv.URL, TimeoutSeconds: 5}, cache)
	c.Connect()
	defer c.Close()

	ctx := context.Background()
	predicates := []TagPredicate{{Key: "leisure", Value: "park"}}
	for i := 0; i < 3; i++ {
		if _, err := c.SearchFeatures(ctx, testBBox(), predicates); err != nil {
			t.Fatalf("SearchFeatures #%d: %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("provider hit %d times, want 1 (memoized)", got)
	}

	// Explicit invalidation forces a refetch.
	cache.Invalidate(ctx, srv.URL, buildFeatureQuery(testBBox(), predicates))
	if _, err := c.SearchFeatures(ctx, testBBox(), predicates); err != nil {
		t.Fatalf("SearchFeatures after invalidate: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("provider hit %d times after invalidate, want 2", got)
	}
}

func TestNearbyPOIsDefaultCategories(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotQuery = r.PostFormValue("data")
		w.Write([]byte(`{"elements": [{"type": "node", "id": 9, "lat": 40.71, "lon": -74.0}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{OverpassURL: srv.URL, TimeoutSeconds: 5}, nil)
	c.Connect()
	defer c.Close()

	elements, err := c.NearbyPOIs(context.Background(), 40.7128, -74.0060, 500, nil)
	if err != nil {
		t.Fatalf("NearbyPOIs: %v", err)
	}
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	for _, key := range []string{`node["amenity"]`, `node["shop"]`, `node["tourism"]`, `node["leisure"]`} {
		if !strings.Contains(gotQuery, key) {
			t.Errorf("query missing default category %q", key)
		}
	}
}
