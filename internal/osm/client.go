// Package osm is the client for the two OpenStreetMap-backed providers
// the neighborhood analysis service depends on: Nominatim for
// geocoding and Overpass for spatial feature search.
package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	errx "github.com/SocialHealthAI/Data-Analytics-Assistant/internal/core/error"
	"github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/geo"
	logx "github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/logger"
	"github.com/rs/zerolog"
)

// Config holds the provider endpoints and transport settings.
type Config struct {
	NominatimBaseURL string `envconfig:"NOMINATIM_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	OverpassURL      string `envconfig:"OVERPASS_URL" default:"https://overpass-api.de/api/interpreter"`
	UserAgent        string `envconfig:"OSM_USER_AGENT" default:"sdoh-analytics-assistant/1.0"`
	TimeoutSeconds   int    `envconfig:"OSM_TIMEOUT_SECONDS" default:"30"`
}

// Client talks to Nominatim and Overpass. The Nominatim session is
// acquired once with Connect and released with Close, scoped to the
// hosting process. Overpass feature searches each run on their own
// transient session so one category's failure cannot poison another's
// connection.
type Client struct {
	cfg     Config
	session *http.Client
	cache   QueryCache
	log     zerolog.Logger
}

// NewClient builds an unconnected client. cache may be nil to disable
// query memoization.
func NewClient(cfg Config, cache QueryCache) *Client {
	return &Client{
		cfg:   cfg,
		cache: cache,
		log:   logx.With("osm"),
	}
}

// Connect acquires the long-lived HTTP session. It must be called once
// before any request method.
func (c *Client) Connect() error {
	c.session = &http.Client{
		Timeout: c.timeout(),
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
	return nil
}

// Close releases the session. Safe to call on an unconnected client.
func (c *Client) Close() {
	if c.session != nil {
		c.session.CloseIdleConnections()
		c.session = nil
	}
}

func (c *Client) timeout() time.Duration {
	return time.Duration(c.cfg.TimeoutSeconds) * time.Second
}

// ReverseGeocode resolves coordinates to a place via Nominatim /reverse.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, error) {
	if c.session == nil {
		return nil, errx.ErrProviderUnavailable
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("format", "json")

	body, err := c.nominatimGet(ctx, "/reverse", params)
	if err != nil {
		return nil, errx.WrapGeocode(err)
	}

	var place Place
	if err := json.Unmarshal(body, &place); err != nil {
		return nil, errx.WrapGeocode(fmt.Errorf("decode reverse geocode response: %w", err))
	}
	return &place, nil
}

// Geocode resolves an address or place name via Nominatim /search.
func (c *Client) Geocode(ctx context.Context, query string) ([]Place, error) {
	if c.session == nil {
		return nil, errx.ErrProviderUnavailable
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "5")

	body, err := c.nominatimGet(ctx, "/search", params)
	if err != nil {
		return nil, errx.WrapGeocode(err)
	}

	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, errx.WrapGeocode(fmt.Errorf("decode geocode response: %w", err))
	}
	return places, nil
}

func (c *Client) nominatimGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.NominatimBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim %s returned HTTP %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SearchFeatures queries Overpass for every element matching any of the
// predicates inside the bounding box, across node, way and relation
// kinds. Ways and relations come back with a centroid (`out center`).
func (c *Client) SearchFeatures(ctx context.Context, bbox geo.BoundingBox, predicates []TagPredicate) ([]OverpassElement, error) {
	if c.session == nil {
		return nil, errx.ErrProviderUnavailable
	}

	query := buildFeatureQuery(bbox, predicates)
	body, err := c.overpassQuery(ctx, query)
	if err != nil {
		return nil, errx.WrapOverpass(err)
	}

	var decoded overpassResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errx.WrapOverpass(fmt.Errorf("decode overpass response: %w", err))
	}
	return decoded.Elements, nil
}

// NearbyPOIs returns generic points of interest around a location. When
// categories is empty it defaults to common POI tag keys.
func (c *Client) NearbyPOIs(ctx context.Context, lat, lon, radiusMeters float64, categories []string) ([]OverpassElement, error) {
	if c.session == nil {
		return nil, errx.ErrProviderUnavailable
	}

	if len(categories) == 0 {
		categories = []string{"amenity", "shop", "tourism", "leisure"}
	}
	bbox := geo.BoundingBoxFromRadius(geo.Point{Latitude: lat, Longitude: lon}, radiusMeters)

	body, err := c.overpassQuery(ctx, buildKeyedNodeQuery(bbox, categories))
	if err != nil {
		return nil, errx.WrapOverpass(err)
	}

	var decoded overpassResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, errx.WrapOverpass(fmt.Errorf("decode overpass response: %w", err))
	}
	return decoded.Elements, nil
}

// overpassQuery posts one Overpass QL query, consulting the memoization
// cache first. Each call uses its own transient HTTP session.
func (c *Client) overpassQuery(ctx context.Context, query string) ([]byte, error) {
	if c.cache != nil {
		if payload, ok := c.cache.Get(ctx, c.cfg.OverpassURL, query); ok {
			c.log.Debug().Msg("overpass query served from cache")
			return payload, nil
		}
	}

	form := url.Values{}
	form.Set("data", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OverpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	transient := &http.Client{Timeout: c.timeout()}
	defer transient.CloseIdleConnections()

	resp, err := transient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(ctx, c.cfg.OverpassURL, query, body)
	}
	return body, nil
}
