// Package server exposes the neighborhood analyzer over the Model
// Context Protocol so agent frameworks can call it as a remote tool.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SocialHealthAI/Data-Analytics-Assistant/internal/neighborhood"
	logx "github.com/SocialHealthAI/Data-Analytics-Assistant/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "Location-Based App MCP Server"
	serverVersion = "1.0.0"
	manifestURI   = "plugin://ai-plugin/manifest"
)

// Config holds the listen address for the streamable HTTP transport.
type Config struct {
	Host string `envconfig:"MCP_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"MCP_PORT" default:"8000"`
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// New builds the MCP server with the analyze_neighborhood tool and the
// ai-plugin manifest resource registered.
func New(analyzer *neighborhood.Analyzer) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	tool := mcp.NewTool("analyze_neighborhood",
		mcp.WithDescription("Search around a geographic point to identify nearby establishments, amenities, and points of interest for location-based recommendations, neighborhood analysis, and proximity-based decision making"),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude of the point to analyze, in decimal degrees (-90 to 90)"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude of the point to analyze, in decimal degrees (-180 to 180)"),
		),
		mcp.WithNumber("radius",
			mcp.Description("Search radius in meters (default: 1000)"),
			mcp.DefaultNumber(neighborhood.DefaultRadius),
		),
	)
	s.AddTool(tool, analyzeNeighborhoodHandler(analyzer))

	s.AddResource(
		mcp.NewResource(manifestURI, "manifest", mcp.WithMIMEType("application/json")),
		manifestHandler,
	)

	return s
}

// NewStreamableHTTP wraps the MCP server in its HTTP transport.
func NewStreamableHTTP(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s)
}

func analyzeNeighborhoodHandler(analyzer *neighborhood.Analyzer) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		latitude, err := req.RequireFloat("latitude")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		longitude, err := req.RequireFloat("longitude")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		radius := req.GetFloat("radius", neighborhood.DefaultRadius)

		report, err := analyzer.Analyze(ctx, latitude, longitude, radius)
		if err != nil {
			logx.Error().Err(err).Msg("neighborhood analysis failed")
			return nil, err
		}

		payload, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("marshal report: %w", err)
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// manifest mirrors the tool surface for clients probing the plugin
// resource instead of MCP tool listing.
func manifestHandler(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	manifest := map[string]any{
		"name": serverName,
		"tools": []map[string]any{
			{
				"name":        "analyze_neighborhood",
				"description": "Search around a geographic point to identify nearby establishments, amenities, and points of interest for location-based recommendations, neighborhood analysis, and proximity-based decision making",
				"parameters": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"latitude":  map[string]any{"type": "number"},
						"longitude": map[string]any{"type": "number"},
						"radius":    map[string]any{"type": "number"},
					},
					"required": []string{"latitude", "longitude"},
				},
			},
		},
	}

	payload, err := json.Marshal(manifest)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      manifestURI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}
