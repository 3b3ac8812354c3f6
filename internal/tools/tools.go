// Package tools exposes the stats engine as MCP tools for a chat agent. Each
// tool returns the plain-text report of one engine operation.
package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/albapepper/cricket-stats/internal/report"
	"github.com/albapepper/cricket-stats/internal/stats"
)

// PlayerArgs is the input schema for the single-player tools.
type PlayerArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Name of the cricket player (any part of the name)"`
}

// CompareArgs is the input schema for compare_players.
type CompareArgs struct {
	Player1 string `json:"player1" jsonschema:"First player name"`
	Player2 string `json:"player2" jsonschema:"Second player name"`
	Metric  string `json:"metric" jsonschema:"Metric to compare: runs, wickets, average, economy"`
}

// TopPerformersArgs is the input schema for get_top_performers.
type TopPerformersArgs struct {
	Category string `json:"category,omitempty" jsonschema:"batsmen or bowlers (default batsmen)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Number of players (default 5)"`
}

// NoArgs is the input schema for tools without parameters.
type NoArgs struct{}

// ToolInfo describes one registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server owns the MCP server and its tool registry.
type Server struct {
	engine   *stats.Engine
	server   *mcp.Server
	registry []ToolInfo
}

// NewServer registers every stats tool on a new MCP server.
func NewServer(engine *stats.Engine, version string) *Server {
	s := &Server{
		engine: engine,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "cricket-stats-mcp",
			Version: version,
		}, nil),
	}

	addTool(s, &mcp.Tool{
		Name:        "get_player_batting_stats",
		Description: "Get batting statistics for a specific player",
	}, s.battingStats)

	addTool(s, &mcp.Tool{
		Name:        "get_player_bowling_stats",
		Description: "Get bowling statistics for a specific player",
	}, s.bowlingStats)

	addTool(s, &mcp.Tool{
		Name:        "compare_players",
		Description: "Compare two players on batting or bowling metrics",
	}, s.comparePlayers)

	addTool(s, &mcp.Tool{
		Name:        "get_top_performers",
		Description: "Get top batsmen or bowlers",
	}, s.topPerformers)

	addTool(s, &mcp.Tool{
		Name:        "get_match_summary",
		Description: "Get summary of all matches",
	}, s.matchSummary)

	addTool(s, &mcp.Tool{
		Name:        "analyze_recent_form",
		Description: "Analyze recent form of a player",
	}, s.recentForm)

	return s
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.registry = append(s.registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.server, tool, handler)
}

// Tools lists the registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	return s.registry
}

// HTTPHandler serves the tools over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

// RunStdio serves the tools over stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) battingStats(ctx context.Context, _ *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
	res, err := s.engine.BattingSummary(ctx, args.PlayerName)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(report.Batting(res)), nil, nil
}

func (s *Server) bowlingStats(ctx context.Context, _ *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
	res, err := s.engine.BowlingSummary(ctx, args.PlayerName)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(report.Bowling(res)), nil, nil
}

func (s *Server) comparePlayers(ctx context.Context, _ *mcp.CallToolRequest, args CompareArgs) (*mcp.CallToolResult, any, error) {
	res, err := s.engine.ComparePlayers(ctx, args.Player1, args.Player2, args.Metric)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(report.Comparison(res)), nil, nil
}

func (s *Server) topPerformers(ctx context.Context, _ *mcp.CallToolRequest, args TopPerformersArgs) (*mcp.CallToolResult, any, error) {
	category := args.Category
	if category == "" {
		category = "batsmen"
	}
	res, err := s.engine.TopPerformers(ctx, category, args.Limit)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(report.Leaderboard(res)), nil, nil
}

func (s *Server) matchSummary(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
	res, err := s.engine.MatchSummary(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(report.Matches(res)), nil, nil
}

func (s *Server) recentForm(ctx context.Context, _ *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
	res, err := s.engine.RecentForm(ctx, args.PlayerName)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(report.Form(res)), nil, nil
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
