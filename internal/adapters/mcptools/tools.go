// Package mcptools exposes the league engines as Model Context Protocol tools
// so assistants can query standings and replacements over streamable HTTP.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/replacement"
	"github.com/okian/dreamxi/internal/domain/scoring"
	"github.com/okian/dreamxi/internal/domain/trend"
	"github.com/okian/dreamxi/internal/domain/types"
	"github.com/okian/dreamxi/pkg/metrics"
)

// Dependencies is the read surface the tools call into.
type Dependencies interface {
	Leaderboard(ctx context.Context, day int) (types.Leaderboard, error)
	Summary(ctx context.Context, day int) (ranking.Summary, error)
	Players(ctx context.Context, day int, owner string) ([]scoring.PlayerPoints, error)
	Trend(ctx context.Context) (map[string][]trend.Point, error)
	Replacements(ctx context.Context, owner, player string, day int) (replacement.Result, error)
	Watchlist(ctx context.Context, day int) (types.Watchlist, error)
}

// DayArgs selects a match day.
type DayArgs struct {
	Day int `json:"day,omitempty" jsonschema:"Match day (0 = latest)"`
}

// NoArgs is the input of tools without parameters.
type NoArgs struct{}

// PlayersArgs selects a day and optionally one owner's squad.
type PlayersArgs struct {
	Day   int    `json:"day,omitempty" jsonschema:"Match day (0 = latest)"`
	Owner string `json:"owner,omitempty" jsonschema:"Owner name; empty lists every player"`
}

// ReplacementArgs names the ruled-out player.
type ReplacementArgs struct {
	Owner  string `json:"owner" jsonschema:"Owner holding the ruled-out player (required)"`
	Player string `json:"player" jsonschema:"Ruled-out player name (required)"`
	Day    int    `json:"day,omitempty" jsonschema:"Points cut-off day (0 = latest)"`
}

// Tools implements the MCP tool handlers.
type Tools struct {
	deps Dependencies
}

// New creates the tool set.
func New(deps Dependencies) *Tools {
	return &Tools{deps: deps}
}

// NewServer builds an MCP server with every league tool registered.
func NewServer(deps Dependencies, version string) *mcp.Server {
	t := New(deps)
	server := mcp.NewServer(&mcp.Implementation{Name: "dreamxi", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "leaderboard",
		Description: "League standings with gaps to the leader and day-over-day movement",
	}, t.Leaderboard)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_summary",
		Description: "Top team, top player, mean and spread of owner totals",
	}, t.Summary)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "player_points",
		Description: "Cumulative points per player, optionally for one owner",
	}, t.Players)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "owner_trend",
		Description: "Each owner's cumulative total after every match day",
	}, t.Trend)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "replacements",
		Description: "Eligible replacements for a ruled-out player",
	}, t.Replacements)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "watchlist",
		Description: "Players whose country plays on a match day",
	}, t.Watchlist)
	return server
}

// NewHandler serves server over streamable HTTP with JSON responses.
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

// Leaderboard handles the leaderboard tool.
func (t *Tools) Leaderboard(ctx context.Context, _ *mcp.CallToolRequest, args DayArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON("leaderboard", func() (any, error) { return t.deps.Leaderboard(ctx, args.Day) })
}

// Summary handles the league_summary tool.
func (t *Tools) Summary(ctx context.Context, _ *mcp.CallToolRequest, args DayArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON("league_summary", func() (any, error) { return t.deps.Summary(ctx, args.Day) })
}

// Players handles the player_points tool.
func (t *Tools) Players(ctx context.Context, _ *mcp.CallToolRequest, args PlayersArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON("player_points", func() (any, error) { return t.deps.Players(ctx, args.Day, args.Owner) })
}

// Trend handles the owner_trend tool.
func (t *Tools) Trend(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON("owner_trend", func() (any, error) { return t.deps.Trend(ctx) })
}

// Replacements handles the replacements tool.
func (t *Tools) Replacements(ctx context.Context, _ *mcp.CallToolRequest, args ReplacementArgs) (*mcp.CallToolResult, any, error) {
	if args.Owner == "" || args.Player == "" {
		return toolError("replacements", fmt.Errorf("owner and player are required")), nil, nil
	}
	return toolJSON("replacements", func() (any, error) {
		return t.deps.Replacements(ctx, args.Owner, args.Player, args.Day)
	})
}

// Watchlist handles the watchlist tool.
func (t *Tools) Watchlist(ctx context.Context, _ *mcp.CallToolRequest, args DayArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON("watchlist", func() (any, error) { return t.deps.Watchlist(ctx, args.Day) })
}

// toolJSON runs fn and renders its value as indented JSON text content.
// Domain errors become tool errors so the model can read them.
func toolJSON(tool string, fn func() (any, error)) (*mcp.CallToolResult, any, error) {
	v, err := fn()
	if err != nil {
		return toolError(tool, err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(tool, err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(tool string, err error) *mcp.CallToolResult {
	metrics.RecordErrorByComponent("mcp", tool)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
