package mcptools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/okian/dreamxi/internal/adapters/mcptools"
	"github.com/okian/dreamxi/internal/domain/ranking"
	"github.com/okian/dreamxi/internal/domain/replacement"
	"github.com/okian/dreamxi/internal/domain/scoring"
	"github.com/okian/dreamxi/internal/domain/trend"
	"github.com/okian/dreamxi/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeLeague struct {
	day    int
	owner  string
	player string
}

func (f *fakeLeague) Leaderboard(_ context.Context, day int) (types.Leaderboard, error) {
	f.day = day
	return types.Leaderboard{Day: 3, Phase: "group", Standings: []ranking.Standing{{Rank: 1, Owner: "Asif", TotalPoints: 120}}}, nil
}

func (f *fakeLeague) Summary(_ context.Context, _ int) (ranking.Summary, error) {
	return ranking.Summary{}, ranking.ErrEmptyRoster
}

func (f *fakeLeague) Players(_ context.Context, day int, owner string) ([]scoring.PlayerPoints, error) {
	f.day, f.owner = day, owner
	return []scoring.PlayerPoints{{Player: "Jos Buttler", Owner: owner, Points: 88}}, nil
}

func (f *fakeLeague) Trend(_ context.Context) (map[string][]trend.Point, error) {
	return map[string][]trend.Point{"Asif": {{Owner: "Asif", Day: 1, Points: 10}}}, nil
}

func (f *fakeLeague) Replacements(_ context.Context, owner, player string, _ int) (replacement.Result, error) {
	f.owner, f.player = owner, player
	if player == "Nobody" {
		return replacement.Result{}, fmt.Errorf("%w: %q", replacement.ErrUnknownPlayer, player)
	}
	return replacement.Result{Branch: replacement.BranchNormal, Candidates: []replacement.Candidate{}}, nil
}

func (f *fakeLeague) Watchlist(_ context.Context, day int) (types.Watchlist, error) {
	return types.Watchlist{Day: day, Countries: []string{"India"}}, nil
}

func text(res *mcp.CallToolResult) string {
	So(len(res.Content), ShouldEqual, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	So(ok, ShouldBeTrue)
	return tc.Text
}

func TestTools(t *testing.T) {
	Convey("Given the league tools", t, func() {
		ctx := context.Background()
		league := &fakeLeague{}
		tools := mcptools.New(league)

		Convey("leaderboard renders the standings as JSON", func() {
			res, _, err := tools.Leaderboard(ctx, nil, mcptools.DayArgs{Day: 2})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeFalse)
			So(league.day, ShouldEqual, 2)

			var lb types.Leaderboard
			So(json.Unmarshal([]byte(text(res)), &lb), ShouldBeNil)
			So(lb.Standings[0].Owner, ShouldEqual, "Asif")
		})

		Convey("player_points passes the owner filter", func() {
			res, _, err := tools.Players(ctx, nil, mcptools.PlayersArgs{Owner: "Willy & Umesh"})
			So(err, ShouldBeNil)
			So(league.owner, ShouldEqual, "Willy & Umesh")
			So(text(res), ShouldContainSubstring, "Jos Buttler")
		})

		Convey("domain errors become tool errors", func() {
			res, _, err := tools.Summary(ctx, nil, mcptools.DayArgs{})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeTrue)
			So(text(res), ShouldContainSubstring, "no owners to rank")

			res, _, err = tools.Replacements(ctx, nil, mcptools.ReplacementArgs{Owner: "Asif", Player: "Nobody"})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeTrue)
		})

		Convey("replacements requires owner and player", func() {
			res, _, err := tools.Replacements(ctx, nil, mcptools.ReplacementArgs{Owner: "Asif"})
			So(err, ShouldBeNil)
			So(res.IsError, ShouldBeTrue)
			So(league.player, ShouldBeEmpty)
		})

		Convey("owner_trend and watchlist succeed", func() {
			res, _, err := tools.Trend(ctx, nil, mcptools.NoArgs{})
			So(err, ShouldBeNil)
			So(text(res), ShouldContainSubstring, `"Asif"`)

			res, _, err = tools.Watchlist(ctx, nil, mcptools.DayArgs{Day: 7})
			So(err, ShouldBeNil)
			So(text(res), ShouldContainSubstring, `"day": 7`)
		})
	})
}

func TestServer(t *testing.T) {
	Convey("Given an MCP server connected in memory", t, func() {
		ctx := context.Background()
		server := mcptools.NewServer(&fakeLeague{}, "test")

		clientTransport, serverTransport := mcp.NewInMemoryTransports()
		ss, err := server.Connect(ctx, serverTransport, nil)
		So(err, ShouldBeNil)
		defer func() { _ = ss.Close() }()

		client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
		cs, err := client.Connect(ctx, clientTransport, nil)
		So(err, ShouldBeNil)
		defer func() { _ = cs.Close() }()

		Convey("When calling the leaderboard tool", func() {
			res, err := cs.CallTool(ctx, &mcp.CallToolParams{
				Name:      "leaderboard",
				Arguments: map[string]any{"day": 1},
			})

			Convey("Then the standings come back as text", func() {
				So(err, ShouldBeNil)
				So(res.IsError, ShouldBeFalse)
				So(text(res), ShouldContainSubstring, "Asif")
			})
		})
	})
}
