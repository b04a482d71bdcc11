// Command dreamxi-report prints league tables for a roster file.
//
// Settings are read like the server's (DREAMXI_CONFIG, then DREAMXI_ env
// vars), and command-line flags override them.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	app "github.com/okian/dreamxi/internal/app"
	"github.com/okian/dreamxi/internal/config"
	"github.com/okian/dreamxi/internal/report"
	"github.com/okian/dreamxi/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	dayFlag := func() cli.Flag {
		return &cli.IntFlag{Name: "day", Usage: "match day (0 = latest)"}
	}

	return &cli.App{
		Name:   "dreamxi-report",
		Usage:  "print fantasy league tables from a roster file",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "roster",
				Aliases:  []string{"r"},
				Usage:    "roster table (.csv or .xlsx)",
				EnvVars:  []string{"DREAMXI_ROSTER_PATH"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "schedule",
				Usage:   "match schedule CSV (day,countries)",
				EnvVars: []string{"DREAMXI_SCHEDULE_PATH"},
			},
			&cli.IntFlag{
				Name:  "group-stage-last-day",
				Usage: "last day scored with group stage captain flags (overrides config)",
			},
			&cli.StringFlag{
				Name:  "flag-mode",
				Usage: "captain flag source: phase or daily (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print JSON instead of tables",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "leaderboard",
				Usage: "league standings",
				Flags: []cli.Flag{dayFlag()},
				Action: func(c *cli.Context) error {
					svc, err := open(c)
					if err != nil {
						return err
					}
					lb, err := svc.Leaderboard(c.Context, c.Int("day"))
					if err != nil {
						return err
					}
					return emit(c, lb, func(w io.Writer) error { return report.Leaderboard(w, lb) })
				},
			},
			{
				Name:  "summary",
				Usage: "league headline numbers",
				Flags: []cli.Flag{dayFlag()},
				Action: func(c *cli.Context) error {
					svc, err := open(c)
					if err != nil {
						return err
					}
					s, err := svc.Summary(c.Context, c.Int("day"))
					if err != nil {
						return err
					}
					return emit(c, s, func(w io.Writer) error { return report.Summary(w, s) })
				},
			},
			{
				Name:  "trend",
				Usage: "cumulative owner totals per day",
				Action: func(c *cli.Context) error {
					svc, err := open(c)
					if err != nil {
						return err
					}
					series, err := svc.Trend(c.Context)
					if err != nil {
						return err
					}
					return emit(c, series, func(w io.Writer) error { return report.Trend(w, series) })
				},
			},
			{
				Name:      "replacements",
				Usage:     "eligible replacements for a ruled-out player",
				ArgsUsage: "OWNER PLAYER",
				Flags:     []cli.Flag{dayFlag()},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("replacements needs OWNER and PLAYER, got %d args", c.NArg())
					}
					svc, err := open(c)
					if err != nil {
						return err
					}
					res, err := svc.Replacements(c.Context, c.Args().Get(0), c.Args().Get(1), c.Int("day"))
					if err != nil {
						return err
					}
					return emit(c, res, func(w io.Writer) error { return report.Replacements(w, res) })
				},
			},
			{
				Name:  "watchlist",
				Usage: "players in action on a day",
				Flags: []cli.Flag{dayFlag()},
				Action: func(c *cli.Context) error {
					svc, err := open(c)
					if err != nil {
						return err
					}
					wl, err := svc.Watchlist(c.Context, c.Int("day"))
					if err != nil {
						return err
					}
					return emit(c, wl, func(w io.Writer) error { return report.Watchlist(w, wl) })
				},
			},
		},
	}
}

// open layers the global flags over the loaded configuration and starts a
// service built the same way as the HTTP server's.
func open(c *cli.Context) (*app.Service, error) {
	if err := logger.Init(logger.WithWriter(c.App.ErrWriter)); err != nil {
		return nil, err
	}
	_ = logger.SetLevelString("warn")

	cfg, err := config.Load(c.Context)
	if err != nil {
		return nil, err
	}
	cfg.RosterPath = c.String("roster")
	cfg.ReloadIntervalSec = 0
	if c.IsSet("schedule") {
		cfg.SchedulePath = c.String("schedule")
	}
	if c.IsSet("group-stage-last-day") {
		cfg.GroupStageLastDay = c.Int("group-stage-last-day")
	}
	if c.IsSet("flag-mode") {
		cfg.FlagMode = c.String("flag-mode")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	svc, err := app.FromConfig(cfg, logger.Get())
	if err != nil {
		return nil, err
	}
	if err := svc.Start(c.Context); err != nil {
		return nil, err
	}
	return svc, nil
}

// emit prints v as JSON when --json is set, otherwise through table.
func emit(c *cli.Context, v any, table func(io.Writer) error) error {
	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return table(c.App.Writer)
}
