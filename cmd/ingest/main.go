// Command ingest is the cricket stats ingestion and query CLI.
//
// Usage:
//
//	cricket-ingest schema
//	cricket-ingest load --file cricket_data.json [--dedupe]
//	cricket-ingest stats batting "Rohit Sharma"
//	cricket-ingest stats compare Kohli Babar --metric runs
//	cricket-ingest stats top --category bowlers --limit 10
//	cricket-ingest mcp
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/cricket-stats/internal/config"
	"github.com/albapepper/cricket-stats/internal/db"
	"github.com/albapepper/cricket-stats/internal/ingest"
	"github.com/albapepper/cricket-stats/internal/report"
	"github.com/albapepper/cricket-stats/internal/stats"
	"github.com/albapepper/cricket-stats/internal/tools"
)

const version = "1.0.0"

// Logs go to stderr; stdout carries reports and the MCP stdio stream.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "cricket-ingest",
		Short:         "Cricket stats ingestion and query CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(schemaCmd())
	root.AddCommand(loadCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(mcpCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// schema command
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create tables and indexes (safe to re-run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *db.DB) error {
				logger.Info("Schema ready", "driver", store.Dialect)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// load command
// --------------------------------------------------------------------------

func loadCmd() *cobra.Command {
	var (
		files  []string
		dedupe bool
	)
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load match documents from JSON files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) == 0 {
				return fmt.Errorf("--file is required")
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *db.DB) error {
				loader := ingest.NewLoader(store, ingest.Options{
					DedupePerformances: dedupe || cfg.IngestDedupePerformances,
				}, nil, logger)

				var total ingest.Result
				start := time.Now()
				for _, path := range files {
					result, err := loader.LoadFile(ctx, path)
					if err != nil {
						return err
					}
					total.Add(result)
				}
				logger.Info("Load finished",
					"files", len(files),
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", total.Summary())
				for _, w := range total.Warnings {
					logger.Warn("ingest warning", "warning", w)
				}
				for _, e := range total.Errors {
					logger.Error("ingest error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&files, "file", nil, "JSON file holding a document or an array of documents (repeatable)")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Skip performance rows identical to one already stored")
	return cmd
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Run a statistics query and print the report",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the structured result as JSON")

	// query wires one engine call to the command's output.
	query := func(cmd *cobra.Command, fn func(ctx context.Context, e *stats.Engine) (interface{}, string, error)) error {
		return runWithStore(func(ctx context.Context, cfg *config.Config, store *db.DB) error {
			result, text, err := fn(ctx, stats.NewEngine(store, nil, logger))
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), asJSON, result, text)
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "batting <player>",
		Short: "Batting summary for a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return query(cmd, func(ctx context.Context, e *stats.Engine) (interface{}, string, error) {
				s, err := e.BattingSummary(ctx, args[0])
				return s, report.Batting(s), err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "bowling <player>",
		Short: "Bowling summary for a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return query(cmd, func(ctx context.Context, e *stats.Engine) (interface{}, string, error) {
				s, err := e.BowlingSummary(ctx, args[0])
				return s, report.Bowling(s), err
			})
		},
	})

	var metric string
	compare := &cobra.Command{
		Use:   "compare <player1> <player2>",
		Short: "Compare two players",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return query(cmd, func(ctx context.Context, e *stats.Engine) (interface{}, string, error) {
				c, err := e.ComparePlayers(ctx, args[0], args[1], metric)
				return c, report.Comparison(c), err
			})
		},
	}
	compare.Flags().StringVar(&metric, "metric", "runs", "runs, wickets, average or economy")
	cmd.AddCommand(compare)

	var (
		category string
		limit    int
	)
	top := &cobra.Command{
		Use:   "top",
		Short: "Top batsmen or bowlers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return query(cmd, func(ctx context.Context, e *stats.Engine) (interface{}, string, error) {
				l, err := e.TopPerformers(ctx, category, limit)
				return l, report.Leaderboard(l), err
			})
		},
	}
	top.Flags().StringVar(&category, "category", "batsmen", "batsmen or bowlers")
	top.Flags().IntVar(&limit, "limit", stats.DefaultLeaderLimit, "Number of players")
	cmd.AddCommand(top)

	cmd.AddCommand(&cobra.Command{
		Use:   "matches",
		Short: "Summary of all matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return query(cmd, func(ctx context.Context, e *stats.Engine) (interface{}, string, error) {
				m, err := e.MatchSummary(ctx)
				return m, report.Matches(m), err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "form <player>",
		Short: "Recent form of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return query(cmd, func(ctx context.Context, e *stats.Engine) (interface{}, string, error) {
				f, err := e.RecentForm(ctx, args[0])
				return f, report.Form(f), err
			})
		},
	})

	return cmd
}

func printResult(w io.Writer, asJSON bool, result interface{}, text string) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// --------------------------------------------------------------------------
// mcp command
// --------------------------------------------------------------------------

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the stats tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *db.DB) error {
				server := tools.NewServer(stats.NewEngine(store, nil, logger), version)
				logger.Info("MCP stdio server starting", "tools", len(server.Tools()))
				return server.RunStdio(ctx)
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithStore handles config loading, DB connection and migration, and
// context cancellation.
func runWithStore(fn func(ctx context.Context, cfg *config.Config, store *db.DB) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	store, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	return fn(ctx, cfg, store)
}
