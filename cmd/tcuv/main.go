// Command tcuv extracts the Total Catch Use Value for each country from the
// Lynch et al. (2024) fisheries workbook and saves it as a GEP csv file.
//
// Run with no arguments in the directory holding
// "Rec fish food_20230509_for USGS data release.xlsx" to write
// "gep-subsistence-fisheries.csv" next to it.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/JonMunkholm/gep-fisheries/internal/config"
	"github.com/JonMunkholm/gep-fisheries/internal/core"
	"github.com/JonMunkholm/gep-fisheries/internal/logging"
	"github.com/JonMunkholm/gep-fisheries/internal/store"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if envErr == nil {
		slog.Debug("loaded .env file (overwriting existing env vars)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg).RunContext(ctx, os.Args); err != nil {
		// Pipeline stages log their own failure
		if !errors.Is(err, errExtraction) {
			slog.Error("run failed", "error", err, "hint", core.FormatUserError(err))
		}
		stop()
		os.Exit(1)
	}
}

var errExtraction = errors.New("extraction failed")

func newApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:      "tcuv",
		Usage:     "extract the Total Catch Use Value per country into a GEP csv file",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "spreadsheet to read (.xlsx or .csv)",
				Value:   cfg.Source.Path,
			},
			&cli.StringFlag{
				Name:  "sheet",
				Usage: "worksheet name (default: first sheet)",
				Value: cfg.Source.Sheet,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "csv file to write",
				Value:   cfg.Output.Path,
			},
			&cli.BoolFlag{
				Name:  "publish",
				Usage: "also copy the rows into PostgreSQL (requires DATABASE_URL)",
				Value: cfg.Database.Enabled(),
			},
		},
		Action: func(c *cli.Context) error {
			cfg.Source.Path = c.String("input")
			cfg.Source.Sheet = c.String("sheet")
			cfg.Output.Path = c.String("output")
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(c.Context, cfg, c.Bool("publish"))
		},
	}
}

// run wires the pipeline from configuration and reports the outcome.
func run(ctx context.Context, cfg *config.Config, publish bool) error {
	slog.Debug("configuration loaded", "config", cfg.String())

	p := &core.Pipeline{
		Source:    cfg.Source.Path,
		Sheet:     cfg.Source.Sheet,
		Output:    cfg.Output.Path,
		Columns:   core.ColumnSpec{Key: cfg.Columns.Key, Value: cfg.Columns.Value},
		Delimiter: cfg.Output.Delimiter,
	}

	if publish {
		if !cfg.Database.Enabled() {
			return errors.New("--publish requires DATABASE_URL")
		}
		pub, err := store.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pub.Close()
		p.Publisher = pub
	}

	res, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", errExtraction, err)
	}

	slog.Info("extraction complete",
		"run_id", res.RunID,
		"output", res.Output,
		"countries", res.RowsKept,
		"duplicates_dropped", res.Duplicates,
		"published", res.Published,
		"duration", res.Duration,
	)
	return nil
}
