package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/himekawa/kodama/internal"
	pkgconfig "github.com/himekawa/kodama/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		// The config file is optional; flags and defaults cover a bare run.
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Flags override file values.
	if v := cmd.String("source"); v != "" {
		cfg.Source.Path = v
	}
	if v := cmd.String("output"); v != "" {
		cfg.Output.Path = v
	}
	if v := cmd.String("site-title"); v != "" {
		cfg.Site.Title = v
	}
	if cmd.IsSet("base-url") {
		cfg.Site.BaseURL = cmd.String("base-url")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("build error: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "kodama",
		Usage:  "Generate a static site with tags, search, and backlinks from a directory of Markdown notes",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("KODAMA_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Directory containing Markdown notes",
				Sources: cli.EnvVars("KODAMA_SOURCE"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the generated site is written to",
				Sources: cli.EnvVars("KODAMA_OUTPUT"),
			},
			&cli.StringFlag{
				Name:  "site-title",
				Usage: "Title shown across the generated site",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "URL prefix for search-index links when serving from a subpath (e.g. /notes)",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
