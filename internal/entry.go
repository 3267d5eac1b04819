// Package internal wires the one-shot site build pipeline.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/himekawa/kodama/internal/graph"
	"github.com/himekawa/kodama/internal/render"
	"github.com/himekawa/kodama/internal/search"
	"github.com/himekawa/kodama/internal/site"
	"github.com/himekawa/kodama/internal/storage"
	"github.com/himekawa/kodama/internal/tags"
)

// Run executes one build: load the corpus, attach backlinks, group tags,
// and write the site. Any fatal error aborts the whole build.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	if app.renderer == nil {
		app.renderer = render.NewGoldmark()
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("source_path", cfg.Source.Path),
		slog.String("output_path", cfg.Output.Path),
		slog.String("site_title", cfg.Site.Title),
		slog.String("log_level", cfg.App.LogLevel.String()))

	start := time.Now()

	// Corpus storage; fails fast when the root is missing or not a dir.
	store, err := storage.NewFS(cfg.Source.Path)
	if err != nil {
		return fmt.Errorf("init corpus: %w", err)
	}

	// Pass 1+2: load every note, then cross-reference backlinks.
	builder := graph.NewBuilder(store, app.renderer, cfg.Excerpt.MaxLength, logger)
	g, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	// Tag grouping and path assignment.
	indexer, err := tags.NewIndexer(cfg.Tags.AllowChars)
	if err != nil {
		return err
	}
	tagIndex := indexer.Build(g.Sorted())

	// Flat search records for the client-side index.
	records := search.Records(g.Sorted(), cfg.Site.BaseURL)

	// Emit pages, assets, and the search index.
	writer, err := site.NewWriter(cfg.Output.Path, cfg.Site.Title, cfg.Site.Lang, logger)
	if err != nil {
		return err
	}
	if err := writer.Write(ctx, g, tagIndex, records); err != nil {
		return fmt.Errorf("write site: %w", err)
	}

	logger.Info("Site generated",
		slog.Int("notes", len(g.Slugs)),
		slog.Int("tags", len(tagIndex.Order)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
