// Package graph loads the note corpus and computes the backlink graph.
//
// Building runs in two strict passes: every note is loaded before any
// backlink is attached, since link targets may appear later in scan order.
// Notes are immutable once Build returns.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/himekawa/kodama/internal/apperr"
	"github.com/himekawa/kodama/internal/links"
	"github.com/himekawa/kodama/internal/models"
	"github.com/himekawa/kodama/internal/parser"
	"github.com/himekawa/kodama/internal/render"
	"github.com/himekawa/kodama/internal/storage"
)

// Graph is the finished note graph: a flat collection keyed by slug.
// Cycles (A links B links A) need no special handling in this shape.
type Graph struct {
	// Notes maps slug to note.
	Notes map[string]*models.Note
	// Slugs holds every slug in lexicographic order.
	Slugs []string
}

// Sorted returns the notes in slug order.
func (g *Graph) Sorted() []*models.Note {
	out := make([]*models.Note, 0, len(g.Slugs))
	for _, slug := range g.Slugs {
		out = append(out, g.Notes[slug])
	}
	return out
}

// ByTitle returns the notes sorted by (lower-cased title, slug).
func (g *Graph) ByTitle() []*models.Note {
	out := g.Sorted()
	sort.Slice(out, func(i, j int) bool {
		ti, tj := strings.ToLower(out[i].Title), strings.ToLower(out[j].Title)
		if ti != tj {
			return ti < tj
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// Builder loads Markdown documents into a Graph.
type Builder struct {
	store      storage.Provider
	renderer   render.Renderer
	excerptMax int
	logger     *slog.Logger
}

// NewBuilder creates a Builder over the given corpus provider.
func NewBuilder(store storage.Provider, renderer render.Renderer, excerptMax int, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{store: store, renderer: renderer, excerptMax: excerptMax, logger: logger}
}

// Build loads every .md document under the corpus root and attaches
// backlinks. Documents parse concurrently; the slug map, duplicate check,
// and backlink pass run sequentially afterward so results stay
// deterministic.
func (b *Builder) Build(ctx context.Context) (*Graph, error) {
	metas, err := b.store.List(".md")
	if err != nil {
		return nil, err
	}

	notes := make([]*models.Note, len(metas))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, meta := range metas {
		i, meta := i, meta
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			note, err := b.loadNote(meta)
			if err != nil {
				return err
			}
			notes[i] = note
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byPath := make(map[string]string, len(notes)) // slug → rel path
	graph := &Graph{Notes: make(map[string]*models.Note, len(notes))}
	for _, note := range notes {
		if first, ok := byPath[note.Slug]; ok {
			return nil, &apperr.DuplicateSlugError{Slug: note.Slug, First: first, Second: note.RelPath}
		}
		byPath[note.Slug] = note.RelPath
		graph.Notes[note.Slug] = note
		graph.Slugs = append(graph.Slugs, note.Slug)
	}
	sort.Strings(graph.Slugs)

	attachBacklinks(graph)

	b.logger.Info("corpus loaded", slog.Int("notes", len(graph.Slugs)))
	return graph, nil
}

// loadNote parses one document into a Note.
func (b *Builder) loadNote(meta storage.FileInfo) (*models.Note, error) {
	data, err := b.store.Read(meta.Path)
	if err != nil {
		return nil, err
	}

	fm, body := parser.Split(string(data))
	title := parser.Title(fm, body, meta.Path)

	html, err := b.renderer.Render(body)
	if err != nil {
		return nil, fmt.Errorf("graph: render %s: %w", meta.Path, err)
	}

	dir := path.Dir(meta.Path)
	if dir == "." {
		dir = ""
	}

	abs, err := b.store.Abs(meta.Path)
	if err != nil {
		return nil, err
	}

	return &models.Note{
		SourcePath:    abs,
		RelPath:       meta.Path,
		Slug:          strings.TrimSuffix(meta.Path, ".md"),
		Title:         title,
		Tags:          fm.Tags,
		Body:          body,
		HTML:          links.RewriteHTML(html),
		Excerpt:       parser.Excerpt(body, b.excerptMax),
		OutgoingSlugs: links.Outgoing(body, dir),
		UpdatedAt:     meta.ModTime,
	}, nil
}

// attachBacklinks runs the reverse-link pass. Sources and their outgoing
// slugs are visited in sorted order so equal-title ties keep a reproducible
// order under the stable sort below. Dangling targets are skipped; a note
// linking to itself gets a self-referential entry.
func attachBacklinks(g *Graph) {
	for _, slug := range g.Slugs {
		src := g.Notes[slug]
		targets := make([]string, 0, len(src.OutgoingSlugs))
		for t := range src.OutgoingSlugs {
			targets = append(targets, t)
		}
		sort.Strings(targets)
		for _, t := range targets {
			target, ok := g.Notes[t]
			if !ok {
				continue
			}
			target.Backlinks = append(target.Backlinks, models.NoteRef{
				Slug:       src.Slug,
				Title:      src.Title,
				OutputPath: src.OutputPath(),
			})
		}
	}
	for _, note := range g.Notes {
		refs := note.Backlinks
		sort.SliceStable(refs, func(i, j int) bool {
			return strings.ToLower(refs[i].Title) < strings.ToLower(refs[j].Title)
		})
	}
}
