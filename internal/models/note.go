// Package models defines the domain types for kodama.
package models

import (
	"strings"
	"time"
)

// Note represents one parsed Markdown document in the corpus.
type Note struct {
	// SourcePath is the absolute location of the source file.
	SourcePath string
	// RelPath is the path relative to the corpus root, slash-separated.
	RelPath string
	// Slug is RelPath with the .md extension stripped; unique per corpus.
	Slug string
	// Title resolution order: frontmatter title, first heading, base name.
	Title string
	// Tags as declared in front matter, in order, not deduplicated.
	Tags []string
	// Body is the raw text after front-matter removal.
	Body string
	// HTML is the rendered body with internal .md links rewritten to .html.
	HTML string
	// Excerpt is a bounded plain-text summary of Body.
	Excerpt string
	// OutgoingSlugs holds the slugs this note links to.
	OutgoingSlugs map[string]struct{}
	// Backlinks lists notes linking here, sorted case-insensitively by title.
	Backlinks []NoteRef
	// UpdatedAt is the source file's modification time; zero when unknown.
	UpdatedAt time.Time
}

// OutputPath returns the corpus-relative path of the rendered page.
func (n *Note) OutputPath() string {
	return strings.TrimSuffix(n.RelPath, ".md") + ".html"
}

// LinksTo reports whether the note's outgoing set contains slug.
func (n *Note) LinksTo(slug string) bool {
	_, ok := n.OutgoingSlugs[slug]
	return ok
}

// NoteRef is a lightweight reference to a note, used for backlinks.
type NoteRef struct {
	Slug       string
	Title      string
	OutputPath string
}

// SearchRecord is the flat projection of a note consumed by the
// client-side search index.
type SearchRecord struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Tags    []string `json:"tags"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
}
