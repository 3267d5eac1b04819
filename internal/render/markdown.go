// Package render converts Markdown bodies to HTML.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer turns Markdown text into an HTML fragment.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Goldmark is a stateless goldmark-backed Renderer. A single instance is
// safe to share across goroutines.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark builds the default renderer: fenced code and tables, plus
// auto-generated heading IDs for in-page anchors.
func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Render implements Renderer.
func (g *Goldmark) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
