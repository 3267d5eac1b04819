// Package parser extracts front matter, titles, and plain-text summaries
// from Markdown documents.
package parser

import (
	"path"
	"regexp"
	"strings"
)

const delim = "---"

// DefaultExcerptLength bounds excerpts when no explicit limit is configured.
const DefaultExcerptLength = 160

var (
	fencedRe = regexp.MustCompile("(?s)```.*?```")
	linkRe   = regexp.MustCompile(`\[(.*?)\]\([^)]*\)`)
	markupRe = regexp.MustCompile("[#*>`_~]")
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Metadata holds the parsed front-matter block of a document.
type Metadata struct {
	// Fields maps lower-cased keys to their trimmed values. The tags key
	// is handled separately and never appears here.
	Fields map[string]string
	// Tags as declared, in order, empties dropped, not deduplicated.
	Tags []string
}

// Get returns the value for a (lower-cased) metadata key, or "".
func (m Metadata) Get(key string) string {
	return m.Fields[key]
}

// Split separates front matter from the Markdown body.
//
// A document carries front matter only when its first line is exactly ---
// (modulo surrounding whitespace); the block runs until the next such line
// and the rest of the document is body, with leading blank lines trimmed.
// Without the opening delimiter the whole input is body.
func Split(text string) (Metadata, string) {
	lines := splitLines(text)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delim {
		return Metadata{}, text
	}

	var metaLines, bodyLines []string
	inMeta := true
	for _, line := range lines[1:] {
		if inMeta && strings.TrimSpace(line) == delim {
			inMeta = false
			continue
		}
		if inMeta {
			metaLines = append(metaLines, line)
		} else {
			bodyLines = append(bodyLines, line)
		}
	}

	body := strings.TrimLeft(strings.Join(bodyLines, "\n"), "\n")
	return parseMetadata(metaLines), body
}

// parseMetadata reads the front-matter block line by line. Malformed lines
// (blank, #-comments, no colon) are routine input and silently skipped.
func parseMetadata(lines []string) Metadata {
	meta := Metadata{Fields: map[string]string{}}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "tags" {
			for _, piece := range strings.Split(value, ",") {
				if tag := strings.TrimSpace(piece); tag != "" {
					meta.Tags = append(meta.Tags, tag)
				}
			}
			continue
		}
		meta.Fields[key] = value
	}
	return meta
}

// Title resolves a document title: explicit front-matter title, else the
// first heading line of the body, else the base filename without extension.
func Title(meta Metadata, body, relPath string) string {
	if t := meta.Get("title"); t != "" {
		return t
	}
	if h := firstHeading(body); h != "" {
		return h
	}
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// firstHeading returns the text of the first #-prefixed body line, with the
// leading marker stripped, or "".
func firstHeading(body string) string {
	for _, line := range splitLines(body) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimLeft(trimmed, "# ")
		}
	}
	return ""
}

// PlainText strips Markdown markup from body: fenced code blocks removed,
// links reduced to their label, markup characters dropped, whitespace runs
// collapsed to single spaces.
func PlainText(body string) string {
	out := fencedRe.ReplaceAllString(body, "")
	out = linkRe.ReplaceAllString(out, "$1")
	out = markupRe.ReplaceAllString(out, "")
	out = spaceRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Excerpt returns PlainText bounded to max runes. Truncated excerpts keep
// max-1 runes and end with a single ellipsis character.
func Excerpt(body string, max int) string {
	if max <= 0 {
		max = DefaultExcerptLength
	}
	text := PlainText(body)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := strings.TrimRight(string(runes[:max-1]), " ")
	return cut + "…"
}

// splitLines splits on \n, tolerating Windows line endings.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
