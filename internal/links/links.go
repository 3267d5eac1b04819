// Package links resolves internal Markdown references to corpus slugs and
// rewrites rendered anchors from .md to .html.
package links

import (
	"path"
	"regexp"
	"strings"
)

var (
	linkRe   = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\)`)
	anchorRe = regexp.MustCompile(`href="([^"]+)"`)
)

// Outgoing scans body for Markdown links and returns the set of corpus
// slugs it references. noteDir is the note's corpus-relative directory in
// slash form ("" for the root).
//
// Skipped, silently: empty targets, same-document anchors, external and
// mailto URLs, non-Markdown assets, and targets resolving outside the
// corpus root. Duplicate links collapse (set semantics).
func Outgoing(body, noteDir string) map[string]struct{} {
	slugs := make(map[string]struct{})
	for _, m := range linkRe.FindAllStringSubmatch(body, -1) {
		target := m[1]
		if target == "" || strings.HasPrefix(target, "#") ||
			strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") {
			continue
		}
		// Drop any #fragment before resolving.
		target, _, _ = strings.Cut(target, "#")
		if target == "" || path.IsAbs(target) {
			continue
		}
		switch path.Ext(target) {
		case "":
			target += ".md"
		case ".md":
		default:
			continue // non-document asset
		}
		rel := path.Join(noteDir, target)
		if rel == ".." || strings.HasPrefix(rel, "../") {
			continue // escapes the corpus root
		}
		slugs[strings.TrimSuffix(rel, ".md")] = struct{}{}
	}
	return slugs
}

// RewriteHTML rewrites internal anchors in rendered HTML, replacing a
// trailing .md in each href with .html. External and mailto URLs pass
// through untouched. This is pure string rewriting over whatever the
// Markdown renderer emitted; it does not check that a target note exists.
func RewriteHTML(html string) string {
	return anchorRe.ReplaceAllStringFunc(html, func(attr string) string {
		href := anchorRe.FindStringSubmatch(attr)[1]
		if strings.Contains(href, "://") || strings.HasPrefix(href, "mailto:") {
			return attr
		}
		if strings.HasSuffix(href, ".md") {
			return `href="` + strings.TrimSuffix(href, ".md") + `.html"`
		}
		return attr
	})
}
