// Package search projects notes into flat records for the client-side
// search index. Serialization belongs to the site writer.
package search

import (
	"sort"
	"strings"

	"github.com/himekawa/kodama/internal/models"
	"github.com/himekawa/kodama/internal/parser"
)

// Records builds one SearchRecord per note, ordered by (lower-cased title,
// slug). Content carries the full markup-stripped body, unbounded; baseURL,
// when set, prefixes every URL.
func Records(notes []*models.Note, baseURL string) []models.SearchRecord {
	sorted := make([]*models.Note, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		ti, tj := strings.ToLower(sorted[i].Title), strings.ToLower(sorted[j].Title)
		if ti != tj {
			return ti < tj
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	out := make([]models.SearchRecord, 0, len(sorted))
	for _, note := range sorted {
		tags := note.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, models.SearchRecord{
			Title:   note.Title,
			URL:     JoinBaseURL(baseURL, note.OutputPath()),
			Tags:    tags,
			Excerpt: note.Excerpt,
			Content: parser.PlainText(note.Body),
		})
	}
	return out
}

// JoinBaseURL prefixes path with baseURL, normalizing the joining slash.
func JoinBaseURL(baseURL, path string) string {
	if baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
