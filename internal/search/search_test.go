package search

import (
	"testing"

	"github.com/himekawa/kodama/internal/models"
)

func note(slug, title, body string, tags ...string) *models.Note {
	return &models.Note{
		Slug:    slug,
		RelPath: slug + ".md",
		Title:   title,
		Body:    body,
		Excerpt: body,
		Tags:    tags,
	}
}

func TestRecords_SortedByTitleThenSlug(t *testing.T) {
	records := Records([]*models.Note{
		note("z", "zeta", ""),
		note("b", "Alpha", ""),
		note("a", "alpha", ""),
	}, "")
	if len(records) != 3 {
		t.Fatalf("len = %d", len(records))
	}
	// "Alpha" and "alpha" tie case-insensitively; slug breaks the tie.
	if records[0].URL != "a.html" || records[1].URL != "b.html" || records[2].URL != "z.html" {
		t.Errorf("order = %q, %q, %q", records[0].URL, records[1].URL, records[2].URL)
	}
}

func TestRecords_BaseURLPrefix(t *testing.T) {
	records := Records([]*models.Note{note("sub/page", "P", "")}, "/notes/")
	if records[0].URL != "/notes/sub/page.html" {
		t.Errorf("url = %q", records[0].URL)
	}
}

func TestRecords_ContentIsUnboundedPlainText(t *testing.T) {
	body := "# Heading\n[link](x.md) and *emphasis*\n"
	records := Records([]*models.Note{note("a", "A", body)}, "")
	if records[0].Content != "Heading link and emphasis" {
		t.Errorf("content = %q", records[0].Content)
	}
}

func TestRecords_NilTagsMarshalAsEmptyList(t *testing.T) {
	records := Records([]*models.Note{note("a", "A", "")}, "")
	if records[0].Tags == nil {
		t.Error("tags should be an empty slice, not nil")
	}
}

func TestJoinBaseURL(t *testing.T) {
	if got := JoinBaseURL("", "a.html"); got != "a.html" {
		t.Errorf("got %q", got)
	}
	if got := JoinBaseURL("/kb", "a.html"); got != "/kb/a.html" {
		t.Errorf("got %q", got)
	}
	if got := JoinBaseURL("/kb/", "/a.html"); got != "/kb/a.html" {
		t.Errorf("got %q", got)
	}
}
