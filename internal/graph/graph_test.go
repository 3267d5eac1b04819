package graph

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/himekawa/kodama/internal/apperr"
	"github.com/himekawa/kodama/internal/render"
	"github.com/himekawa/kodama/internal/storage"
	"github.com/himekawa/kodama/internal/testutil"
)

func buildCorpus(t *testing.T, files map[string]string) *Graph {
	t.Helper()
	dir, store := testutil.TestCorpus(t)
	for rel, content := range files {
		testutil.WriteNote(t, dir, rel, content)
	}
	b := NewBuilder(store, render.NewGoldmark(), 160, nil)
	g, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBuild_LinkAndBacklinkScenario(t *testing.T) {
	g := buildCorpus(t, map[string]string{
		"a.md": "---\ntags: x, y\n---\n[see b](b.md)\n",
		"b.md": "# B\n",
	})

	a, b := g.Notes["a"], g.Notes["b"]
	if a == nil || b == nil {
		t.Fatalf("missing notes: %v", g.Slugs)
	}
	if len(a.OutgoingSlugs) != 1 || !a.LinksTo("b") {
		t.Errorf("a.OutgoingSlugs = %v, want {b}", a.OutgoingSlugs)
	}
	if len(b.Backlinks) != 1 || b.Backlinks[0].Slug != "a" || b.Backlinks[0].Title != a.Title {
		t.Errorf("b.Backlinks = %+v", b.Backlinks)
	}
	if len(a.Backlinks) != 0 {
		t.Errorf("a.Backlinks = %+v, want none", a.Backlinks)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "x" || a.Tags[1] != "y" {
		t.Errorf("a.Tags = %v", a.Tags)
	}
}

func TestBuild_BacklinksSortedByTitleCaseInsensitive(t *testing.T) {
	g := buildCorpus(t, map[string]string{
		"target.md": "# Target\n",
		"z.md":      "---\ntitle: zeta\n---\n[t](target.md)\n",
		"a.md":      "---\ntitle: Alpha\n---\n[t](target.md)\n",
		"m.md":      "---\ntitle: alpha2\n---\n[t](target.md)\n",
	})
	refs := g.Notes["target"].Backlinks
	if len(refs) != 3 {
		t.Fatalf("backlinks = %+v", refs)
	}
	if refs[0].Title != "Alpha" || refs[1].Title != "alpha2" || refs[2].Title != "zeta" {
		t.Errorf("order = %q, %q, %q", refs[0].Title, refs[1].Title, refs[2].Title)
	}
}

func TestBuild_DanglingLinkIsSilent(t *testing.T) {
	g := buildCorpus(t, map[string]string{
		"a.md": "[gone](missing.md)\n",
	})
	if !g.Notes["a"].LinksTo("missing") {
		t.Errorf("outgoing should still record the dangling slug: %v", g.Notes["a"].OutgoingSlugs)
	}
	for _, note := range g.Notes {
		if len(note.Backlinks) != 0 {
			t.Errorf("unexpected backlinks on %s: %+v", note.Slug, note.Backlinks)
		}
	}
}

func TestBuild_SelfLink(t *testing.T) {
	g := buildCorpus(t, map[string]string{
		"loop.md": "# Loop\n[me](loop.md)\n",
	})
	refs := g.Notes["loop"].Backlinks
	if len(refs) != 1 || refs[0].Slug != "loop" {
		t.Errorf("self backlink missing: %+v", refs)
	}
}

func TestBuild_CrossDirectoryResolution(t *testing.T) {
	g := buildCorpus(t, map[string]string{
		"notes/a.md":        "[page](sub/page.md)\n",
		"notes/sub/page.md": "# Page\n",
	})
	a := g.Notes["notes/a"]
	if !a.LinksTo("notes/sub/page") {
		t.Errorf("outgoing = %v", a.OutgoingSlugs)
	}
	if refs := g.Notes["notes/sub/page"].Backlinks; len(refs) != 1 || refs[0].Slug != "notes/a" {
		t.Errorf("backlinks = %+v", refs)
	}
}

func TestBuild_RenderedHTMLRewritesLinks(t *testing.T) {
	g := buildCorpus(t, map[string]string{
		"a.md": "[see b](b.md)\n",
		"b.md": "# B\n",
	})
	html := g.Notes["a"].HTML
	if want := `href="b.html"`; !strings.Contains(html, want) {
		t.Errorf("html = %q, want substring %q", html, want)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	files := map[string]string{
		"a.md":     "[b](b.md)\n[c](sub/c.md)\n",
		"b.md":     "---\ntitle: Beta\n---\n[a](a.md)\n",
		"sub/c.md": "[a](../a.md)\n",
	}
	g1 := buildCorpus(t, files)
	g2 := buildCorpus(t, files)
	if len(g1.Slugs) != len(g2.Slugs) {
		t.Fatalf("slug counts differ: %v vs %v", g1.Slugs, g2.Slugs)
	}
	for i := range g1.Slugs {
		if g1.Slugs[i] != g2.Slugs[i] {
			t.Errorf("slug order differs at %d: %q vs %q", i, g1.Slugs[i], g2.Slugs[i])
		}
	}
	for _, slug := range g1.Slugs {
		r1, r2 := g1.Notes[slug].Backlinks, g2.Notes[slug].Backlinks
		if len(r1) != len(r2) {
			t.Fatalf("backlink counts differ for %s", slug)
		}
		for i := range r1 {
			if r1[i] != r2[i] {
				t.Errorf("backlink order differs for %s at %d", slug, i)
			}
		}
	}
}

// dupProvider simulates a listing where two files normalize to one slug.
type dupProvider struct{}

func (dupProvider) List(string) ([]storage.FileInfo, error) {
	return []storage.FileInfo{
		{Path: "a.md", ModTime: time.Now()},
		{Path: "a.md", ModTime: time.Now()},
	}, nil
}
func (dupProvider) Read(string) ([]byte, error)  { return []byte("# A\n"), nil }
func (dupProvider) Write(string, []byte) error   { return nil }
func (dupProvider) Delete(string) error          { return nil }
func (dupProvider) Abs(p string) (string, error) { return filepath.Join("/corpus", p), nil }

func TestBuild_DuplicateSlugFails(t *testing.T) {
	b := NewBuilder(dupProvider{}, render.NewGoldmark(), 160, nil)
	_, err := b.Build(context.Background())
	if err == nil {
		t.Fatal("expected duplicate slug error")
	}
	var dup *apperr.DuplicateSlugError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateSlugError", err)
	}
	if dup.Slug != "a" {
		t.Errorf("slug = %q, want %q", dup.Slug, "a")
	}
}
