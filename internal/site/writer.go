// Package site assembles the static site: note pages, tag indexes, the
// search page, assets, and the search index JSON.
package site

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/himekawa/kodama/internal/checksum"
	"github.com/himekawa/kodama/internal/graph"
	"github.com/himekawa/kodama/internal/models"
	"github.com/himekawa/kodama/internal/storage"
	"github.com/himekawa/kodama/internal/tags"
)

//go:embed templates/*.html
var tplFS embed.FS

//go:embed assets/style.css assets/search.js
var assetFS embed.FS

// pageData is the payload handed to the layout template.
type pageData struct {
	Lang      string
	SiteTitle string
	PageTitle string
	StyleHref string
	Scripts   []string
	Nav       []navLink
	Content   any
}

type navLink struct {
	Label string
	Href  string
}

type tagChip struct {
	Name string
	Href string
}

type noteItem struct {
	Href       string
	Title      string
	Updated    string
	UpdatedISO string
	Tags       []tagChip
	Excerpt    string
}

type indexData struct{ Items []noteItem }

type noteData struct {
	Title      string
	Updated    string
	UpdatedISO string
	Tags       []tagChip
	Body       template.HTML
	Backlinks  []noteItem
}

type tagItem struct {
	Name  string
	Href  string
	Count int
}

type tagsIndexData struct{ Items []tagItem }

type tagData struct {
	Tag   string
	Items []noteItem
}

type searchData struct{ IndexURL string }

// Writer emits the finished site into an output directory. Writes are
// atomic; files whose content is unchanged since the last build are left
// untouched, and files no longer produced are pruned.
type Writer struct {
	out       storage.Provider
	logger    *slog.Logger
	siteTitle string
	lang      string
	tpl       map[string]*template.Template

	mu      sync.Mutex
	emitted map[string]struct{}
}

// NewWriter creates the output directory if needed and prepares templates.
func NewWriter(outDir, siteTitle, lang string, logger *slog.Logger) (*Writer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("site: create output dir: %w", err)
	}
	out, err := storage.NewFS(outDir)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if lang == "" {
		lang = "ja"
	}

	tpl := make(map[string]*template.Template)
	for _, name := range []string{"index", "note", "tag", "tags_index", "search"} {
		t, err := template.ParseFS(tplFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("site: parse template %s: %w", name, err)
		}
		tpl[name] = t
	}

	return &Writer{
		out:       out,
		logger:    logger,
		siteTitle: siteTitle,
		lang:      lang,
		tpl:       tpl,
		emitted:   map[string]struct{}{},
	}, nil
}

// Write emits the whole site for the given graph and tag index, then prunes
// files left over from earlier builds.
func (w *Writer) Write(ctx context.Context, g *graph.Graph, ti *tags.Index, records []models.SearchRecord) error {
	if err := w.writeAssets(); err != nil {
		return err
	}
	if err := w.writeSearchIndex(records); err != nil {
		return err
	}
	if err := w.writeIndexPage(g, ti); err != nil {
		return err
	}
	if err := w.writeSearchPage(); err != nil {
		return err
	}
	if err := w.writeTagPages(ti); err != nil {
		return err
	}
	if err := w.writeNotePages(ctx, g, ti); err != nil {
		return err
	}
	return w.prune()
}

func (w *Writer) writeAssets() error {
	for _, name := range []string{"assets/style.css", "assets/search.js"} {
		data, err := assetFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("site: read embedded asset %s: %w", name, err)
		}
		if err := w.emit(name, data); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeSearchIndex(records []models.SearchRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("site: encode search index: %w", err)
	}
	return w.emit("search-index.json", buf.Bytes())
}

func (w *Writer) writeIndexPage(g *graph.Graph, ti *tags.Index) error {
	const current = "index.html"
	var items []noteItem
	for _, note := range g.ByTitle() {
		items = append(items, w.noteItem(note, ti, current))
	}
	return w.renderPage("index", current, w.siteTitle, nil, indexData{Items: items})
}

func (w *Writer) writeSearchPage() error {
	const current = "search.html"
	data := searchData{IndexURL: relativeURL(current, "search-index.json")}
	scripts := []string{relativeURL(current, "assets/search.js")}
	return w.renderPage("search", current, "検索", scripts, data)
}

func (w *Writer) writeTagPages(ti *tags.Index) error {
	const current = "tags/index.html"
	var items []tagItem
	for _, tag := range ti.Order {
		tagPath := ti.Paths[tag]
		items = append(items, tagItem{
			Name:  tag,
			Href:  relativeURL(current, tagPath),
			Count: len(ti.Groups[tag]),
		})

		var notes []noteItem
		for _, note := range ti.Groups[tag] {
			notes = append(notes, noteItem{
				Href:  relativeURL(tagPath, note.OutputPath()),
				Title: note.Title,
			})
		}
		if err := w.renderPage("tag", tagPath, "タグ: "+tag, nil, tagData{Tag: tag, Items: notes}); err != nil {
			return err
		}
	}
	return w.renderPage("tags_index", current, "タグ", nil, tagsIndexData{Items: items})
}

func (w *Writer) writeNotePages(ctx context.Context, g *graph.Graph, ti *tags.Index) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, note := range g.Sorted() {
		note := note
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return w.writeNotePage(note, ti)
		})
	}
	return eg.Wait()
}

func (w *Writer) writeNotePage(note *models.Note, ti *tags.Index) error {
	current := note.OutputPath()
	data := noteData{
		Title: note.Title,
		Tags:  w.tagChips(note.Tags, ti, current),
		Body:  template.HTML(note.HTML),
	}
	data.Updated, data.UpdatedISO = updatedStrings(note.UpdatedAt)
	for _, ref := range note.Backlinks {
		data.Backlinks = append(data.Backlinks, noteItem{
			Href:  relativeURL(current, ref.OutputPath),
			Title: ref.Title,
		})
	}
	return w.renderPage("note", current, note.Title, nil, data)
}

func (w *Writer) noteItem(note *models.Note, ti *tags.Index, current string) noteItem {
	item := noteItem{
		Href:    relativeURL(current, note.OutputPath()),
		Title:   note.Title,
		Tags:    w.tagChips(note.Tags, ti, current),
		Excerpt: note.Excerpt,
	}
	item.Updated, item.UpdatedISO = updatedStrings(note.UpdatedAt)
	return item
}

func (w *Writer) tagChips(declared []string, ti *tags.Index, current string) []tagChip {
	var chips []tagChip
	for _, tag := range declared {
		tagPath, ok := ti.Paths[tag]
		if !ok {
			continue
		}
		chips = append(chips, tagChip{Name: tag, Href: relativeURL(current, tagPath)})
	}
	return chips
}

func updatedStrings(t time.Time) (display, iso string) {
	if t.IsZero() {
		return "", ""
	}
	return t.Format("2006-01-02"), t.Format(time.RFC3339)
}

// renderPage executes the named template set into the page at path.
func (w *Writer) renderPage(name, path, pageTitle string, scripts []string, content any) error {
	data := pageData{
		Lang:      w.lang,
		SiteTitle: w.siteTitle,
		PageTitle: pageTitle,
		StyleHref: relativeURL(path, "assets/style.css"),
		Scripts:   scripts,
		Nav: []navLink{
			{Label: "ホーム", Href: relativeURL(path, "index.html")},
			{Label: "タグ", Href: relativeURL(path, "tags/index.html")},
			{Label: "検索", Href: relativeURL(path, "search.html")},
		},
		Content: content,
	}
	var buf bytes.Buffer
	if err := w.tpl[name].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("site: render %s: %w", path, err)
	}
	return w.emit(path, buf.Bytes())
}

// emit writes content to path unless the existing file already matches,
// and records the path so prune leaves it alone.
func (w *Writer) emit(path string, content []byte) error {
	w.mu.Lock()
	w.emitted[path] = struct{}{}
	w.mu.Unlock()

	if existing, err := w.out.Read(path); err == nil && checksum.Equal(existing, content) {
		w.logger.Debug("site: unchanged", slog.String("path", path))
		return nil
	}
	if err := w.out.Write(path, content); err != nil {
		return err
	}
	w.logger.Debug("site: wrote", slog.String("path", path))
	return nil
}

// prune removes output files not produced by this build.
func (w *Writer) prune() error {
	files, err := w.out.List("")
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, ok := w.emitted[f.Path]; ok {
			continue
		}
		if err := w.out.Delete(f.Path); err != nil {
			return err
		}
		w.logger.Debug("site: pruned", slog.String("path", f.Path))
	}
	return nil
}
