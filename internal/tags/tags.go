// Package tags groups notes by tag and assigns each tag a collision-free
// output path.
package tags

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/himekawa/kodama/internal/models"
)

// DefaultAllowChars is the non-ASCII script range admitted into tag
// identifiers when none is configured (Japanese kana and kanji).
const DefaultAllowChars = "ぁ-んァ-ヴー一-龯"

var spaceRe = regexp.MustCompile(`\s+`)

// Index holds the tag groups and their assigned output paths.
type Index struct {
	// Groups maps each raw tag string to its notes, sorted by
	// (lower-cased title, slug). Distinct casings are distinct tags.
	Groups map[string][]*models.Note
	// Paths maps each raw tag to its unique output path (tags/<id>.html).
	Paths map[string]string
	// Order lists tags in case-insensitive lexicographic order of the
	// raw string; path assignment processes tags in exactly this order.
	Order []string
}

// Indexer derives tag identifiers with a configurable character allow-list.
type Indexer struct {
	strip *regexp.Regexp
}

// NewIndexer compiles the allow-list. allowChars is a regexp character-class
// fragment of extra runes admitted alongside ASCII alphanumerics, hyphen,
// underscore, and period; empty means DefaultAllowChars.
func NewIndexer(allowChars string) (*Indexer, error) {
	if allowChars == "" {
		allowChars = DefaultAllowChars
	}
	strip, err := regexp.Compile(`[^0-9A-Za-z\-_.` + allowChars + `]+`)
	if err != nil {
		return nil, fmt.Errorf("tags: bad allow_chars %q: %w", allowChars, err)
	}
	return &Indexer{strip: strip}, nil
}

// Build groups notes by declared tag and assigns output paths.
//
// Paths are assigned in Order; on a collision with an already-used
// identifier the suffixes -2, -3, ... are tried until unique. The final
// name of a colliding tag therefore depends on which tags sort before it,
// so this order must not change or paths drift between rebuilds.
func (ix *Indexer) Build(notes []*models.Note) *Index {
	groups := make(map[string][]*models.Note)
	for _, note := range notes {
		for _, tag := range note.Tags {
			groups[tag] = append(groups[tag], note)
		}
	}
	for _, members := range groups {
		sort.SliceStable(members, func(i, j int) bool {
			ti, tj := strings.ToLower(members[i].Title), strings.ToLower(members[j].Title)
			if ti != tj {
				return ti < tj
			}
			return members[i].Slug < members[j].Slug
		})
	}

	order := make([]string, 0, len(groups))
	for tag := range groups {
		order = append(order, tag)
	}
	sort.Slice(order, func(i, j int) bool {
		li, lj := strings.ToLower(order[i]), strings.ToLower(order[j])
		if li != lj {
			return li < lj
		}
		return order[i] < order[j]
	})

	used := make(map[string]struct{}, len(order))
	paths := make(map[string]string, len(order))
	for _, tag := range order {
		base := ix.slugify(tag)
		candidate := base
		for counter := 1; ; counter++ {
			if counter > 1 {
				candidate = fmt.Sprintf("%s-%d", base, counter)
			}
			if _, taken := used[candidate]; !taken {
				break
			}
		}
		used[candidate] = struct{}{}
		paths[tag] = "tags/" + candidate + ".html"
	}

	return &Index{Groups: groups, Paths: paths, Order: order}
}

// slugify derives a tag's base identifier: whitespace runs become hyphens,
// characters outside the allow-list are stripped, and the result is
// lower-cased. A fully-stripped tag falls back to its percent-encoded form.
func (ix *Indexer) slugify(tag string) string {
	safe := spaceRe.ReplaceAllString(strings.TrimSpace(tag), "-")
	safe = ix.strip.ReplaceAllString(safe, "")
	if safe == "" {
		safe = percentEncode(tag)
	}
	return strings.ToLower(safe)
}

// percentEncode encodes every byte outside the URL-unreserved set.
func percentEncode(s string) string {
	const unreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_.-~"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(unreserved, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
