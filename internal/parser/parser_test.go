package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_FrontmatterAndBody(t *testing.T) {
	input := "---\ntitle: Hello\ntags: go, notes\n---\n\n# Hello\nBody text.\n"
	meta, body := Split(input)
	if meta.Get("title") != "Hello" {
		t.Errorf("title = %q, want %q", meta.Get("title"), "Hello")
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "go" || meta.Tags[1] != "notes" {
		t.Errorf("tags = %v, want [go notes]", meta.Tags)
	}
	if body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSplit_NoFrontmatter(t *testing.T) {
	input := "# Just a heading\nSome text.\n"
	meta, body := Split(input)
	if len(meta.Fields) != 0 || meta.Tags != nil {
		t.Errorf("expected empty metadata, got %+v", meta)
	}
	if body != input {
		t.Errorf("body should be the full input unchanged, got %q", body)
	}
}

func TestSplit_UnclosedDelimiter(t *testing.T) {
	meta, body := Split("---\ntitle: Lost\nno closing delimiter\n")
	if meta.Get("title") != "Lost" {
		t.Errorf("title = %q, want %q", meta.Get("title"), "Lost")
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestSplit_MalformedLinesIgnored(t *testing.T) {
	input := "---\n# a comment\nno colon here\n\ntitle: Ok\n---\nBody\n"
	meta, body := Split(input)
	if len(meta.Fields) != 1 || meta.Get("title") != "Ok" {
		t.Errorf("fields = %v", meta.Fields)
	}
	if body != "Body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSplit_KeysLowercasedAndTrimmed(t *testing.T) {
	meta, _ := Split("---\n  Title :  Mixed Case  \n---\nx")
	if meta.Get("title") != "Mixed Case" {
		t.Errorf("title = %q, want %q", meta.Get("title"), "Mixed Case")
	}
}

func TestSplit_TagsDropEmptyPiecesKeepOrder(t *testing.T) {
	meta, _ := Split("---\ntags: b, , a, a\n---\nx")
	want := []string{"b", "a", "a"}
	if len(meta.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", meta.Tags, want)
	}
	for i := range want {
		if meta.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, meta.Tags[i], want[i])
		}
	}
}

func TestTitle_FrontmatterWins(t *testing.T) {
	meta, body := Split("---\ntitle: FM Title\n---\n# H1 Title\n")
	if got := Title(meta, body, "notes/page.md"); got != "FM Title" {
		t.Errorf("title = %q, want %q", got, "FM Title")
	}
}

func TestTitle_HeadingFallback(t *testing.T) {
	got := Title(Metadata{}, "some text\n## My Heading\nmore", "notes/page.md")
	if got != "My Heading" {
		t.Errorf("title = %q, want %q", got, "My Heading")
	}
}

func TestTitle_FilenameFallback(t *testing.T) {
	got := Title(Metadata{}, "plain text only", "notes/daily-log.md")
	if got != "daily-log" {
		t.Errorf("title = %q, want %q", got, "daily-log")
	}
}

func TestPlainText_StripsMarkup(t *testing.T) {
	body := "# Heading\n\nSee [the docs](docs.md) and `code`.\n\n```go\nfunc ignored() {}\n```\n\n> quoted *emph*\n"
	got := PlainText(body)
	want := "Heading See the docs and code. quoted emph"
	if got != want {
		t.Errorf("plain = %q, want %q", got, want)
	}
}

func TestExcerpt_UnderLimitUnchanged(t *testing.T) {
	if got := Excerpt("short body", 160); got != "short body" {
		t.Errorf("excerpt = %q", got)
	}
}

func TestExcerpt_TruncatesWithEllipsis(t *testing.T) {
	body := strings.Repeat("word ", 100)
	got := Excerpt(body, 40)
	if utf8.RuneCountInString(got) > 40 {
		t.Errorf("excerpt too long: %d runes", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("excerpt should end with ellipsis: %q", got)
	}
	if strings.HasSuffix(got, " …") {
		t.Errorf("trailing space kept before ellipsis: %q", got)
	}
}

func TestExcerpt_RuneBoundOnMultibyteText(t *testing.T) {
	body := strings.Repeat("あ", 300)
	got := Excerpt(body, 160)
	if n := utf8.RuneCountInString(got); n != 160 {
		t.Errorf("rune count = %d, want 160", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("excerpt should end with ellipsis: %q", got)
	}
}
