package site

import "testing"

func TestRelativeURL(t *testing.T) {
	cases := []struct {
		from, to, want string
	}{
		{"index.html", "a.html", "a.html"},
		{"index.html", "tags/index.html", "tags/index.html"},
		{"tags/go.html", "index.html", "../index.html"},
		{"tags/go.html", "tags/index.html", "index.html"},
		{"notes/sub/a.html", "notes/b.html", "../b.html"},
		{"notes/sub/a.html", "assets/style.css", "../../assets/style.css"},
		{"notes/a.html", "notes/sub/b.html", "sub/b.html"},
		{"search.html", "search-index.json", "search-index.json"},
	}
	for _, c := range cases {
		if got := relativeURL(c.from, c.to); got != c.want {
			t.Errorf("relativeURL(%q, %q) = %q, want %q", c.from, c.to, got, c.want)
		}
	}
}
