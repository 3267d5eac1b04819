package site

import (
	"path"
	"strings"
)

// relativeURL returns the URL of to as seen from the page at from. Both are
// output-root-relative slash paths.
func relativeURL(from, to string) string {
	fromDir := path.Dir(from)
	if fromDir == "." {
		return to
	}
	fromSegs := strings.Split(fromDir, "/")
	toSegs := strings.Split(to, "/")

	common := 0
	for common < len(fromSegs) && common < len(toSegs)-1 && fromSegs[common] == toSegs[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(fromSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(toSegs[common:], "/"))
	return b.String()
}
