package parse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/splitbill/receipt-extract/internal/extract"
)

var reWhitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeLine collapses internal whitespace runs to single spaces and trims
// edge characters. Whitespace-only input yields "".
func NormalizeLine(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(reWhitespaceRun.ReplaceAllString(s, " "))
}

// OrderLines sorts raw lines into reading order: page, then top-to-bottom,
// then left-to-right. The input slice is not modified.
func OrderLines(lines []extract.RawTextLine) []extract.RawTextLine {
	out := make([]extract.RawTextLine, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// NormalizeAll orders raw lines, normalizes each, and drops empty results
// before they enter the pipeline.
func NormalizeAll(lines []extract.RawTextLine) []string {
	ordered := OrderLines(lines)
	out := make([]string, 0, len(ordered))
	for _, l := range ordered {
		if n := NormalizeLine(l.Text); n != "" {
			out = append(out, n)
		}
	}
	return out
}
