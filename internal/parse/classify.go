package parse

import (
	"regexp"
	"strings"

	"github.com/splitbill/receipt-extract/constants"
)

var (
	reClockTime = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?\b`)
	reDate      = regexp.MustCompile(`\b\d{1,4}[/.-]\d{1,2}[/.-]\d{1,4}\b`)
	rePhone     = regexp.MustCompile(`(?:\+?1[\s.-]?)?\(?\d{3}\)?[\s.-]\d{3}[\s.-]?\d{4}\b`)
	reAddress   = regexp.MustCompile(`(?i)^\d+\s+.*\b(?:st|street|ave|avenue|rd|road|blvd|dr|drive|ln|lane|way|hwy|suite|ste)\b`)
	reURLToken  = regexp.MustCompile(`(?i)(?:https?://|www\.|\.(?:com|net|org)\b)`)

	reBlocklist = compileKeywordPattern(constants.MetadataKeywords)
)

// compileKeywordPattern builds a single case-insensitive, word-bounded
// alternation for a keyword list. Keywords ending in a non-word character
// (e.g. "order #") get no trailing boundary, which would never match there.
func compileKeywordPattern(keywords []string) *regexp.Regexp {
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		p := `\b` + regexp.QuoteMeta(kw)
		last := kw[len(kw)-1]
		if last == '_' || last >= '0' && last <= '9' || last >= 'a' && last <= 'z' || last >= 'A' && last <= 'Z' {
			p += `\b`
		}
		parts = append(parts, p)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(parts, "|") + `)`)
}

// HasBlockedKeyword reports whether the line contains receipt boilerplate
// wording (payment, totals, contact info, loyalty) or a URL-like token.
func HasBlockedKeyword(line string) bool {
	return reBlocklist.MatchString(line) || reURLToken.MatchString(line)
}

// ClassifyLine labels a normalized line as a purchasable-item candidate or as
// non-item metadata (address, phone, date/time, payment boilerplate). Lines
// default to item candidates.
func ClassifyLine(line string) constants.LineLabel {
	switch {
	case reClockTime.MatchString(line),
		reDate.MatchString(line),
		rePhone.MatchString(line),
		reAddress.MatchString(line),
		HasBlockedKeyword(line):
		return constants.LineMetadata
	}
	return constants.LineItem
}

// ClassifyAll labels every line, index-aligned with the input.
func ClassifyAll(lines []string) []constants.LineLabel {
	labels := make([]constants.LineLabel, len(lines))
	for i, line := range lines {
		labels[i] = ClassifyLine(line)
	}
	return labels
}
