package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/splitbill/receipt-extract/constants"
	"github.com/splitbill/receipt-extract/internal/extract"
)

// Leading quantity token: 1-3 digit integer, optional x/X, then whitespace.
var reQuantityPrefix = regexp.MustCompile(`^(\d{1,3})\s*[xX]?\s+`)

var reLeadingNonWord = regexp.MustCompile(`^[^\p{L}\p{N}]+`)

// CleanName strips stray separator characters and leading non-word runes
// from an extracted item name.
func CleanName(s string) string {
	s = strings.Trim(s, " -:|_")
	s = reLeadingNonWord.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// PlausibleName filters out names too short, letterless, over-long, or
// carrying receipt boilerplate wording.
func PlausibleName(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	if strings.IndexFunc(name, unicode.IsLetter) < 0 {
		return false
	}
	if len(strings.Fields(name)) > constants.MaxNameTokens {
		return false
	}
	return !HasBlockedKeyword(name)
}

// parseItemLine is the primary pass over one item-candidate line: the
// rightmost money amount is the line total, a leading quantity token is
// consumed, and the remainder becomes the cleaned name.
func parseItemLine(line string) (extract.ExtractedItem, bool) {
	amounts := FindMoney(line)
	if len(amounts) == 0 {
		// no amount: defer the line to the fallback pass
		return extract.ExtractedItem{}, false
	}
	last := amounts[len(amounts)-1]
	price := last.Value

	prefix := line[:last.Start]
	quantity := 1
	if m := reQuantityPrefix.FindStringSubmatch(prefix); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			quantity = n
			prefix = prefix[len(m[0]):]
		}
	}

	name := CleanName(prefix)
	if !PlausibleName(name) {
		return extract.ExtractedItem{}, false
	}
	return extract.ExtractedItem{Name: name, Quantity: quantity, Price: &price}, true
}

// ParseItems extracts purchasable items from classified lines. The primary
// pass covers item-candidate lines carrying a money amount; the permissive
// fallback pass runs only when the primary pass yields nothing, treating
// every non-metadata line as a quantity-1 item and capping accepted lines.
func ParseItems(lines []string, labels []constants.LineLabel) []extract.ExtractedItem {
	items := make([]extract.ExtractedItem, 0, len(lines))
	for i, line := range lines {
		if labels[i] != constants.LineItem {
			continue
		}
		if it, ok := parseItemLine(line); ok {
			items = append(items, it)
		}
	}
	if len(items) > 0 {
		return items
	}

	for i, line := range lines {
		if labels[i] == constants.LineMetadata {
			continue
		}
		var price *float64
		if amounts := FindMoney(line); len(amounts) > 0 {
			p := amounts[len(amounts)-1].Value
			price = &p
		}
		name := CleanName(line)
		if !PlausibleName(name) {
			continue
		}
		items = append(items, extract.ExtractedItem{Name: name, Quantity: 1, Price: price})
		if len(items) >= constants.MaxFallbackItems {
			break
		}
	}
	return items
}
