package parse

import (
	"strconv"
	"strings"

	"github.com/splitbill/receipt-extract/internal/extract"
)

// sentinel for items without a price in the dedup key
const noPriceSentinel = "-"

func dedupeKey(it extract.ExtractedItem) string {
	price := noPriceSentinel
	if it.Price != nil {
		price = strconv.FormatFloat(*it.Price, 'f', 2, 64)
	}
	return strings.ToLower(it.Name) + "|" + strconv.Itoa(it.Quantity) + "|" + price
}

// Dedupe collapses repeated extracted items. The first occurrence of each
// key wins; relative order of first occurrences is preserved.
func Dedupe(items []extract.ExtractedItem) []extract.ExtractedItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]extract.ExtractedItem, 0, len(items))
	for _, it := range items {
		key := dedupeKey(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
