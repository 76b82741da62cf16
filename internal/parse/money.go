package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// MoneyAmount is a currency-like substring parsed to a numeric value, with
// the exact range it came from within its source line. Never negative.
type MoneyAmount struct {
	Value float64
	Start int
	End   int
}

// Optional currency symbol, 1-6 integer digits optionally grouped by
// separators, optional two-digit (or grouped) fractional part.
var reMoney = regexp.MustCompile(`[$€£¥]?\d{1,6}(?:[.,]\d{3})*(?:[.,]\d{2})?`)

// FindMoney locates every currency-like substring in a line, left to right.
// Substrings that fail to parse after separator cleaning are dropped silently.
func FindMoney(line string) []MoneyAmount {
	idx := reMoney.FindAllStringIndex(line, -1)
	if idx == nil {
		return nil
	}
	out := make([]MoneyAmount, 0, len(idx))
	for _, loc := range idx {
		v, ok := parseAmount(line[loc[0]:loc[1]])
		if !ok {
			continue
		}
		out = append(out, MoneyAmount{Value: v, Start: loc[0], End: loc[1]})
	}
	return out
}

// parseAmount resolves thousands/decimal separator ambiguity and converts a
// matched substring to its numeric value.
//
// Rules, applied per substring:
//  1. both , and . present: the separator occurring last is the decimal one;
//     all earlier separators are thousands separators.
//  2. only , present: decimal iff exactly two digits follow the final comma.
//  3. only . present: symmetric to rule 2.
//  4. no separator: plain integer.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimLeft(s, "$€£¥")
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	decimalAt := -1
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			decimalAt = lastComma
		} else {
			decimalAt = lastDot
		}
	case lastComma >= 0:
		if len(s)-lastComma-1 == 2 {
			decimalAt = lastComma
		}
	case lastDot >= 0:
		if len(s)-lastDot-1 == 2 {
			decimalAt = lastDot
		}
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case i == decimalAt:
			b.WriteByte('.')
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
