package parse

import (
	"regexp"

	"github.com/splitbill/receipt-extract/constants"
)

// Keyword weights for total-candidate scoring. Subtotal/tax/tip style lines
// carry money amounts and often the word "total", but are never the payable
// total, so the penalty dwarfs every bonus.
const (
	bonusGrandTotal = 100
	bonusAmountDue  = 80
	bonusBareTotal  = 50
	penaltyExcluded = 1000
)

var (
	reGrandTotal   = regexp.MustCompile(`(?i)\bgrand\s+total\b`)
	reAmountDue    = regexp.MustCompile(`(?i)\b(?:amount|balance|total)\s+due\b`)
	reBareTotal    = regexp.MustCompile(`(?i)\btotal\b`)
	reTotalPenalty = compileKeywordPattern(constants.TotalPenaltyKeywords)
)

func totalKeywordBonus(line string) int {
	switch {
	case reGrandTotal.MatchString(line):
		return bonusGrandTotal
	case reAmountDue.MatchString(line):
		return bonusAmountDue
	case reBareTotal.MatchString(line):
		return bonusBareTotal
	}
	return 0
}

// ExtractTotal scores every money-bearing line as a candidate for the
// receipt total: score = line index + keyword bonus - penalty. Only
// positive-score lines are candidates; ties break toward the larger amount,
// then the later line. When nothing scores positive, the bottom half of the
// receipt is scanned for the last money line free of subtotal/tax/tip wording.
func ExtractTotal(lines []string) *float64 {
	var (
		found     bool
		bestScore int
		bestIndex int
		bestValue float64
	)
	for i, line := range lines {
		amounts := FindMoney(line)
		if len(amounts) == 0 {
			continue
		}
		score := i + totalKeywordBonus(line)
		if reTotalPenalty.MatchString(line) {
			score -= penaltyExcluded
		}
		if score <= 0 {
			continue
		}
		value := amounts[len(amounts)-1].Value
		better := !found ||
			score > bestScore ||
			(score == bestScore && (value > bestValue || (value == bestValue && i > bestIndex)))
		if better {
			found, bestScore, bestIndex, bestValue = true, score, i, value
		}
	}
	if found {
		return &bestValue
	}
	return bottomHalfTotal(lines)
}

// bottomHalfTotal is the last-resort scan: totals live near the bottom of a
// receipt and are numerically >= their constituent lines.
func bottomHalfTotal(lines []string) *float64 {
	var (
		found     bool
		bestIndex int
		bestValue float64
	)
	for i := len(lines) / 2; i < len(lines); i++ {
		if reTotalPenalty.MatchString(lines[i]) {
			continue
		}
		amounts := FindMoney(lines[i])
		if len(amounts) == 0 {
			continue
		}
		value := amounts[len(amounts)-1].Value
		if !found || i > bestIndex || (i == bestIndex && value > bestValue) {
			found, bestIndex, bestValue = true, i, value
		}
	}
	if !found {
		return nil
	}
	return &bestValue
}
