package constants

const (
	// MaxNameTokens bounds how many whitespace-separated tokens an extracted
	// item name may carry before the line is judged implausible.
	MaxNameTokens = 8

	// MaxFallbackItems caps the permissive fallback pass to bound false
	// positives from noisy scans.
	MaxFallbackItems = 12

	// MaxQuantityDigits bounds the leading quantity token on an item line.
	MaxQuantityDigits = 3
)
