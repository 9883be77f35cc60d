package extract

import "regexp"

// Total-amount label variants, tried in order. The first pattern also covers
// the "Total:\n€110.00" layout where the value lands on the next line.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s*:\s*\n?\s*[€$]?\s*([\d\s.,]+)`),
	regexp.MustCompile(`(?i)total\s*(?:ttc|ht)?\s*[:\s]*[$€]?\s*([\d\s.,]+)`),
	regexp.MustCompile(`(?i)montant\s*(?:total|ttc|ht)?\s*[:\s]*[$€]?\s*([\d\s.,]+)`),
	regexp.MustCompile(`(?i)amount\s*(?:due)?\s*[:\s]*[$€]?\s*([\d\s.,]+)`),
	regexp.MustCompile(`(?i)grand\s*total\s*[:\s]*[$€]?\s*([\d\s.,]+)`),
	regexp.MustCompile(`(?i)total\s*:\s*\n?\s*€([\d\s.,]+)`),
	regexp.MustCompile(`(?i)€([\d\s.,]+)\s*$`),
}

// CalculateTotal sums the extracted items exactly, or falls back to pattern
// matching a labeled total in the text when no items were recovered.
// Returns 0 when nothing parses to a positive amount.
func CalculateTotal(items []LineItem, fullText string) float64 {
	if len(items) > 0 {
		var total float64
		for _, it := range items {
			total += float64(it.Quantity) * it.UnitPrice
		}
		return total
	}

	for _, re := range totalPatterns {
		m := re.FindStringSubmatch(fullText)
		if m == nil {
			continue
		}
		if v, err := parseAmount(m[1]); err == nil && v > 0 {
			return v
		}
	}
	return 0
}
