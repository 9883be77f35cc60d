package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Table layout: PDF text layers often emit each cell on its own line, so an
// item reads as a description line followed by bare numbers (quantity, unit
// price, line total). The table strategy walks lines with a small state
// machine; the inline strategy handles single-line "desc  qty  price" rows.

var (
	// Header tokens that mark the description column of an item table.
	descriptionHeaders = []string{"description", "désignation", "libellé"}

	// Remaining column-header cells to skip after the description header.
	columnHeaders = map[string]bool{
		"quantité":          true,
		"quantity":          true,
		"qty":               true,
		"qté":               true,
		"prix unitaire":     true,
		"unit price":        true,
		"prix unitaire (€)": true,
		"prix":              true,
		"total":             true,
		"total (€)":         true,
		"montant":           true,
	}

	letterStartRe = regexp.MustCompile(`^[A-Za-zÀ-ÿ]`)
	pureNumberRe  = regexp.MustCompile(`^[\d.,]+$`)

	// Metadata-prefix lines skipped by the inline strategy.
	inlineSkipRes = []*regexp.Regexp{
		regexp.MustCompile(`^devis\b`),
		regexp.MustCompile(`^facture\b`),
		regexp.MustCompile(`^invoice\b`),
		regexp.MustCompile(`^estimate\b`),
		regexp.MustCompile(`^date\b`),
		regexp.MustCompile(`^n[°o]\.?\s*:?\s*\d`),
		regexp.MustCompile(`^ref`),
		regexp.MustCompile(`^client\b`),
		regexp.MustCompile(`^total\b`),
		regexp.MustCompile(`^montant\b`),
		regexp.MustCompile(`^sous-total`),
		regexp.MustCompile(`^subtotal`),
		regexp.MustCompile(`^tva\b`),
		regexp.MustCompile(`^tax\b`),
		regexp.MustCompile(`^\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}`),
		regexp.MustCompile(`^page\s+\d`),
		regexp.MustCompile(`^siret\b`),
		regexp.MustCompile(`^iban\b`),
		regexp.MustCompile(`^bic\b`),
	}

	// Description, >=2 spaces, integer quantity, optional currency, amount.
	inlineQtyRe = regexp.MustCompile(`^([A-Za-zÀ-ÿ][\wÀ-ÿ\s\-()'".,:]+?)\s{2,}(\d+)\s+[$€]?\s*([\d\s.,]+)`)

	// Description (>=5 chars), >=2 spaces, optional currency, amount only.
	inlinePriceRe = regexp.MustCompile(`^([A-Za-zÀ-ÿ][\wÀ-ÿ\s\-()'".,:]{5,}?)\s{2,}[$€]?\s*([\d.,]+)\s*€?$`)
)

// ExtractItems recovers the line-item table. The table-oriented strategy runs
// first; the inline strategy is used only when it yields nothing.
func ExtractItems(lines []string) []LineItem {
	if items := extractTableItems(lines); len(items) > 0 {
		return items
	}
	return extractInlineItems(lines)
}

// scanState drives the table strategy's cursor loop.
type scanState int

const (
	scanningForDescription scanState = iota
	collectingNumbers
	scanDone
)

func extractTableItems(lines []string) []LineItem {
	headerIdx := -1
scan:
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, h := range descriptionHeaders {
			if strings.Contains(lower, h) {
				headerIdx = i
				break scan
			}
		}
	}
	if headerIdx == -1 {
		return nil
	}

	// Skip the remaining header cells after the description column.
	i := headerIdx + 1
	for i < len(lines) && columnHeaders[strings.ToLower(strings.TrimSpace(lines[i]))] {
		i++
	}

	var items []LineItem
	state := scanningForDescription
	var description string
	var numbers []float64

	for state != scanDone {
		switch state {
		case scanningForDescription:
			if i >= len(lines) {
				state = scanDone
				continue
			}
			line := strings.TrimSpace(lines[i])
			lower := strings.ToLower(line)
			if lower == "total" || strings.HasPrefix(lower, "total:") {
				state = scanDone
				continue
			}
			if letterStartRe.MatchString(line) && !IsMetadata(line) {
				description = line
				numbers = numbers[:0]
				state = collectingNumbers
				continue
			}
			i++

		case collectingNumbers:
			// Look ahead for up to 3 consecutive pure-numeric lines
			// (quantity, unit price, line total).
			j := i + 1
			for j < len(lines) && len(numbers) < 3 {
				next := strings.TrimSpace(lines[j])
				if letterStartRe.MatchString(next) && !pureNumberRe.MatchString(next) {
					break
				}
				if strings.HasPrefix(strings.ToLower(next), "total") {
					break
				}
				if pureNumberRe.MatchString(next) {
					if v, err := strconv.ParseFloat(strings.ReplaceAll(next, ",", "."), 64); err == nil {
						numbers = append(numbers, v)
					}
				}
				j++
			}

			if len(numbers) >= 2 {
				qty := 1
				if numbers[0] == math.Trunc(numbers[0]) {
					qty = int(numbers[0])
				}
				price := numbers[1]
				if description != "" && qty > 0 && price >= 0 {
					items = append(items, LineItem{
						Description: description,
						Quantity:    qty,
						UnitPrice:   price,
					})
				}
				// Advance past the consumed numbers.
				i = j
			} else {
				i++
			}
			state = scanningForDescription
		}
	}

	return items
}

func extractInlineItems(lines []string) []LineItem {
	var items []LineItem

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		if utf8.RuneCountInString(line) < 5 || matchesAny(inlineSkipRes, lower) {
			continue
		}

		if m := inlineQtyRe.FindStringSubmatch(line); m != nil && !IsMetadata(m[1]) {
			desc := strings.TrimSpace(m[1])
			qty, qtyErr := strconv.Atoi(m[2])
			price, priceErr := parseAmount(m[3])
			if qtyErr == nil && priceErr == nil && utf8.RuneCountInString(desc) > 2 && qty > 0 {
				items = append(items, LineItem{Description: desc, Quantity: qty, UnitPrice: price})
				continue
			}
		}

		if m := inlinePriceRe.FindStringSubmatch(line); m != nil && !IsMetadata(m[1]) {
			desc := strings.TrimSpace(m[1])
			price, err := parseAmount(m[2])
			if err == nil && utf8.RuneCountInString(desc) > 3 && price > 0 && price < 1000000 {
				items = append(items, LineItem{Description: desc, Quantity: 1, UnitPrice: price})
			}
		}
	}

	return items
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// parseAmount parses a numeric token with spaces stripped and the comma
// treated as a decimal separator.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
