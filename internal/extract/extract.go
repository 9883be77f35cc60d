// Package extract recovers structured invoice/estimate fields from the
// plain-text layer of an already-decoded document. It has no layout or
// coordinate information to work with: every stage is a heuristic over an
// ordered line sequence, and every stage degrades to a documented default
// instead of failing. The package holds no mutable state beyond its fixed
// keyword/pattern tables, so extraction calls are safe to run concurrently.
package extract

import "strings"

// Extract runs the full pipeline over the decoded per-page texts and
// assembles the result. It never returns an error; misses surface as empty
// fields and zero totals.
func Extract(pages []string) Result {
	fullText, lines := Normalize(pages)
	textLower := strings.ToLower(fullText)

	items := ExtractItems(lines)
	if items == nil {
		items = []LineItem{}
	}
	from, to := ExtractAddresses(lines, fullText)

	return Result{
		Kind:        ClassifyKind(textLower),
		Locale:      ClassifyLocale(textLower),
		FromAddress: from,
		ToAddress:   to,
		Items:       items,
		Total:       CalculateTotal(items, fullText),
		Title:       ExtractTitle(lines, textLower),
		RawText:     fullText,
	}
}

// DefaultResult is the structurally valid empty result returned when the
// document could not be decoded at all. diag carries the decode error text
// in RawText so callers can surface it without a separate failure type.
func DefaultResult(diag string) Result {
	return Result{
		Kind:    KindInvoice,
		Locale:  LocaleEN,
		Items:   []LineItem{},
		RawText: diag,
	}
}
