package extract

import "strings"

// Keyword tables are locale-mixed on purpose: a French invoice often carries
// English boilerplate and vice versa, so both classifiers count over the
// whole text rather than segmenting it first.
var (
	estimateKeywords = []string{"devis", "estimate", "quotation", "quote", "proforma"}
	invoiceKeywords  = []string{"facture", "invoice", "bill", "receipt"}

	frenchKeywords = []string{
		"facture", "devis", "montant", "total", "prix", "quantité",
		"adresse", "client", "référence", "émetteur", "destinataire",
		"rue", "avenue", "boulevard", "france", "paris", "lyon",
	}
	englishKeywords = []string{
		"invoice", "estimate", "amount", "price", "quantity",
		"address", "customer", "reference", "from", "bill to",
		"street", "road", "avenue",
	}
)

func countKeywords(textLower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		n += strings.Count(textLower, kw)
	}
	return n
}

// ClassifyKind decides invoice vs estimate by keyword frequency.
// Estimate wins only on a strict majority; ties resolve to invoice.
func ClassifyKind(textLower string) Kind {
	if countKeywords(textLower, estimateKeywords) > countKeywords(textLower, invoiceKeywords) {
		return KindEstimate
	}
	return KindInvoice
}

// ClassifyLocale decides the dominant locale by keyword frequency.
// French wins on >=, not only strict majority. This is deliberately
// asymmetric with ClassifyKind's tie-break.
func ClassifyLocale(textLower string) Locale {
	if countKeywords(textLower, frenchKeywords) >= countKeywords(textLower, englishKeywords) {
		return LocaleFR
	}
	return LocaleEN
}
