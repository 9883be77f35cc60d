// Package labels holds the per-locale display strings used when rendering
// extracted documents for humans, in exports and API detail payloads.
package labels

import "github.com/facturo/facturo/internal/extract"

// Set is the display vocabulary for one locale.
type Set struct {
	KindInvoice    string
	KindEstimate   string
	CurrencySymbol string
	Headers        Headers
	From           string
	To             string
}

// Headers are the line item column titles.
type Headers struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}

var sets = map[extract.Locale]Set{
	extract.LocaleEN: {
		KindInvoice:    "Invoice",
		KindEstimate:   "Estimate",
		CurrencySymbol: "$",
		Headers: Headers{
			Description: "Description",
			Quantity:    "Quantity",
			UnitPrice:   "Unit Price ($)",
			Total:       "Total ($)",
		},
		From: "From:",
		To:   "To:",
	},
	extract.LocaleFR: {
		KindInvoice:    "Facture",
		KindEstimate:   "Devis",
		CurrencySymbol: "€",
		Headers: Headers{
			Description: "Description",
			Quantity:    "Quantité",
			UnitPrice:   "Prix Unitaire (€)",
			Total:       "Total (€)",
		},
		From: "De :",
		To:   "À :",
	},
}

// For returns the display set for a locale, falling back to English.
func For(locale extract.Locale) Set {
	if s, ok := sets[locale]; ok {
		return s
	}
	return sets[extract.LocaleEN]
}

// KindLabel returns the localized name of a document kind.
func KindLabel(kind extract.Kind, locale extract.Locale) string {
	s := For(locale)
	if kind == extract.KindEstimate {
		return s.KindEstimate
	}
	return s.KindInvoice
}
