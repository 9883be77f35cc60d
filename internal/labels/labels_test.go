package labels

import (
	"testing"

	"github.com/facturo/facturo/internal/extract"
)

func TestFor_French(t *testing.T) {
	s := For(extract.LocaleFR)
	if s.CurrencySymbol != "€" {
		t.Errorf("expected €, got %q", s.CurrencySymbol)
	}
	if s.Headers.Quantity != "Quantité" {
		t.Errorf("unexpected quantity header %q", s.Headers.Quantity)
	}
	if s.From != "De :" || s.To != "À :" {
		t.Errorf("unexpected address labels %q / %q", s.From, s.To)
	}
}

func TestFor_English(t *testing.T) {
	s := For(extract.LocaleEN)
	if s.CurrencySymbol != "$" {
		t.Errorf("expected $, got %q", s.CurrencySymbol)
	}
	if s.Headers.UnitPrice != "Unit Price ($)" {
		t.Errorf("unexpected unit price header %q", s.Headers.UnitPrice)
	}
}

func TestKindLabel(t *testing.T) {
	tests := []struct {
		kind   extract.Kind
		locale extract.Locale
		want   string
	}{
		{extract.KindInvoice, extract.LocaleFR, "Facture"},
		{extract.KindEstimate, extract.LocaleFR, "Devis"},
		{extract.KindInvoice, extract.LocaleEN, "Invoice"},
		{extract.KindEstimate, extract.LocaleEN, "Estimate"},
	}
	for _, tt := range tests {
		if got := KindLabel(tt.kind, tt.locale); got != tt.want {
			t.Errorf("KindLabel(%s, %s) = %q, want %q", tt.kind, tt.locale, got, tt.want)
		}
	}
}
