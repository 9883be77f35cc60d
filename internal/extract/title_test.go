package extract

import (
	"strings"
	"testing"
)

func TestExtractTitle_InvoiceNumber(t *testing.T) {
	text := strings.ToLower("Facture N° 2024-0042\nreste du document")
	got := ExtractTitle(nil, text)
	if got != "2024-0042" {
		t.Errorf("expected 2024-0042, got %q", got)
	}
}

func TestExtractTitle_EnglishReference(t *testing.T) {
	text := strings.ToLower("Invoice #INV-778\nsome body text")
	got := ExtractTitle(nil, text)
	if got != "INV-778" {
		t.Errorf("expected INV-778, got %q", got)
	}
}

func TestExtractTitle_RefLabel(t *testing.T) {
	text := strings.ToLower("Réf: ABC-123")
	got := ExtractTitle(nil, text)
	if got != "ABC-123" {
		t.Errorf("expected ABC-123, got %q", got)
	}
}

func TestExtractTitle_NoMatchReturnsEmpty(t *testing.T) {
	if got := ExtractTitle(nil, "simple body text, zero useful markers"); got != "" {
		t.Errorf("expected empty title, got %q", got)
	}
}

func TestExtractTitle_Uppercases(t *testing.T) {
	got := ExtractTitle(nil, "devis n° abc12")
	if got != "ABC12" {
		t.Errorf("expected ABC12, got %q", got)
	}
}
