package extract

import "testing"

func TestClassifyKind_InvoiceDominant(t *testing.T) {
	text := "facture facture facture devis"
	if got := ClassifyKind(text); got != KindInvoice {
		t.Errorf("expected invoice, got %s", got)
	}
}

func TestClassifyKind_EstimateNeedsStrictMajority(t *testing.T) {
	// Equal counts resolve to invoice.
	text := "devis facture"
	if got := ClassifyKind(text); got != KindInvoice {
		t.Errorf("tie should resolve to invoice, got %s", got)
	}

	text = "devis devis facture"
	if got := ClassifyKind(text); got != KindEstimate {
		t.Errorf("strict estimate majority should resolve to estimate, got %s", got)
	}
}

func TestClassifyKind_EmptyText(t *testing.T) {
	if got := ClassifyKind(""); got != KindInvoice {
		t.Errorf("expected invoice default on empty text, got %s", got)
	}
}

func TestClassifyKind_MixedLocaleKeywords(t *testing.T) {
	// "quotation" and "quote" both count; "quotation" contains "quote" so a
	// single occurrence scores twice. That is how the counting is defined.
	text := "quotation proforma invoice"
	if got := ClassifyKind(text); got != KindEstimate {
		t.Errorf("expected estimate, got %s", got)
	}
}

func TestClassifyLocale_TieGoesToFrench(t *testing.T) {
	if got := ClassifyLocale(""); got != LocaleFR {
		t.Errorf("tie should resolve to fr, got %s", got)
	}
}

func TestClassifyLocale_EnglishDominant(t *testing.T) {
	text := "invoice for customer at 12 main street, amount due on delivery"
	if got := ClassifyLocale(text); got != LocaleEN {
		t.Errorf("expected en, got %s", got)
	}
}

func TestClassifyLocale_FrenchDominant(t *testing.T) {
	text := "facture pour le client, montant total, 3 rue de la paix, paris"
	if got := ClassifyLocale(text); got != LocaleFR {
		t.Errorf("expected fr, got %s", got)
	}
}

func TestKindJSONRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindInvoice, KindEstimate} {
		b, err := k.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %s: %v", k, err)
		}
		var back Kind
		if err := back.UnmarshalJSON(b); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if back != k {
			t.Errorf("round trip changed %s to %s", k, back)
		}
	}
}

func TestParseLocale_Unknown(t *testing.T) {
	if _, err := ParseLocale("de"); err == nil {
		t.Error("expected error for unsupported locale")
	}
}
