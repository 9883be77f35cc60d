package extract

import "testing"

func TestCalculateTotal_SumsItemsExactly(t *testing.T) {
	items := []LineItem{
		{Description: "a", Quantity: 2, UnitPrice: 50.0},
		{Description: "b", Quantity: 3, UnitPrice: 10.5},
	}
	// Items win over anything in the text.
	got := CalculateTotal(items, "Total: 9999")
	if got != 131.5 {
		t.Errorf("expected 131.5, got %f", got)
	}
}

func TestCalculateTotal_LabeledTotalOnNextLine(t *testing.T) {
	got := CalculateTotal(nil, "some preamble\nTotal:\n€110.00\n")
	if got != 110.0 {
		t.Errorf("expected 110.0, got %f", got)
	}
}

func TestCalculateTotal_FrenchLabels(t *testing.T) {
	got := CalculateTotal(nil, "Montant total : 1 250,40 €")
	if got != 1250.40 {
		t.Errorf("expected 1250.40, got %f", got)
	}
}

func TestCalculateTotal_AmountDue(t *testing.T) {
	got := CalculateTotal(nil, "Amount due: $87.50")
	if got != 87.5 {
		t.Errorf("expected 87.5, got %f", got)
	}
}

func TestCalculateTotal_NoMatchReturnsZero(t *testing.T) {
	got := CalculateTotal(nil, "nothing resembling an amount here")
	if got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestCalculateTotal_RejectsNonPositive(t *testing.T) {
	got := CalculateTotal(nil, "Total: 0")
	if got != 0 {
		t.Errorf("expected 0 for non-positive total, got %f", got)
	}
}

func TestCalculateTotal_EmptyEverything(t *testing.T) {
	if got := CalculateTotal([]LineItem{}, ""); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}
