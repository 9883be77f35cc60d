package extract

import (
	"strings"
	"testing"
)

func normalized(text string) (string, []string) {
	return Normalize([]string{text})
}

func TestExtractAddresses_LabeledMarkers(t *testing.T) {
	text := "From:\nAcme Studio\n12 Main Street\nSpringfield\n\nBill to:\nGlobex Corp\n742 Evergreen Terrace\nShelbyville\n\nTotal: 100"
	fullText, lines := normalized(text)

	from, to := ExtractAddresses(lines, fullText)
	if !strings.Contains(from, "Acme Studio") || !strings.Contains(from, "12 Main Street") {
		t.Errorf("from block missing expected lines: %q", from)
	}
	if !strings.Contains(to, "Globex Corp") {
		t.Errorf("to block missing expected lines: %q", to)
	}
	if strings.Contains(from, "Globex") {
		t.Errorf("from block leaked into recipient: %q", from)
	}
}

func TestExtractAddresses_BlockStopsAtSectionMarker(t *testing.T) {
	text := "Émetteur:\nStudio Dupont\n8 rue Oberkampf\nTotal: 250\nmore text"
	fullText, lines := normalized(text)

	from, _ := ExtractAddresses(lines, fullText)
	if strings.Contains(strings.ToLower(from), "total") {
		t.Errorf("block should stop before the totals line, got %q", from)
	}
	if !strings.Contains(from, "rue Oberkampf") {
		t.Errorf("expected address content, got %q", from)
	}
}

func TestExtractAddresses_ShortBlockRejected(t *testing.T) {
	// Joined block of 10 chars or fewer does not count as found.
	text := "From:\nAcme\n\nsomething else entirely"
	fullText, lines := normalized(text)

	from, _ := ExtractAddresses(lines, fullText)
	if from == "Acme" {
		t.Errorf("short block should have been rejected, got %q", from)
	}
}

func TestExtractAddresses_PostalCodeFallbackTwoBlocks(t *testing.T) {
	// Scenario: two postal-coded blocks, no labeled markers anywhere.
	text := "Acme Studio\n12 Grand Avenue\n75001 Paris\n\nGlobex Corp\n9 Oak Lane\n69002 Lyon\n"
	fullText, lines := normalized(text)

	from, to := ExtractAddresses(lines, fullText)
	if !strings.Contains(from, "75001") {
		t.Errorf("from should hold the first postal block, got %q", from)
	}
	if !strings.Contains(to, "69002") {
		t.Errorf("to should hold the second postal block, got %q", to)
	}
}

func TestExtractAddresses_SinglePostalBlockFillsToOnly(t *testing.T) {
	text := "Globex Corp\n9 Oak Lane\n69002 Lyon\n"
	fullText, lines := normalized(text)

	from, to := ExtractAddresses(lines, fullText)
	if from != "" {
		t.Errorf("from should stay empty with a single block, got %q", from)
	}
	if !strings.Contains(to, "69002 Lyon") {
		t.Errorf("to should hold the single block, got %q", to)
	}
}

func TestExtractAddresses_FallbackDoesNotOverwriteMarkerResult(t *testing.T) {
	text := "From:\nAcme Studio\n12 Grand Avenue\n\nGlobex Corp\n9 Oak Lane\n69002 Lyon\n"
	fullText, lines := normalized(text)

	from, to := ExtractAddresses(lines, fullText)
	if !strings.Contains(from, "Acme Studio") {
		t.Errorf("marker-found from should be kept, got %q", from)
	}
	if !strings.Contains(to, "69002 Lyon") {
		t.Errorf("to should come from the postal fallback, got %q", to)
	}
}

func TestExtractAddresses_NothingFound(t *testing.T) {
	fullText, lines := normalized("no structure here at all")

	from, to := ExtractAddresses(lines, fullText)
	if from != "" || to != "" {
		t.Errorf("expected empty addresses, got %q / %q", from, to)
	}
}

func TestFindAddressBlocks_ExcludesTotalsLines(t *testing.T) {
	lines := []string{"Total: 99,00 €", "Acme Corp", "75001 Paris", "facture n. 5"}
	blocks := findAddressBlocks(lines)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if strings.Contains(strings.ToLower(blocks[0]), "total") {
		t.Errorf("totals line should be excluded, got %q", blocks[0])
	}
	if strings.Contains(strings.ToLower(blocks[0]), "facture") {
		t.Errorf("metadata line should be excluded, got %q", blocks[0])
	}
}
