package decode

import (
	"strings"
	"testing"
)

func TestMarkdownDecoder_HeadingsAndBlocksBecomeLines(t *testing.T) {
	input := `# Facture 2024-01

Client: Acme

Total: 100.00
`
	d := &MarkdownDecoder{}
	doc, err := d.Decode(strings.NewReader(input), "facture.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "facture" {
		t.Errorf("expected title %q, got %q", "facture", doc.Title)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}

	text := doc.Pages[0].Text
	for _, want := range []string{"Facture 2024-01", "Client: Acme", "Total: 100.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected page text to contain %q, got %q", want, text)
		}
	}
}

func TestMarkdownDecoder_EmptyInput(t *testing.T) {
	d := &MarkdownDecoder{}
	doc, err := d.Decode(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(doc.Pages))
	}
}

func TestMarkdownDecoder_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
	}
	d := &MarkdownDecoder{}
	for _, tt := range tests {
		doc, err := d.Decode(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
