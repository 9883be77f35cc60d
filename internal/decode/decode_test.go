package decode

import (
	"errors"
	"strings"
	"testing"
)

func TestForFile_Dispatch(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"invoice.txt", "*decode.TextDecoder"},
		{"invoice.md", "*decode.MarkdownDecoder"},
		{"invoice.markdown", "*decode.MarkdownDecoder"},
		{"invoice.csv", "*decode.CSVDecoder"},
		{"invoice.html", "*decode.HTMLDecoder"},
		{"invoice.htm", "*decode.HTMLDecoder"},
		{"invoice.PDF", "*decode.PDFDecoder"},
		{"invoice.docx", "*decode.DOCXDecoder"},
	}
	for _, tt := range tests {
		dec, err := ForFile(tt.filename)
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		var got string
		switch dec.(type) {
		case *TextDecoder:
			got = "*decode.TextDecoder"
		case *MarkdownDecoder:
			got = "*decode.MarkdownDecoder"
		case *CSVDecoder:
			got = "*decode.CSVDecoder"
		case *HTMLDecoder:
			got = "*decode.HTMLDecoder"
		case *PDFDecoder:
			got = "*decode.PDFDecoder"
		case *DOCXDecoder:
			got = "*decode.DOCXDecoder"
		}
		if got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	if _, err := ForFile("invoice.exe"); err == nil {
		t.Error("expected error for .exe")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"a.txt", true},
		{"a.PDF", true},
		{"a.docx", true},
		{"a.exe", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsSupportedExtension(tt.filename); got != tt.want {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDecodeError_WrapsCause(t *testing.T) {
	cause := errors.New("bad header")
	err := &DecodeError{Format: "pdf", Err: cause}
	if !strings.Contains(err.Error(), "pdf") || !strings.Contains(err.Error(), "bad header") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestDocument_PageTexts(t *testing.T) {
	doc := &Document{Pages: []Page{
		{Number: 1, Text: "one"},
		{Number: 2, Text: "two"},
	}}
	texts := doc.PageTexts()
	if len(texts) != 2 || texts[0] != "one" || texts[1] != "two" {
		t.Errorf("unexpected page texts %v", texts)
	}
}
