// Package decode turns raw document bytes into per-page plain text. It is
// the input collaborator of the extraction engine: the engine consumes only
// the ordered page texts produced here and never sees the container format.
package decode

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// DecodeError reports that a document container could not be read. It is the
// only decode-side failure surfaced across the engine boundary; callers map
// it to a default extraction result rather than an API error.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Page is one page of decoded text, in document order.
type Page struct {
	Number int
	Text   string
}

// Document is the decoded form of an uploaded file.
type Document struct {
	Title string
	Pages []Page
}

// PageTexts returns the ordered page texts, the shape the engine consumes.
func (d *Document) PageTexts() []string {
	texts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		texts = append(texts, p.Text)
	}
	return texts
}

// Decoder converts raw document bytes into a Document.
type Decoder interface {
	Decode(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate decoder for a filename.
func ForFile(filename string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextDecoder{}, nil
	case ".md", ".markdown":
		return &MarkdownDecoder{}, nil
	case ".csv":
		return &CSVDecoder{}, nil
	case ".html", ".htm":
		return &HTMLDecoder{}, nil
	case ".pdf":
		return &PDFDecoder{}, nil
	case ".docx":
		return &DOCXDecoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
