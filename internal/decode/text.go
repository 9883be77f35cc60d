package decode

import (
	"io"
	"strings"
)

// TextDecoder handles plain text files. Form feeds act as page breaks.
type TextDecoder struct{}

func (d *TextDecoder) Decode(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Format: "text", Err: err}
	}

	doc := &Document{Title: strings.TrimSuffix(filename, ".txt")}
	for i, page := range strings.Split(string(data), "\f") {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}
		doc.Pages = append(doc.Pages, Page{Number: i + 1, Text: page})
	}
	return doc, nil
}
