package decode

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVDecoder handles CSV files. Every record becomes one line with cells
// separated by a double space, which keeps column boundaries visible to
// downstream line parsing.
type CSVDecoder struct{}

func (d *CSVDecoder) Decode(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &DecodeError{Format: "csv", Err: fmt.Errorf("parse csv: %w", err)}
	}

	doc := &Document{Title: strings.TrimSuffix(filename, ".csv")}
	if len(records) == 0 {
		return doc, nil
	}

	lines := make([]string, 0, len(records))
	for _, row := range records {
		lines = append(lines, strings.Join(row, "  "))
	}
	doc.Pages = []Page{{Number: 1, Text: strings.Join(lines, "\n")}}
	return doc, nil
}
