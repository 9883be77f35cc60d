// Package export renders stored invoices as XLSX workbooks.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/facturo/facturo/internal/labels"
	"github.com/facturo/facturo/internal/store"
)

// Service produces XLSX bytes from the invoice store.
type Service struct {
	invoices store.InvoiceStore
	logger   *slog.Logger
}

func NewService(invoices store.InvoiceStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{invoices: invoices, logger: logger}
}

// ExportInvoicesXLSX returns a workbook with one summary row per stored
// invoice in the given date window. Kind labels and currency symbols follow
// each invoice's locale.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither               -> all invoices.
func (s *Service) ExportInvoicesXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC).
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	all, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	invs := make([]*store.Invoice, 0, len(all))
	for _, inv := range all {
		d := inv.CreatedAt.UTC()
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if fromDate != nil && day.Before(*fromDate) {
			continue
		}
		if toDate != nil && day.After(*toDate) {
			continue
		}
		invs = append(invs, inv)
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates.
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Number",
		"Kind",
		"Language",
		"Title",
		"From",
		"To",
		"Items",
		"Total",
		"Created",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, inv := range invs {
		set := labels.For(inv.Locale)

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, inv.Number)
		write(2, labels.KindLabel(inv.Kind, inv.Locale))
		write(3, inv.Locale.String())
		write(4, inv.Title)
		write(5, truncate(inv.FromAddress, 140))
		write(6, truncate(inv.ToAddress, 140))
		write(7, len(inv.Items))
		write(8, fmt.Sprintf("%.2f %s", inv.Total, set.CurrencySymbol))
		if !inv.CreatedAt.IsZero() {
			write(9, inv.CreatedAt.Format("2006-01-02"))
		} else {
			write(9, "")
		}

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 18) // number
	_ = f.SetColWidth(sheet, "B", "C", 12) // kind, language
	_ = f.SetColWidth(sheet, "D", "D", 20) // title
	_ = f.SetColWidth(sheet, "E", "F", 40) // addresses
	_ = f.SetColWidth(sheet, "G", "H", 14) // items, total
	_ = f.SetColWidth(sheet, "I", "I", 12) // created

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(invs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
