package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/facturo/facturo/internal/extract"
	"github.com/facturo/facturo/internal/store"
)

type stubStore struct {
	invoices []*store.Invoice
}

func (s *stubStore) Save(ctx context.Context, inv *store.Invoice) error { return nil }
func (s *stubStore) Get(ctx context.Context, id uuid.UUID) (*store.Invoice, error) {
	return nil, store.ErrNotFound
}
func (s *stubStore) List(ctx context.Context) ([]*store.Invoice, error) {
	return s.invoices, nil
}
func (s *stubStore) Delete(ctx context.Context, id uuid.UUID) error { return store.ErrNotFound }
func (s *stubStore) Close() error                                   { return nil }

func TestExportInvoicesXLSX(t *testing.T) {
	invoices := []*store.Invoice{
		{
			ID:     uuid.New(),
			Number: "20240315-120000",
			Kind:   extract.KindInvoice,
			Locale: extract.LocaleFR,
			Items: []extract.LineItem{
				{Description: "Consulting", Quantity: 2, UnitPrice: 50},
			},
			Total:     100,
			Title:     "2024-0042",
			CreatedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:     uuid.New(),
			Number: "20240316-090000",
			Kind:   extract.KindEstimate,
			Locale: extract.LocaleEN,
			Items:  []extract.LineItem{},
			Total:  75.5,
			Title:  "EST-1",
		},
	}

	svc := NewService(&stubStore{invoices: invoices}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	data, err := svc.ExportInvoicesXLSX(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Invoices")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Number" || rows[0][7] != "Total" {
		t.Errorf("unexpected headers %v", rows[0])
	}
	// Kind labels and currency follow each invoice's locale.
	if rows[1][1] != "Facture" {
		t.Errorf("expected localized kind Facture, got %q", rows[1][1])
	}
	if rows[1][7] != "100.00 €" {
		t.Errorf("expected French currency total, got %q", rows[1][7])
	}
	if rows[2][1] != "Estimate" {
		t.Errorf("expected Estimate, got %q", rows[2][1])
	}
	if rows[2][7] != "75.50 $" {
		t.Errorf("expected dollar total, got %q", rows[2][7])
	}
}

func TestExportInvoicesXLSX_DateWindow(t *testing.T) {
	invoices := []*store.Invoice{
		{
			ID:        uuid.New(),
			Number:    "20240310-080000",
			Kind:      extract.KindInvoice,
			Locale:    extract.LocaleEN,
			Items:     []extract.LineItem{},
			Total:     10,
			CreatedAt: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			Number:    "20240320-080000",
			Kind:      extract.KindInvoice,
			Locale:    extract.LocaleEN,
			Items:     []extract.LineItem{},
			Total:     20,
			CreatedAt: time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC),
		},
	}

	svc := NewService(&stubStore{invoices: invoices}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	from := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	data, err := svc.ExportInvoicesXLSX(context.Background(), &from, &to)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Invoices")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "20240320-080000" {
		t.Errorf("expected only the in-window invoice, got %q", rows[1][0])
	}
}

func TestExportInvoicesXLSX_Empty(t *testing.T) {
	svc := NewService(&stubStore{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	data, err := svc.ExportInvoicesXLSX(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Invoices")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}
