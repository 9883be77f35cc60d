// Package store persists extracted documents in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/facturo/facturo/internal/extract"
)

// ErrNotFound is returned when no invoice matches the requested ID.
var ErrNotFound = errors.New("invoice not found")

// Invoice is a stored extraction result plus its bookkeeping fields.
type Invoice struct {
	ID          uuid.UUID          `json:"id"`
	Number      string             `json:"invoice_number"`
	Kind        extract.Kind       `json:"mode"`
	Locale      extract.Locale     `json:"language"`
	FromAddress string             `json:"from_address"`
	ToAddress   string             `json:"to_address"`
	Items       []extract.LineItem `json:"items"`
	Total       float64            `json:"total"`
	Title       string             `json:"doc_title"`
	CreatedAt   time.Time          `json:"created_at"`
}

// InvoiceStore is the persistence boundary for invoices.
type InvoiceStore interface {
	Save(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context) ([]*Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

type sqliteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id           TEXT PRIMARY KEY,
	number       TEXT NOT NULL,
	kind         TEXT NOT NULL,
	locale       TEXT NOT NULL,
	from_address TEXT NOT NULL DEFAULT '',
	to_address   TEXT NOT NULL DEFAULT '',
	items        TEXT NOT NULL DEFAULT '[]',
	total        REAL NOT NULL DEFAULT 0,
	title        TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices (created_at);
`

// Open opens (creating if needed) the SQLite database at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (InvoiceStore, error) {
	logger.Info("opening invoice database", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc/sqlite serializes writes itself; a single connection avoids
	// SQLITE_BUSY under concurrent workers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqliteStore{db: db, logger: logger}, nil
}

func (s *sqliteStore) Save(ctx context.Context, inv *Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO invoices (id, number, kind, locale, from_address, to_address, items, total, title, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number = excluded.number,
			kind = excluded.kind,
			locale = excluded.locale,
			from_address = excluded.from_address,
			to_address = excluded.to_address,
			items = excluded.items,
			total = excluded.total,
			title = excluded.title`,
		inv.ID.String(), inv.Number, inv.Kind.String(), inv.Locale.String(),
		inv.FromAddress, inv.ToAddress, string(items), inv.Total, inv.Title,
		inv.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		s.logger.Error("failed to save invoice", "id", inv.ID, "error", err)
		return err
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, number, kind, locale, from_address, to_address, items, total, title, created_at
		FROM invoices WHERE id = ?`, id.String())
	inv, err := scanInvoice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to load invoice", "id", id, "error", err)
		return nil, err
	}
	return inv, nil
}

func (s *sqliteStore) List(ctx context.Context) ([]*Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, kind, locale, from_address, to_address, items, total, title, created_at
		FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		s.logger.Error("failed to list invoices", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id.String())
	if err != nil {
		s.logger.Error("failed to delete invoice", "id", id, "error", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func scanInvoice(scan func(dest ...any) error) (*Invoice, error) {
	var (
		inv       Invoice
		idStr     string
		kindStr   string
		localeStr string
		itemsJSON string
		createdAt string
	)
	if err := scan(&idStr, &inv.Number, &kindStr, &localeStr, &inv.FromAddress,
		&inv.ToAddress, &itemsJSON, &inv.Total, &inv.Title, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse invoice id: %w", err)
	}
	inv.ID = id
	if inv.Kind, err = extract.ParseKind(kindStr); err != nil {
		return nil, err
	}
	if inv.Locale, err = extract.ParseLocale(localeStr); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(itemsJSON), &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if inv.Items == nil {
		inv.Items = []extract.LineItem{}
	}
	if inv.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &inv, nil
}
