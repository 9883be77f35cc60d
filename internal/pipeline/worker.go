package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/facturo/facturo/internal/decode"
	"github.com/facturo/facturo/internal/extract"
	"github.com/facturo/facturo/internal/store"
)

// Worker processes a single document job.
type Worker struct {
	invoices store.InvoiceStore
	stats    *extract.RunStats
	log      *slog.Logger

	pdfFallback bool
}

func NewWorker(invoices store.InvoiceStore, stats *extract.RunStats, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		invoices:    invoices,
		stats:       stats,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs decode, extract and store for a job. Decode failures do not
// fail the job: extraction falls back to the documented default result so
// the caller always gets a complete payload.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Decode
	job.SetStatus(StatusDecoding, "decoding")
	pages, decodeErr := w.decodePages(job)
	if decodeErr != nil {
		log.Warn("decode failed, using default result", "error", decodeErr)
		job.AddError(decodeErr.Error())
	}

	// Phase 2: Extract
	job.SetStatus(StatusExtracting, "extracting")
	start := time.Now()
	var res extract.Result
	if decodeErr != nil {
		res = extract.DefaultResult(fmt.Sprintf("Error opening document: %s", decodeErr))
	} else {
		res = extract.Extract(pages)
	}
	if w.stats != nil {
		w.stats.Record(res, time.Since(start).Milliseconds())
	}
	log.Info("extraction complete",
		"kind", res.Kind.String(),
		"locale", res.Locale.String(),
		"items", len(res.Items),
		"total", res.Total,
	)

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	inv := InvoiceFromResult(res)
	var storeErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		storeErr = w.invoices.Save(ctx, inv)
		if storeErr == nil || !IsRetryable(storeErr) {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", storeErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			storeErr = ctx.Err()
		}
		if storeErr != nil && ctx.Err() != nil {
			break
		}
	}
	if storeErr != nil {
		log.Error("store failed", "error", storeErr)
		job.AddError(fmt.Sprintf("store: %s", storeErr))
		job.SetResult(res)
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetInvoiceID(inv.ID.String())
	job.SetResult(res)
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) decodePages(job *Job) ([]string, error) {
	dec, err := decode.ForFile(job.Filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := dec.(*decode.PDFDecoder); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}
	doc, err := dec.Decode(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		return nil, err
	}
	return doc.PageTexts(), nil
}

// InvoiceFromResult builds a storable invoice row from an extraction result.
// Numbers follow the upload timestamp so rows sort naturally.
func InvoiceFromResult(res extract.Result) *store.Invoice {
	now := time.Now().UTC()
	items := res.Items
	if items == nil {
		items = []extract.LineItem{}
	}
	return &store.Invoice{
		ID:          uuid.New(),
		Number:      now.Format("20060102-150405"),
		Kind:        res.Kind,
		Locale:      res.Locale,
		FromAddress: res.FromAddress,
		ToAddress:   res.ToAddress,
		Items:       items,
		Total:       res.Total,
		Title:       res.Title,
		CreatedAt:   now,
	}
}
