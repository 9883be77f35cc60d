package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/facturo/facturo/internal/extract"
	"github.com/facturo/facturo/internal/labels"
	"github.com/facturo/facturo/internal/store"
)

// invoiceSchema validates invoice create payloads before decoding.
var invoiceSchema = jsonschema.MustCompileString("invoice.json", `{
	"type": "object",
	"required": ["mode", "language", "items"],
	"properties": {
		"mode": {"enum": ["invoice", "estimate"]},
		"language": {"enum": ["fr", "en"]},
		"from_address": {"type": "string"},
		"to_address": {"type": "string"},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["description", "quantity", "price"],
				"properties": {
					"description": {"type": "string", "minLength": 1},
					"quantity": {"type": "integer", "minimum": 1},
					"price": {"type": "number", "minimum": 0}
				}
			}
		},
		"total": {"type": "number", "minimum": 0},
		"doc_title": {"type": "string"}
	}
}`)

type createInvoiceRequest struct {
	Kind        extract.Kind       `json:"mode"`
	Locale      extract.Locale     `json:"language"`
	FromAddress string             `json:"from_address"`
	ToAddress   string             `json:"to_address"`
	Items       []extract.LineItem `json:"items"`
	Total       *float64           `json:"total"`
	Title       string             `json:"doc_title"`
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	body, err := decodeValidated(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req createInvoiceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		jsonError(w, "invalid invoice payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	// An omitted total is derived from the line items.
	total := 0.0
	for _, it := range req.Items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	if req.Total != nil {
		total = *req.Total
	}
	if req.Items == nil {
		req.Items = []extract.LineItem{}
	}

	now := time.Now().UTC()
	inv := &store.Invoice{
		ID:          uuid.New(),
		Number:      now.Format("20060102-150405"),
		Kind:        req.Kind,
		Locale:      req.Locale,
		FromAddress: req.FromAddress,
		ToAddress:   req.ToAddress,
		Items:       req.Items,
		Total:       total,
		Title:       req.Title,
		CreatedAt:   now,
	}
	if err := s.invoices.Save(r.Context(), inv); err != nil {
		jsonError(w, "failed to save invoice: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(invoicePayload(inv))
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invs, err := s.invoices.List(r.Context())
	if err != nil {
		jsonError(w, "failed to list invoices: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(invs))
	for _, inv := range invs {
		out = append(out, invoicePayload(inv))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"invoices": out})
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		jsonError(w, "invoice id must be a UUID", http.StatusBadRequest)
		return
	}
	inv, err := s.invoices.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "invoice not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load invoice: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoicePayload(inv))
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		jsonError(w, "invoice id must be a UUID", http.StatusBadRequest)
		return
	}
	err = s.invoices.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "invoice not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to delete invoice: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": id.String()})
}

func (s *Server) handleExportInvoices(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateParam(r, "from")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := s.exporter.ExportInvoicesXLSX(r.Context(), from, to)
	if err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	w.Write(data)
}

// parseDateParam reads an optional YYYY-MM-DD query parameter.
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, errors.New(name + " must be a YYYY-MM-DD date")
	}
	return &d, nil
}

// decodeValidated reads the body and checks it against the invoice schema.
func decodeValidated(r *http.Request) ([]byte, error) {
	body, err := readBody(r)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.New("invalid json: " + err.Error())
	}
	if err := invoiceSchema.Validate(doc); err != nil {
		return nil, errors.New("invalid invoice payload: " + err.Error())
	}
	return body, nil
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.New("invalid json: " + err.Error())
	}
	return raw, nil
}

// invoicePayload shapes an invoice for API responses, adding the localized
// display strings clients render verbatim.
func invoicePayload(inv *store.Invoice) map[string]any {
	set := labels.For(inv.Locale)
	return map[string]any{
		"id":              inv.ID.String(),
		"invoice_number":  inv.Number,
		"mode":            inv.Kind.String(),
		"mode_label":      labels.KindLabel(inv.Kind, inv.Locale),
		"language":        inv.Locale.String(),
		"currency_symbol": set.CurrencySymbol,
		"from_address":    inv.FromAddress,
		"to_address":      inv.ToAddress,
		"items":           inv.Items,
		"total":           inv.Total,
		"doc_title":       inv.Title,
		"created_at":      inv.CreatedAt.UTC().Format(time.RFC3339),
	}
}
