package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/facturo/facturo/internal/config"
	"github.com/facturo/facturo/internal/export"
	"github.com/facturo/facturo/internal/pipeline"
	"github.com/facturo/facturo/internal/store"
)

// Server is the HTTP API server for facturo.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	invoices     store.InvoiceStore
	exporter     *export.Service
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, invoices store.InvoiceStore, exporter *export.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		invoices:     invoices,
		exporter:     exporter,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/parse", s.handleParse)
		r.Post("/api/parse/async", s.handleParseAsync)
		r.Get("/api/parse/{jobID}/status", s.handleParseStatus)
		r.Get("/api/stats/extraction", s.handleExtractionStats)

		r.Post("/api/invoices", s.handleCreateInvoice)
		r.Get("/api/invoices", s.handleListInvoices)
		r.Get("/api/invoices/export", s.handleExportInvoices)
		r.Get("/api/invoices/{invoiceID}", s.handleGetInvoice)
		r.Delete("/api/invoices/{invoiceID}", s.handleDeleteInvoice)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
