package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/product-dashboard/internal/core/domain"
	"github.com/niksmo/product-dashboard/internal/core/port"
)

// GET v1/dashboard (200 OK, 422 Unprocessable entity, 502 Bad gateway)
// GET v1/products (200 OK, 422 Unprocessable entity, 502 Bad gateway)
// GET healthz (200 OK)

type DashboardHandler struct {
	builder port.DashboardBuilder
}

func RegisterDashboard(mux *http.ServeMux, builder port.DashboardBuilder) {
	h := DashboardHandler{builder}
	mux.HandleFunc("GET /v1/dashboard", h.GetDashboard)
}

func (h DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "DashboardHandler.GetDashboard"
	log := slog.With("op", op)

	d, err := h.builder.Dashboard(r.Context())
	if err != nil {
		writeFailure(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, dashboardFromDomain(d))
	log.Info("served", "nProducts", d.TotalProducts)
}

type ProductsHandler struct {
	lister port.ProductsLister
}

func RegisterProducts(mux *http.ServeMux, lister port.ProductsLister) {
	h := ProductsHandler{lister}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	rows, err := h.lister.Products(r.Context())
	if err != nil {
		writeFailure(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, rowsFromDomain(rows))
	log.Info("served", "nProducts", len(rows))
}

func RegisterHealth(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func writeFailure(w http.ResponseWriter, log *slog.Logger, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		log.Warn("catalog returned invalid products", "err", err)
		writeJSON(
			w, log, http.StatusUnprocessableEntity,
			errorBody{"catalog returned invalid products"},
		)
		return
	}

	log.Error("failed to load catalog", "err", err)
	writeJSON(
		w, log, http.StatusBadGateway,
		errorBody{"catalog is unavailable"},
	)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}
