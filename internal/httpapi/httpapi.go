package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"salonpos/backend/internal/service"
)

type API struct {
	service       *service.Service
	allowedOrigin string
	logger        *zap.Logger
}

func New(svc *service.Service, allowedOrigin string, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		service:       svc,
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)

	mux.HandleFunc("/api/v1/services", a.handleServices)
	mux.HandleFunc("/api/v1/services/", a.handleServiceActions)
	mux.HandleFunc("/api/v1/stylists", a.handleStylists)
	mux.HandleFunc("/api/v1/stylists/", a.handleStylistActions)

	mux.HandleFunc("/api/v1/checkout", a.handleCheckout)
	mux.HandleFunc("/api/v1/expenses", a.handleExpenses)
	mux.HandleFunc("/api/v1/expenses/", a.handleExpenseActions)

	mux.HandleFunc("/api/v1/reports", a.handleReports)
	mux.HandleFunc("/api/v1/reports/today", a.handleTodayReport)
	mux.HandleFunc("/api/v1/reports/periods", a.handlePeriods)
	mux.HandleFunc("/api/v1/reports/periods/", a.handlePeriodDetail)

	mux.HandleFunc("/api/v1/payroll", a.handlePayroll)
	mux.HandleFunc("/api/v1/payroll/paid", a.handlePayrollPaid)

	return a.withMiddleware(mux)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"at":    time.Now().UTC().Format(time.RFC3339),
		"today": a.service.Today(),
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodPost || r.Method == http.MethodPatch || r.Method == http.MethodPut {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		startedAt := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(startedAt)),
		)
	})
}

// pathID returns the trailing segment after prefix, e.g. "7" for
// /api/v1/services/7.
func pathID(path string, prefix string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimPrefix(path, prefix), "/"))
}

func parseID(raw string, label string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New(label + " must be a positive integer")
	}
	return id, nil
}

// parseStylistFilter treats an empty value or "all" as no filter.
func parseStylistFilter(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil, nil
	}
	id, err := parseID(raw, "stylist_id")
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	a.writeError(w, statusFor(err), err)
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
}

// writeError hides the cause of 5xx responses from the client and logs it.
func (a *API) writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status >= 500 {
		a.logger.Error("internal error", zap.Int("status", status), zap.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
