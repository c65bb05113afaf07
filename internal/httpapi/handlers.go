package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/export"
	"salonpos/backend/internal/ledger"
)

func (a *API) handleServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"services": a.service.ListServices(r.Context())})
	case http.MethodPost:
		var req domain.ServiceRequest
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateService(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"service": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleServiceActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathID(r.URL.Path, "/api/v1/services/"), "service id")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req domain.ServiceRequest
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateService(r.Context(), id, req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"service": updated})
	case http.MethodDelete:
		if err := a.service.DeleteService(r.Context(), id); err != nil {
			a.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleStylists(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"stylists": a.service.ListStylists(r.Context())})
	case http.MethodPost:
		var req domain.StylistRequest
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, http.StatusBadRequest, err)
			return
		}
		created, err := a.service.CreateStylist(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"stylist": created})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleStylistActions(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(pathID(r.URL.Path, "/api/v1/stylists/"), "stylist id")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req domain.StylistRequest
		if err := decodeJSON(r, &req); err != nil {
			a.writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := a.service.UpdateStylist(r.Context(), id, req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stylist": updated})
	case http.MethodDelete:
		if err := a.service.DeleteStylist(r.Context(), id); err != nil {
			a.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	tx, err := a.service.Checkout(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transaction": tx})
}

func (a *API) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.ExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	expense, err := a.service.RecordExpense(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"expense": expense})
}

func (a *API) handleExpenseActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w)
		return
	}

	id := pathID(r.URL.Path, "/api/v1/expenses/")
	if id == "" {
		a.writeError(w, http.StatusBadRequest, errors.New("expense id required"))
		return
	}

	deleted, err := a.service.DeleteExpense(r.Context(), id)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (a *API) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": a.service.ListReports(r.Context())})
}

func (a *API) handleTodayReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": a.service.TodayReport(r.Context())})
}

func (a *API) handlePeriods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	granularity, stylistID, err := parseReportQuery(r)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	periods := a.service.Periods(r.Context(), granularity, stylistID)
	payload := map[string]any{
		"granularity": granularity,
		"stylistName": a.service.StylistName(stylistID),
		"periods":     periods,
	}
	if latest, ok := ledger.LatestPeriod(periods); ok {
		payload["latest"] = latest
	}
	writeJSON(w, http.StatusOK, payload)
}

func (a *API) handlePeriodDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	period := pathID(r.URL.Path, "/api/v1/reports/periods/")
	if period == "" {
		a.writeError(w, http.StatusBadRequest, errors.New("period required"))
		return
	}
	granularity, stylistID, err := parseReportQuery(r)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	detail, err := a.service.PeriodDetail(r.Context(), period, granularity, stylistID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	stylistName := a.service.StylistName(stylistID)

	rawFormat := r.URL.Query().Get("format")
	if rawFormat == "" || rawFormat == "json" {
		writeJSON(w, http.StatusOK, map[string]any{"detail": detail, "stylistName": stylistName})
		return
	}
	format, ok := export.ParseFormat(rawFormat)
	if !ok {
		a.writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported format %q", rawFormat))
		return
	}

	doc := export.NewDocument(detail, stylistID, stylistName, a.service.Now(), a.service.Location())
	var buf bytes.Buffer
	if err := export.Render(&buf, doc, format); err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format != export.FormatHTML {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.FileName(doc, format)}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func parseReportQuery(r *http.Request) (domain.Granularity, *int64, error) {
	rawGranularity := r.URL.Query().Get("granularity")
	granularity, ok := domain.ParseGranularity(rawGranularity)
	if !ok {
		return "", nil, fmt.Errorf("unsupported granularity %q", rawGranularity)
	}
	stylistID, err := parseStylistFilter(r.URL.Query().Get("stylist_id"))
	if err != nil {
		return "", nil, err
	}
	return granularity, stylistID, nil
}

func (a *API) handlePayroll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	stylistID, err := parseID(q.Get("stylist_id"), "stylist_id")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := a.service.Payroll(r.Context(), stylistID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payroll":     report,
		"stylistName": a.service.StylistName(&stylistID),
	})
}

func (a *API) handlePayrollPaid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.PayrollRecord
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.StylistID < 1 {
		a.writeError(w, http.StatusBadRequest, errors.New("stylistId must be a positive integer"))
		return
	}

	paid, err := a.service.TogglePaid(r.Context(), req)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"paid": paid, "record": req})
}
