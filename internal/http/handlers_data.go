package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cantiere/internal/backup"
)

// maxImportBytes caps uploaded backup files.
const maxImportBytes = 4 << 20

// handleExport serves the full dataset as a downloadable JSON document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	now := time.Now()
	data, err := backup.Export(s.ledger.Expenses(), s.ledger.Budget(), now)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.Filename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImport validates an uploaded backup and stages it for confirmation.
// Nothing is committed here: the response embeds the validated payload in a
// confirmation partial whose submit posts to the commit endpoint.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		slog.ErrorContext(r.Context(), "Parse multipart form error", "error", err)
		BadRequestError("Invalid upload").Write(w)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Missing backup file").Write(w)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		slog.ErrorContext(r.Context(), "Read upload error", "error", err)
		BadRequestError("Could not read upload").Write(w)
		return
	}

	doc, err := backup.Parse(payload)
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected import", "error", err, "bytes", len(payload))
		switch {
		case errors.Is(err, backup.ErrSchema):
			UnprocessableEntityError("Invalid backup file: no expense data found").Write(w)
		default:
			UnprocessableEntityError("Error reading file. Please check the file format.").Write(w)
		}
		return
	}

	data := struct {
		Count     int
		HasBudget bool
		Budget    string
		Payload   string
	}{
		Count:     len(doc.Expenses),
		HasBudget: doc.HasBudget(),
		Budget:    formatRupees(doc.Budget.Cents),
		Payload:   string(payload),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "import_confirm", data); err != nil {
		slog.ErrorContext(r.Context(), "Import confirm template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleImportConfirm commits a previously staged import, replacing the
// collection verbatim. The payload is re-validated; a tampered or stale
// payload is rejected the same way as a bad upload.
func (s *Server) handleImportConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	doc, err := backup.Parse([]byte(r.Form.Get("payload")))
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected staged import", "error", err)
		UnprocessableEntityError("Error reading file. Please check the file format.").Write(w)
		return
	}

	if err := s.ledger.ReplaceAll(r.Context(), doc.Expenses, doc.Budget, doc.HasBudget()); err != nil {
		slog.ErrorContext(r.Context(), "Import commit failed", "error", err)
		InternalServerError("Import failed").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Import committed", "expenses", len(doc.Expenses), "has_budget", doc.HasBudget())

	NewHTMXResponse().
		TriggerDataReplaced().
		Trigger("page:refresh", struct{}{}).
		TriggerSuccessNotification("Data imported successfully!").
		Write(w)
}

// handleClearAll removes every stored expense and the budget override. The
// client gates this behind a confirmation prompt.
func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	if err := s.ledger.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Clear all failed", "error", err)
		InternalServerError("Clear failed").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerDataReplaced().
		Trigger("page:refresh", struct{}{}).
		TriggerSuccessNotification("All data cleared").
		Write(w)
}
