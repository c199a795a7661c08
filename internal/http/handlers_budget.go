package http

import (
	"log/slog"
	"net/http"

	"cantiere/internal/core"
)

// handleBudgetCard returns the budget card partial. With ?mode=edit the card
// swaps to an inline input staging a new amount; nothing is stored until the
// value is submitted.
func (s *Server) handleBudgetCard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	name := "budget_card"
	if r.URL.Query().Get("mode") == "edit" {
		name = "budget_edit"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, s.budgetCardData()); err != nil {
		slog.ErrorContext(r.Context(), "Budget card template failed", "error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleUpdateBudget commits a staged budget value. A value that does not
// parse as an unsigned amount leaves the budget unchanged and the card
// simply reverts to display mode.
func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	raw := sanitizeInput(r.Form.Get("budget"))
	if s.ledger.SetBudget(r.Context(), raw) {
		NewHTMXResponse().
			TriggerBudgetUpdated().
			TriggerSuccessNotification("Budget updated to " + formatRupees(s.ledger.Budget().Cents)).
			WriteHeaders(w)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "budget_card", s.budgetCardData()); err != nil {
		slog.ErrorContext(r.Context(), "Budget card template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) budgetCardData() summaryView {
	budget := s.ledger.Budget()
	return newSummaryView(core.Summarize(s.ledger.Expenses(), budget), budget)
}
