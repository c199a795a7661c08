package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"cantiere/internal/core"
)

// handleExpensesPage renders the expense list page with category filter pills
// and the add-expense form. The ?category= query narrows the list; the total
// in the header always covers the full collection.
func (s *Server) handleExpensesPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	filter := sanitizeInput(r.URL.Query().Get("category"))
	if filter == "" {
		filter = "all"
	}

	all := s.ledger.Expenses()
	filtered := core.FilterByCategory(all, filter)
	summary := s.ledger.Summary()

	data := struct {
		Filter     string
		FilterAll  bool
		Categories []categoryOption
		Expenses   []expenseView
		Count      int
		Total      string
	}{
		Filter:     filter,
		FilterAll:  filter == "all",
		Categories: categoryOptions(filter),
		Expenses:   expenseViews(filtered),
		Count:      len(filtered),
		Total:      formatRupees(summary.Total.Cents),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "expenses_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Expenses template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleExpenseList returns the list partial for a given category filter.
func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	filter := sanitizeInput(r.URL.Query().Get("category"))
	filtered := s.ledger.List(filter)

	data := struct {
		Expenses []expenseView
		Count    int
	}{
		Expenses: expenseViews(filtered),
		Count:    len(filtered),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "expense_list", data); err != nil {
		slog.ErrorContext(r.Context(), "Expense list template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleExpenseForm returns the add/edit form partial. With ?id= the form is
// prefilled from the stored record for editing.
func (s *Server) handleExpenseForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	data := struct {
		Editing    bool
		Expense    expenseView
		Categories []categoryOption
		Today      string
	}{
		Categories: categoryOptions(""),
		Today:      core.Today().String(),
	}

	if raw := r.URL.Query().Get("id"); raw != "" {
		id, err := parseExpenseID(raw)
		if err != nil {
			BadRequestError("Invalid expense ID").Write(w)
			return
		}
		e, ok := s.ledger.Get(id)
		if !ok {
			NotFoundError("Expense not found").Write(w)
			return
		}
		data.Editing = true
		data.Expense = newExpenseView(e)
		data.Categories = categoryOptions(e.Category)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "expense_form", data); err != nil {
		slog.ErrorContext(r.Context(), "Expense form template failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSaveExpense creates or updates an expense from form data. An empty
// hidden id field means create. Incomplete drafts are rejected without
// touching the collection.
func (s *Server) handleSaveExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	draft := core.Draft{
		Description: sanitizeInput(r.Form.Get("description")),
		Amount:      strings.TrimSpace(r.Form.Get("amount")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Date:        strings.TrimSpace(r.Form.Get("date")),
	}

	rawID := strings.TrimSpace(r.Form.Get("id"))
	if rawID != "" {
		id, err := parseExpenseID(rawID)
		if err != nil {
			BadRequestError("Invalid expense ID").Write(w)
			return
		}
		// Rejected drafts and unknown IDs are silent no-ops; the status
		// code alone tells the client nothing was stored.
		if !s.ledger.Update(r.Context(), id, draft) {
			NewHTMXResponse().Status(http.StatusUnprocessableEntity).Write(w)
			return
		}
		NewHTMXResponse().
			TriggerExpenseChanged(id).
			TriggerFormReset().
			Trigger("page:refresh", struct{}{}).
			TriggerSuccessNotification(fmt.Sprintf("Updated: %s", template.HTMLEscapeString(draft.Description))).
			Write(w)
		return
	}

	e, ok := s.ledger.Create(r.Context(), draft)
	if !ok {
		NewHTMXResponse().Status(http.StatusUnprocessableEntity).Write(w)
		return
	}

	NewHTMXResponse().
		TriggerExpenseChanged(e.ID).
		TriggerFormReset().
		Trigger("page:refresh", struct{}{}).
		TriggerSuccessNotification(fmt.Sprintf("Added: %s (%s)", template.HTMLEscapeString(e.Description), formatRupees(e.Amount.Cents))).
		Write(w)
}

// handleDeleteExpense removes an expense by ID. The client gates this behind
// a confirmation prompt; an unknown ID yields 404.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete && r.Method != http.MethodPost {
		MethodNotAllowedError("DELETE, POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	rawID := sanitizeInput(r.Form.Get("id"))
	if rawID == "" {
		BadRequestError("Missing expense ID").Write(w)
		return
	}
	id, err := parseExpenseID(rawID)
	if err != nil {
		BadRequestError("Invalid expense ID").Write(w)
		return
	}

	if !s.ledger.Delete(r.Context(), id) {
		NotFoundError("Expense not found").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerExpenseChanged(id).
		Trigger("page:refresh", struct{}{}).
		TriggerSuccessNotification("Expense deleted").
		Write(w)
}
