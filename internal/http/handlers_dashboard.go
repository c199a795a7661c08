package http

import (
	"log/slog"
	"net/http"

	"cantiere/internal/core"
)

// handleDashboard renders the main dashboard page: budget card, top spending
// categories, and the most recent entries.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	expenses := s.ledger.Expenses()
	budget := s.ledger.Budget()
	summary := core.Summarize(expenses, budget)

	// Enumeration order, not spend order; only Reports sorts by total.
	top := core.CategoryTotals(expenses)
	if len(top) > 3 {
		top = top[:3]
	}

	recent := expenses
	if len(recent) > 3 {
		recent = recent[:3]
	}

	data := struct {
		Summary       summaryView
		TopCategories []categoryTotalView
		Recent        []expenseView
		Count         int
	}{
		Summary:       newSummaryView(summary, budget),
		TopCategories: categoryTotalViews(top, summary.Total, budget),
		Recent:        expenseViews(recent),
		Count:         len(expenses),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
