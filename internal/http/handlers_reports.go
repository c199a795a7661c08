package http

import (
	"log/slog"
	"net/http"

	"cantiere/internal/core"
)

// handleReportsPage renders the reports page: financial summary, per-category
// breakdown sorted by descending total, and a few derived stats. The daily
// average uses a fixed 30-day window.
func (s *Server) handleReportsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	expenses := s.ledger.Expenses()
	budget := s.ledger.Budget()
	summary := core.Summarize(expenses, budget)
	totals := core.SortByTotal(core.CategoryTotals(expenses))

	data := struct {
		Summary        summaryView
		Breakdown      []categoryTotalView
		Count          int
		CategoriesUsed int
		AvgPerDay      string
	}{
		Summary:        newSummaryView(summary, budget),
		Breakdown:      categoryTotalViews(totals, summary.Total, budget),
		Count:          len(expenses),
		CategoriesUsed: len(totals),
		AvgPerDay:      formatRupees(summary.Total.Cents / 30),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "reports_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Reports template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
