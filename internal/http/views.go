package http

import (
	"strconv"

	"cantiere/internal/core"
)

// expenseView is the template-facing shape of a single record, with the
// category code resolved to its display metadata and amounts pre-formatted.
type expenseView struct {
	ID            int64
	Description   string
	Amount        string
	AmountRaw     string // decimal units, for prefilling the edit form
	CategoryID    string
	CategoryName  string
	CategoryIcon  string
	CategoryClass string
	Date          string
}

func newExpenseView(e core.Expense) expenseView {
	c := core.CategoryByID(e.Category)
	return expenseView{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        formatRupees(e.Amount.Cents),
		AmountRaw:     strconv.FormatFloat(e.Amount.Units(), 'f', -1, 64),
		CategoryID:    e.Category,
		CategoryName:  c.Name,
		CategoryIcon:  c.Icon,
		CategoryClass: c.Color,
		Date:          e.Date.String(),
	}
}

func expenseViews(expenses []core.Expense) []expenseView {
	out := make([]expenseView, len(expenses))
	for i, e := range expenses {
		out[i] = newExpenseView(e)
	}
	return out
}

// summaryView carries the budget card figures. BarWidth is clamped to 100
// so the utilization bar never overflows its track.
type summaryView struct {
	Budget       string
	BudgetRaw    string
	Total        string
	Remaining    string
	PercentLabel string
	BarWidth     int
	BarClass     string
	OverBudget   bool
}

func newSummaryView(s core.Summary, budget core.Money) summaryView {
	v := summaryView{
		Budget:       formatRupees(budget.Cents),
		BudgetRaw:    strconv.FormatFloat(budget.Units(), 'f', -1, 64),
		Total:        formatRupees(s.Total.Cents),
		Remaining:    formatRupees(s.Remaining.Cents),
		PercentLabel: formatPercent(s.Percent),
		BarWidth:     int(s.Percent),
		OverBudget:   s.Remaining.Cents < 0,
	}
	if v.BarWidth > 100 {
		v.BarWidth = 100
	}
	switch {
	case s.Percent >= 90:
		v.BarClass = "bar--danger"
	case s.Percent >= 70:
		v.BarClass = "bar--warning"
	default:
		v.BarClass = "bar--ok"
	}
	return v
}

// categoryTotalView is one row of a per-category breakdown.
type categoryTotalView struct {
	Name          string
	Icon          string
	Class         string
	Total         string
	PctOfExpenses string
	PctOfBudget   string
	BarWidth      int
}

func categoryTotalViews(totals []core.CategoryTotal, grandTotal, budget core.Money) []categoryTotalView {
	out := make([]categoryTotalView, len(totals))
	for i, t := range totals {
		v := categoryTotalView{
			Name:  t.Category.Name,
			Icon:  t.Category.Icon,
			Class: t.Category.Color,
			Total: formatRupees(t.Total.Cents),
		}
		if grandTotal.Cents > 0 {
			pct := float64(t.Total.Cents) / float64(grandTotal.Cents) * 100
			v.PctOfExpenses = formatPercent(pct)
			v.BarWidth = int(pct)
		} else {
			v.PctOfExpenses = formatPercent(0)
		}
		if budget.Cents > 0 {
			v.PctOfBudget = formatPercent(float64(t.Total.Cents) / float64(budget.Cents) * 100)
		} else {
			v.PctOfBudget = formatPercent(0)
		}
		out[i] = v
	}
	return out
}

// categoryOption is a selectable category in forms and filter pills.
type categoryOption struct {
	ID       string
	Name     string
	Icon     string
	Selected bool
}

func categoryOptions(selected string) []categoryOption {
	out := make([]categoryOption, len(core.Categories))
	for i, c := range core.Categories {
		out[i] = categoryOption{ID: c.ID, Name: c.Name, Icon: c.Icon, Selected: c.ID == selected}
	}
	return out
}
