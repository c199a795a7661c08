package core

import "sort"

// DefaultBudget is the total allocated funds used until the user sets one.
var DefaultBudget = Money{Cents: 500000 * 100}

// Summary holds the derived budget figures. Values are recomputed from the
// full collection on every call; nothing here is cached.
type Summary struct {
	Total     Money
	Remaining Money
	Percent   float64 // budget utilization, 0 when budget is zero
}

// CategoryTotal is an amount aggregated under one category.
type CategoryTotal struct {
	Category Category
	Total    Money
}

// Summarize derives the dashboard figures from the unfiltered collection.
// Remaining may be negative; Percent is defined as 0 for a zero budget so
// callers never see NaN or Inf.
func Summarize(expenses []Expense, budget Money) Summary {
	var total int64
	for _, e := range expenses {
		total += e.Amount.Cents
	}
	s := Summary{
		Total:     Money{Cents: total},
		Remaining: Money{Cents: budget.Cents - total},
	}
	if budget.Cents > 0 {
		s.Percent = float64(total) / float64(budget.Cents) * 100
	}
	return s
}

// CategoryTotals sums amounts per category in enumeration order, dropping
// categories with a zero total. Expenses carrying an unrecognized code are
// counted under the fallback category.
func CategoryTotals(expenses []Expense) []CategoryTotal {
	sums := make(map[string]int64, len(Categories))
	for _, e := range expenses {
		sums[CategoryByID(e.Category).ID] += e.Amount.Cents
	}
	var out []CategoryTotal
	for _, c := range Categories {
		if sums[c.ID] > 0 {
			out = append(out, CategoryTotal{Category: c, Total: Money{Cents: sums[c.ID]}})
		}
	}
	return out
}

// SortByTotal returns a copy ordered by descending total, for the Reports
// breakdown. The stable sort keeps enumeration order between equal totals.
func SortByTotal(totals []CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, len(totals))
	copy(out, totals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	return out
}

// FilterByCategory returns the expenses matching the given category code.
// The sentinel "all" (or an empty code) returns the full collection.
func FilterByCategory(expenses []Expense, id string) []Expense {
	if id == "" || id == "all" {
		return expenses
	}
	var out []Expense
	for _, e := range expenses {
		if e.Category == id {
			out = append(out, e)
		}
	}
	return out
}
