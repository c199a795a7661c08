package core

import "testing"

func sample() []Expense {
	return []Expense{
		{ID: 1, Description: "Cement 100 bags", Amount: Money{Cents: 4500000}, Category: "materials", Date: NewDate(2024, 1, 15)},
		{ID: 2, Description: "Steel rods 2 tons", Amount: Money{Cents: 18000000}, Category: "steel", Date: NewDate(2024, 1, 14)},
		{ID: 3, Description: "Masonry work", Amount: Money{Cents: 3500000}, Category: "labor", Date: NewDate(2024, 1, 13)},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, DefaultBudget)
	if s.Total.Cents != 0 {
		t.Fatalf("total = %d", s.Total.Cents)
	}
	if s.Remaining != DefaultBudget {
		t.Fatalf("remaining = %d", s.Remaining.Cents)
	}
	if s.Percent != 0 {
		t.Fatalf("percent = %f", s.Percent)
	}
}

func TestSummarizeIdentity(t *testing.T) {
	budget := Money{Cents: 10000000}
	s := Summarize(sample(), budget)
	if s.Total.Cents != 4500000+18000000+3500000 {
		t.Fatalf("total = %d", s.Total.Cents)
	}
	// remaining + total == budget, even when over budget
	if s.Remaining.Cents+s.Total.Cents != budget.Cents {
		t.Fatalf("identity broken: %d + %d != %d", s.Remaining.Cents, s.Total.Cents, budget.Cents)
	}
	if s.Remaining.Cents >= 0 {
		t.Fatalf("expected negative remaining, got %d", s.Remaining.Cents)
	}
}

func TestSummarizeZeroBudget(t *testing.T) {
	s := Summarize(sample(), Money{})
	if s.Percent != 0 {
		t.Fatalf("zero budget must yield percent 0, got %f", s.Percent)
	}
}

func TestCategoryTotals(t *testing.T) {
	expenses := append(sample(),
		Expense{ID: 4, Description: "Mystery", Amount: Money{Cents: 100}, Category: "unknown_code"},
	)
	totals := CategoryTotals(expenses)
	// Enumeration order: materials, labor, steel, other. Zero categories absent.
	wantOrder := []string{"materials", "labor", "steel", "other"}
	if len(totals) != len(wantOrder) {
		t.Fatalf("got %d totals, want %d", len(totals), len(wantOrder))
	}
	for i, id := range wantOrder {
		if totals[i].Category.ID != id {
			t.Fatalf("totals[%d] = %s, want %s", i, totals[i].Category.ID, id)
		}
	}
	if totals[3].Total.Cents != 100 {
		t.Fatalf("unknown code should aggregate under other, got %d", totals[3].Total.Cents)
	}

	sorted := SortByTotal(totals)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Total.Cents < sorted[i].Total.Cents {
			t.Fatalf("not sorted descending at %d", i)
		}
	}
	// Original slice untouched.
	if totals[0].Category.ID != "materials" {
		t.Fatalf("SortByTotal must not mutate input")
	}
}

func TestCategoryByIDFallback(t *testing.T) {
	if got := CategoryByID("materials"); got.Name != "Materials" {
		t.Fatalf("got %+v", got)
	}
	for _, id := range []string{"unknown_code", ""} {
		if got := CategoryByID(id); got.ID != "other" {
			t.Fatalf("CategoryByID(%q) = %s, want other", id, got.ID)
		}
	}
}

func TestFilterByCategory(t *testing.T) {
	expenses := sample()
	if got := FilterByCategory(expenses, "all"); len(got) != len(expenses) {
		t.Fatalf("all filter: got %d", len(got))
	}
	if got := FilterByCategory(expenses, ""); len(got) != len(expenses) {
		t.Fatalf("empty filter: got %d", len(got))
	}
	got := FilterByCategory(expenses, "steel")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("steel filter: %+v", got)
	}
	if got := FilterByCategory(expenses, "painting"); len(got) != 0 {
		t.Fatalf("painting filter: %+v", got)
	}
}
