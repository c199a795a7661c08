package core

import (
	"encoding/json"
	"testing"
)

func TestDraftExpense(t *testing.T) {
	today := NewDate(2024, 2, 1)

	e, ok := Draft{Description: "Sand 10 tons", Amount: "12000", Category: "materials", Date: "2024-02-01"}.Expense(today)
	if !ok {
		t.Fatalf("expected valid draft to build")
	}
	if e.Amount.Cents != 12000*100 {
		t.Fatalf("amount cents = %d", e.Amount.Cents)
	}
	if e.Date.String() != "2024-02-01" {
		t.Fatalf("date = %s", e.Date)
	}

	// Blank date defaults to today.
	e, ok = Draft{Description: "x", Amount: "1", Category: "labor"}.Expense(today)
	if !ok || e.Date.String() != "2024-02-01" {
		t.Fatalf("blank date should default to today, got %v ok=%v", e.Date, ok)
	}

	bads := []Draft{
		{Description: "", Amount: "1", Category: "labor"},
		{Description: "x", Amount: "", Category: "labor"},
		{Description: "x", Amount: "1", Category: ""},
		{Description: "x", Amount: "abc", Category: "labor"},
		{Description: "x", Amount: "-5", Category: "labor"},
		{Description: "x", Amount: "1", Category: "labor", Date: "not-a-date"},
	}
	for i, d := range bads {
		if _, ok := d.Expense(today); ok {
			t.Fatalf("case %d expected rejection", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Description: "ok", Amount: Money{Cents: 100}, Category: "labor", Date: NewDate(2024, 1, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Expense{
		{Description: "", Amount: Money{Cents: 1}, Category: "labor"},
		{Description: "a", Amount: Money{Cents: -1}, Category: "labor"},
		{Description: "a", Amount: Money{Cents: 1}, Category: ""},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseJSONRoundTrip(t *testing.T) {
	in := Expense{ID: 42, Description: "Cement 100 bags", Amount: Money{Cents: 4500000}, Category: "materials", Date: NewDate(2024, 1, 15)}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Expense
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != in.ID || out.Description != in.Description || out.Amount != in.Amount ||
		out.Category != in.Category || out.Date.String() != in.Date.String() {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}
