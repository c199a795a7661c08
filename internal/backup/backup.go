// Package backup serializes the full tracker state to a JSON document for
// download and validates uploaded documents for restore. Parsing and
// committing are separate steps: a parsed document is staged until the
// user confirms the destructive replace.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cantiere/internal/core"
)

var (
	// ErrFormat reports input that is not parsable JSON at all.
	ErrFormat = errors.New("not a valid JSON document")
	// ErrSchema reports parsable input missing the expected expenses sequence.
	ErrSchema = errors.New("document has no expenses list")
)

// Document is the export/import snapshot. TotalExpense and RemainingBudget
// are included for human inspection of the file; import recomputes
// everything from the expense list and ignores them.
type Document struct {
	Expenses        []core.Expense `json:"expenses"`
	Budget          core.Money     `json:"budget"`
	TotalExpense    core.Money     `json:"totalExpense"`
	RemainingBudget core.Money     `json:"remainingBudget"`
	ExportDate      time.Time      `json:"exportDate"`
}

// Export builds the downloadable document from current state.
func Export(expenses []core.Expense, budget core.Money, now time.Time) ([]byte, error) {
	s := core.Summarize(expenses, budget)
	doc := Document{
		Expenses:        expenses,
		Budget:          budget,
		TotalExpense:    s.Total,
		RemainingBudget: s.Remaining,
		ExportDate:      now.UTC(),
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export document: %w", err)
	}
	return b, nil
}

// Filename returns the download name with the current date embedded.
func Filename(now time.Time) string {
	return "construction-expenses-" + now.Format("2006-01-02") + ".json"
}

// Parse validates an uploaded document. Unparsable input yields ErrFormat;
// valid JSON that is not an object, or whose expenses field is missing,
// null, or not a sequence, yields ErrSchema. Neither touches any state.
// Records are taken verbatim with no per-record validation: import is a
// full restore, not a merge.
func Parse(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		if json.Valid(data) {
			return nil, ErrSchema
		}
		return nil, ErrFormat
	}
	rawExpenses, ok := probe["expenses"]
	if !ok || string(rawExpenses) == "null" {
		return nil, ErrSchema
	}
	var expenses []core.Expense
	if err := json.Unmarshal(rawExpenses, &expenses); err != nil {
		return nil, ErrSchema
	}

	doc := Document{Expenses: expenses}
	if rawBudget, ok := probe["budget"]; ok {
		// A malformed budget field does not fail the import; the budget
		// is optional and simply left unset.
		_ = json.Unmarshal(rawBudget, &doc.Budget)
	}
	return &doc, nil
}

// HasBudget reports whether the document carries a budget worth applying.
// A zero or absent budget leaves the current value in place.
func (d *Document) HasBudget() bool {
	return d.Budget.Cents > 0
}
