// Package ledger owns the process-wide tracker state: the ordered expense
// collection and the budget scalar. Every mutation re-serializes the
// affected entry to the kv store, so a restart picks up where the user
// left off.
package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"cantiere/internal/core"
	"cantiere/internal/kv"
)

// Persisted entry keys. The expense collection is one JSON array; the
// budget is a decimal string with an independent lifecycle.
const (
	expensesKey = "constructionExpenses"
	budgetKey   = "constructionBudget"
)

// Ledger is the single writer over tracker state. All methods are safe for
// concurrent use, though in practice mutations arrive one user action at a
// time.
type Ledger struct {
	mu       sync.Mutex
	store    kv.Store
	expenses []core.Expense
	budget   core.Money
	seed     bool

	now func() time.Time
}

func New(store kv.Store) *Ledger {
	return &Ledger{store: store, budget: core.DefaultBudget, seed: true, now: time.Now}
}

// DisableSeed turns off first-run sample seeding: with no persisted
// collection, Load starts empty instead.
func (l *Ledger) DisableSeed() {
	l.seed = false
}

// SampleExpenses is the bundled dataset seeded on first run, when no
// persisted collection exists yet.
func SampleExpenses() []core.Expense {
	return []core.Expense{
		{ID: 1, Description: "Cement 100 bags", Amount: core.Money{Cents: 4500000}, Category: "materials", Date: core.NewDate(2024, 1, 15)},
		{ID: 2, Description: "Steel rods 2 tons", Amount: core.Money{Cents: 18000000}, Category: "steel", Date: core.NewDate(2024, 1, 14)},
		{ID: 3, Description: "Masonry work - Week 1", Amount: core.Money{Cents: 3500000}, Category: "labor", Date: core.NewDate(2024, 1, 13)},
		{ID: 4, Description: "Electrical wiring", Amount: core.Money{Cents: 2800000}, Category: "electrical", Date: core.NewDate(2024, 1, 12)},
		{ID: 5, Description: "Bricks 5000 pieces", Amount: core.Money{Cents: 7500000}, Category: "brick", Date: core.NewDate(2024, 1, 11)},
		{ID: 6, Description: "Plumbing pipes & fittings", Amount: core.Money{Cents: 4200000}, Category: "plumbing", Date: core.NewDate(2024, 1, 10)},
	}
}

// Load initializes state from the kv store. An absent or empty expense
// collection seeds the sample dataset; an absent budget falls back to the
// default. Corrupt persisted JSON is treated as empty rather than fatal.
func (l *Ledger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, ok, err := l.store.Get(ctx, expensesKey)
	if err != nil {
		return err
	}
	var expenses []core.Expense
	if ok {
		if err := json.Unmarshal([]byte(raw), &expenses); err != nil {
			slog.WarnContext(ctx, "Persisted expenses unreadable, starting empty", "error", err)
			expenses = nil
		}
	}
	if len(expenses) == 0 && l.seed {
		expenses = SampleExpenses()
		l.expenses = expenses
		if err := l.persistExpenses(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to persist sample dataset", "error", err)
		}
		slog.InfoContext(ctx, "Seeded sample dataset", "count", len(expenses))
	} else {
		l.expenses = expenses
	}

	l.budget = core.DefaultBudget
	if rawBudget, ok, err := l.store.Get(ctx, budgetKey); err != nil {
		return err
	} else if ok {
		if cents, perr := core.ParseDecimalToCents(rawBudget); perr == nil {
			l.budget = core.Money{Cents: cents}
		} else {
			slog.WarnContext(ctx, "Persisted budget unreadable, using default", "value", rawBudget)
		}
	}

	slog.InfoContext(ctx, "Ledger loaded", "expenses", len(l.expenses), "budget_cents", l.budget.Cents)
	return nil
}

// Create validates the draft and prepends the new record. An incomplete
// draft is a silent no-op: the bool result is false and the collection is
// untouched. IDs derive from the current time in milliseconds, bumped past
// any collision.
func (l *Ledger) Create(ctx context.Context, d core.Draft) (core.Expense, bool) {
	e, ok := d.Expense(core.Today())
	if !ok {
		slog.DebugContext(ctx, "Rejected incomplete expense draft")
		return core.Expense{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.now().UnixMilli()
	for l.indexOf(id) >= 0 {
		id++
	}
	e.ID = id
	l.expenses = append([]core.Expense{e}, l.expenses...)
	if err := l.persistExpenses(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expenses", "error", err, "operation", "create")
	}

	slog.InfoContext(ctx, "Expense created",
		"id", e.ID, "description", e.Description, "amount_cents", e.Amount.Cents, "category", e.Category)
	return e, true
}

// Update replaces the record with the given ID in place, keeping its ID and
// positional slot. Returns false without touching state when the ID is
// unknown or the draft is incomplete.
func (l *Ledger) Update(ctx context.Context, id int64, d core.Draft) bool {
	e, ok := d.Expense(core.Today())
	if !ok {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	e.ID = id
	l.expenses[i] = e
	if err := l.persistExpenses(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expenses", "error", err, "operation", "update")
	}

	slog.InfoContext(ctx, "Expense updated", "id", id, "description", e.Description)
	return true
}

// Delete removes the record with the given ID. Confirmation is the caller's
// concern; deleting an absent ID is a no-op.
func (l *Ledger) Delete(ctx context.Context, id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
	if err := l.persistExpenses(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expenses", "error", err, "operation", "delete")
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return true
}

// Get returns the record with the given ID.
func (l *Ledger) Get(id int64) (core.Expense, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexOf(id); i >= 0 {
		return l.expenses[i], true
	}
	return core.Expense{}, false
}

// Expenses returns a snapshot copy of the full collection, newest first.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// List returns a snapshot filtered by category code; "all" or an empty
// code returns everything.
func (l *Ledger) List(filter string) []core.Expense {
	return core.FilterByCategory(l.Expenses(), filter)
}

// Budget returns the current budget scalar.
func (l *Ledger) Budget() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.budget
}

// SetBudget commits a staged budget edit. Non-numeric or negative input is
// discarded and the prior value retained; the bool reports acceptance.
func (l *Ledger) SetBudget(ctx context.Context, raw string) bool {
	cents, err := core.ParseDecimalToCents(raw)
	if err != nil {
		slog.DebugContext(ctx, "Rejected budget edit", "value", raw)
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.budget = core.Money{Cents: cents}
	if err := l.persistBudget(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to persist budget", "error", err)
	}

	slog.InfoContext(ctx, "Budget updated", "budget_cents", cents)
	return true
}

// Summary recomputes the derived budget figures from current state.
func (l *Ledger) Summary() core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.Summarize(l.expenses, l.budget)
}

// CategoryTotals recomputes per-category sums from current state.
func (l *Ledger) CategoryTotals() []core.CategoryTotal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.CategoryTotals(l.expenses)
}

// ReplaceAll overwrites the collection verbatim with an imported document's
// expenses. The budget is replaced only when the document supplied one.
// Per-record validation is deliberately skipped: import is a full restore,
// not a merge.
func (l *Ledger) ReplaceAll(ctx context.Context, expenses []core.Expense, budget core.Money, hasBudget bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.expenses = append([]core.Expense(nil), expenses...)
	if err := l.persistExpenses(ctx); err != nil {
		return err
	}
	if hasBudget {
		l.budget = budget
		if err := l.persistBudget(ctx); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "State replaced from import", "expenses", len(expenses), "budget_replaced", hasBudget)
	return nil
}

// Clear resets the collection to empty and the budget to its default, and
// removes both persisted entries entirely. A later cold start therefore
// reseeds the sample dataset; "cleared" and "never used" are
// indistinguishable.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.expenses = nil
	l.budget = core.DefaultBudget
	if err := l.store.Delete(ctx, expensesKey); err != nil {
		return err
	}
	if err := l.store.Delete(ctx, budgetKey); err != nil {
		return err
	}

	slog.InfoContext(ctx, "All data cleared")
	return nil
}

func (l *Ledger) indexOf(id int64) int {
	for i, e := range l.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) snapshot() []core.Expense {
	out := make([]core.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

func (l *Ledger) persistExpenses(ctx context.Context) error {
	b, err := json.Marshal(l.expenses)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, expensesKey, string(b))
}

func (l *Ledger) persistBudget(ctx context.Context) error {
	return l.store.Set(ctx, budgetKey, strconv.FormatFloat(l.budget.Units(), 'f', -1, 64))
}
