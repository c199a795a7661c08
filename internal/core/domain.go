package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar day. The time-of-day component is always zero.
	Date struct {
		time.Time
	}

	// Money is a currency amount in cents. Aggregates such as the
	// remaining budget may go negative; stored expense amounts do not.
	Money struct {
		Cents int64
	}

	// Expense is one recorded construction cost item. Category holds the
	// raw category code as entered; resolution to display metadata happens
	// at read time (see CategoryByID).
	Expense struct {
		ID          int64  `json:"id"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Date        Date   `json:"date"`
	}

	// Draft is unvalidated form input for creating or editing an expense.
	Draft struct {
		Description string
		Amount      string
		Category    string
		Date        string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses an ISO YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Expense builds a validated expense from form input. Missing description,
// amount, or category rejects the draft as a whole; a blank date defaults to
// today. The bool result is false on rejection, never an error: incomplete
// form submissions are a silent no-op.
func (d Draft) Expense(today Date) (Expense, bool) {
	desc := strings.TrimSpace(d.Description)
	if desc == "" || strings.TrimSpace(d.Amount) == "" || strings.TrimSpace(d.Category) == "" {
		return Expense{}, false
	}
	cents, err := ParseDecimalToCents(d.Amount)
	if err != nil {
		return Expense{}, false
	}
	date := today
	if strings.TrimSpace(d.Date) != "" {
		parsed, err := ParseDate(d.Date)
		if err != nil {
			return Expense{}, false
		}
		date = parsed
	}
	return Expense{
		Description: desc,
		Amount:      Money{Cents: cents},
		Category:    strings.TrimSpace(d.Category),
		Date:        date,
	}, true
}
