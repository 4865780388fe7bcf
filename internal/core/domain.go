package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

type (
	// User identifies a household member as reported by the server.
	User struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// Household is a group of users sharing expenses.
	Household struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// Expense is a single logged expense. Expenses are immutable once
	// fetched; this client creates them but never edits or deletes them.
	Expense struct {
		ID          int64     `json:"id"`
		Amount      Amount    `json:"amount"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		Date        time.Time `json:"date"`
		PaidBy      int64     `json:"paid_by"`
		PayerName   string    `json:"payer_name"`
	}

	// Balance is a server-computed net position for one user.
	// Net >= 0 means the user is owed money, Net < 0 means they owe.
	Balance struct {
		User User   `json:"user"`
		Net  Amount `json:"net"`
	}

	// Settlement is a server-suggested payment that moves the group
	// toward zero net balances. The client only renders it.
	Settlement struct {
		From   User   `json:"from"`
		To     User   `json:"to"`
		Amount Amount `json:"amount"`
	}

	// Summary is the payload of the monthly summary endpoint.
	Summary struct {
		Balances    []Balance    `json:"balances"`
		Settlements []Settlement `json:"settlements"`
	}

	// Period scopes expense and summary queries to a month of a year.
	Period struct {
		Month int
		Year  int
	}
)

var (
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidYear   = errors.New("invalid year")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrMissingUser   = errors.New("balance entry missing user id")
)

// CurrentPeriod returns the period for the local current month.
func CurrentPeriod() Period {
	now := time.Now()
	return Period{Month: int(now.Month()), Year: now.Year()}
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Year < 1970 || p.Year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func (h Household) Validate() error {
	if h.ID <= 0 {
		return errors.New("household missing id")
	}
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("household missing name")
	}
	return nil
}

func (e Expense) Validate() error {
	if math.IsNaN(float64(e.Amount)) || math.IsInf(float64(e.Amount), 0) {
		return ErrInvalidAmount
	}
	return nil
}

// Validate rejects balance entries without a user id. The paid-totals
// merge keys on user id, so an entry without one cannot be rendered.
func (b Balance) Validate() error {
	if b.User.ID <= 0 {
		return ErrMissingUser
	}
	return nil
}
