package core

import (
	"math"
	"sort"
)

// OtherCategory is the bucket for expenses without a category.
const OtherCategory = "Other"

// MemberBalance is a server balance entry enriched with the total the
// user paid this period, derived client-side from the expense list.
type MemberBalance struct {
	Balance
	TotalPaid Amount
}

// CategoryTotal is an aggregated amount for one expense category.
type CategoryTotal struct {
	Name  string
	Value Amount
}

// MergePaidTotals attaches per-user paid totals to the server-provided
// balance list. The result corresponds 1:1, in order, with the input
// balances: users with no expenses get a zero total, and no user is
// invented or dropped. Payers that have no balance entry do not appear
// in the output; whether that case can occur with consistent server
// data is left to the server.
func MergePaidTotals(expenses []Expense, balances []Balance) []MemberBalance {
	paid := make(map[int64]Amount, len(balances))
	for _, e := range expenses {
		paid[e.PaidBy] += e.Amount
	}

	merged := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		merged = append(merged, MemberBalance{
			Balance:   b,
			TotalPaid: paid[b.User.ID],
		})
	}
	return merged
}

// CategoryTotals groups expenses by category, mapping a blank category
// to OtherCategory. Every expense lands in exactly one bucket, so the
// bucket values sum to the expense total. The result is sorted by
// descending value (name as tiebreak) for stable display; it is empty
// when there are no expenses or the total is zero.
func CategoryTotals(expenses []Expense) []CategoryTotal {
	buckets := make(map[string]Amount, 8)
	var total Amount
	for _, e := range expenses {
		name := e.Category
		if name == "" {
			name = OtherCategory
		}
		buckets[name] += e.Amount
		total += e.Amount
	}
	if len(buckets) == 0 || total == 0 {
		return nil
	}

	out := make([]CategoryTotal, 0, len(buckets))
	for name, value := range buckets {
		out = append(out, CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Percent returns the category's share of the given total as a whole
// percentage, rounded to zero decimal places. A non-positive total
// yields 0.
func (c CategoryTotal) Percent(total Amount) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(c.Value) / float64(total) * 100))
}

// TotalAmount sums the amounts of all expenses.
func TotalAmount(expenses []Expense) Amount {
	var total Amount
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
