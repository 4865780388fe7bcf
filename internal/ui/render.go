package ui

import (
	"fmt"
	"io"

	"roomsplit/internal/core"
)

func RenderHeader(w io.Writer, households []core.Household, selected int64, p core.Period) {
	name := ""
	for _, h := range households {
		if h.ID == selected {
			name = h.Name
			break
		}
	}
	if name != "" {
		fmt.Fprintf(w, "== %s (ID %d)  %02d/%d ==\n", name, selected, p.Month, p.Year)
		return
	}
	fmt.Fprintf(w, "== Roomsplit  %02d/%d ==\n", p.Month, p.Year)
}

func RenderExpenses(w io.Writer, expenses []core.Expense) {
	fmt.Fprintln(w, "Expenses:")
	if len(expenses) == 0 {
		fmt.Fprintln(w, "  No expenses yet.")
		return
	}
	for _, e := range expenses {
		desc := e.Description
		if desc == "" {
			desc = "Expense"
		}
		// Row display fallback; the aggregation bucket for blank
		// categories is core.OtherCategory, not this.
		cat := e.Category
		if cat == "" {
			cat = "General"
		}
		fmt.Fprintf(w, "  %s  %-20s %-12s paid by %-10s %10s\n",
			e.Date.Format("2006-01-02"), desc, cat, e.PayerName, e.Amount.Display())
	}
	fmt.Fprintf(w, "  Total: %s\n", core.TotalAmount(expenses).Display())
}

// RenderSummary prints the merged balance list (server nets plus
// client-derived paid totals) and the suggested settlements.
func RenderSummary(w io.Writer, expenses []core.Expense, s core.Summary) {
	fmt.Fprintln(w, "Monthly summary:")
	merged := core.MergePaidTotals(expenses, s.Balances)
	if len(merged) == 0 {
		fmt.Fprintln(w, "  No balances for this month.")
	}
	for _, b := range merged {
		sign := "+"
		if b.Net < 0 {
			sign = "-"
		}
		fmt.Fprintf(w, "  %-12s %s %s  (paid %s)\n",
			b.User.Name, sign, b.Net.Abs().Display(), b.TotalPaid.Display())
	}

	fmt.Fprintln(w, "Settle up:")
	if len(s.Settlements) == 0 {
		fmt.Fprintln(w, "  All settled.")
		return
	}
	for _, st := range s.Settlements {
		fmt.Fprintf(w, "  %s -> %s  %s\n", st.From.Name, st.To.Name, st.Amount.Display())
	}
}

// RenderCategories prints the per-category totals with their share of
// the month, or a placeholder when there is nothing to chart.
func RenderCategories(w io.Writer, expenses []core.Expense) {
	fmt.Fprintln(w, "By category:")
	totals := core.CategoryTotals(expenses)
	if len(totals) == 0 {
		fmt.Fprintln(w, "  No data for this month.")
		return
	}
	var sum core.Amount
	for _, c := range totals {
		sum += c.Value
	}
	for _, c := range totals {
		fmt.Fprintf(w, "  %-12s %10s  %3d%%\n", c.Name, c.Value.Display(), c.Percent(sum))
	}
}
