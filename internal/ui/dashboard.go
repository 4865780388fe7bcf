package ui

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"roomsplit/internal/api"
	"roomsplit/internal/core"
	"roomsplit/internal/log"
	"roomsplit/internal/session"
)

// pageState tracks where a page is in its fetch cycle.
type pageState int

const (
	stateIdle pageState = iota
	stateLoading
	stateLoaded
	stateErrored
)

// dashboard is the authenticated page: household selector, month/year
// scope, expense list and the monthly summary.
type dashboard struct {
	app *App

	households []core.Household
	selected   int64
	period     core.Period

	expenses []core.Expense
	summary  core.Summary

	state  pageState
	errMsg string
}

func (a *App) runDashboard(ctx context.Context) (nav, error) {
	d := &dashboard{app: a, period: core.CurrentPeriod(), state: stateIdle}

	if prefs, ok, err := a.session.Preferences(ctx); err == nil && ok {
		d.selected = prefs.HouseholdID
		if (core.Period{Month: prefs.Month, Year: prefs.Year}).Validate() == nil {
			d.period = core.Period{Month: prefs.Month, Year: prefs.Year}
		}
	}

	if err := d.loadHouseholds(ctx); err != nil {
		d.state = stateErrored
		d.errMsg = api.Message(err, "Failed to load households")
	} else {
		d.reload(ctx)
	}

	for {
		d.render()
		choice, err := a.readLine("action")
		if err != nil {
			return navQuit, err
		}

		// Each action starts with a clean error state.
		if d.state == stateErrored {
			d.state = stateLoaded
			d.errMsg = ""
		}

		switch choice {
		case "e":
			d.addExpense(ctx)
		case "h":
			d.switchHousehold(ctx)
		case "m":
			d.setMonth(ctx)
		case "y":
			d.setYear(ctx)
		case "n":
			d.createHousehold(ctx)
		case "j":
			d.joinHousehold(ctx)
		case "r":
			d.reload(ctx)
		case "o":
			if err := a.session.Clear(ctx); err != nil {
				a.logger.WarnContext(ctx, "Failed to clear session", log.FieldError, err.Error())
			}
			a.logger.InfoContext(ctx, "Signed out", log.FieldOperation, log.OpLogout)
			return navLoggedOut, nil
		case "q":
			return navQuit, nil
		}
	}
}

// loadHouseholds fetches the household list and picks the selection:
// the persisted one when still present, otherwise the first entry.
func (d *dashboard) loadHouseholds(ctx context.Context) error {
	households, err := d.app.api.Households(ctx)
	if err != nil {
		return err
	}
	d.households = households

	selectedStillPresent := false
	for _, h := range households {
		if h.ID == d.selected {
			selectedStillPresent = true
			break
		}
	}
	if !selectedStillPresent {
		d.selected = 0
		if len(households) > 0 {
			d.selected = households[0].ID
		}
	}
	return nil
}

// reload fetches expenses and summary for the current scope. The two
// calls run concurrently and both complete before the merge renders.
// On failure the page keeps whatever it showed before.
func (d *dashboard) reload(ctx context.Context) {
	if d.selected == 0 {
		d.expenses = nil
		d.summary = core.Summary{}
		d.state = stateLoaded
		return
	}

	d.state = stateLoading

	var (
		expenses []core.Expense
		summary  core.Summary
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		expenses, err = d.app.api.Expenses(ctx, d.selected, d.period)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = d.app.api.Summary(ctx, d.selected, d.period)
		return err
	})
	if err := g.Wait(); err != nil {
		d.state = stateErrored
		d.errMsg = api.Message(err, "Failed to load data")
		return
	}

	d.expenses = expenses
	d.summary = summary
	d.state = stateLoaded

	prefs := session.Preferences{HouseholdID: d.selected, Month: d.period.Month, Year: d.period.Year}
	if err := d.app.session.SetPreferences(ctx, prefs); err != nil {
		d.app.logger.WarnContext(ctx, "Failed to persist preferences", log.FieldError, err.Error())
	}
}

func (d *dashboard) render() {
	out := d.app.out
	fmt.Fprintln(out)
	RenderHeader(out, d.households, d.selected, d.period)
	if d.state == stateErrored && d.errMsg != "" {
		fmt.Fprintf(out, "! %s\n", d.errMsg)
	}
	if d.selected == 0 {
		fmt.Fprintln(out, "No households yet. Create one with [n] or join one with [j].")
	} else {
		RenderExpenses(out, d.expenses)
		RenderSummary(out, d.expenses, d.summary)
		RenderCategories(out, d.expenses)
	}
	fmt.Fprintln(out, "[e] add expense  [h] household  [m] month  [y] year  [n] new  [j] join  [r] refresh  [o] logout  [q] quit")
}

// addExpense runs the add-expense dialog. An empty amount cancels the
// dialog without a message; a malformed amount is a visible error.
func (d *dashboard) addExpense(ctx context.Context) {
	if d.selected == 0 {
		return
	}

	var f expenseForm
	var err error
	if f.amount, err = d.app.readLine("Amount"); err != nil {
		return
	}
	if f.description, err = d.app.readLine("Description"); err != nil {
		return
	}
	if f.category, err = d.app.readLine("Category"); err != nil {
		return
	}

	amount, err := f.parse()
	if err != nil {
		if err != errEmptyAmount {
			fmt.Fprintln(d.app.out, "! Invalid amount")
		}
		return
	}

	_, err = d.app.api.CreateExpense(ctx, api.NewExpense{
		HouseholdID: d.selected,
		Amount:      amount,
		Description: f.description,
		Category:    f.category,
	})
	if err != nil {
		d.state = stateErrored
		d.errMsg = api.Message(err, "Failed to add expense")
		return
	}
	d.reload(ctx)
}

func (d *dashboard) switchHousehold(ctx context.Context) {
	if len(d.households) == 0 {
		return
	}
	for _, h := range d.households {
		fmt.Fprintf(d.app.out, "  %d  %s\n", h.ID, h.Name)
	}
	input, err := d.app.readLine("Household ID")
	if err != nil || input == "" {
		return
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return
	}
	for _, h := range d.households {
		if h.ID == id {
			d.selected = id
			d.reload(ctx)
			return
		}
	}
	fmt.Fprintln(d.app.out, "! Unknown household id")
}

func (d *dashboard) setMonth(ctx context.Context) {
	input, err := d.app.readLine("Month (1-12)")
	if err != nil || input == "" {
		return
	}
	m, err := strconv.Atoi(input)
	if err != nil || (core.Period{Month: m, Year: d.period.Year}).Validate() != nil {
		fmt.Fprintln(d.app.out, "! Invalid month")
		return
	}
	d.period.Month = m
	d.reload(ctx)
}

func (d *dashboard) setYear(ctx context.Context) {
	input, err := d.app.readLine("Year")
	if err != nil || input == "" {
		return
	}
	y, err := strconv.Atoi(input)
	if err != nil || (core.Period{Month: d.period.Month, Year: y}).Validate() != nil {
		fmt.Fprintln(d.app.out, "! Invalid year")
		return
	}
	d.period.Year = y
	d.reload(ctx)
}

func (d *dashboard) createHousehold(ctx context.Context) {
	name, err := d.app.readLine("Household name (e.g., 1BHK Room)")
	if err != nil || name == "" {
		return
	}
	created, err := d.app.api.CreateHousehold(ctx, name)
	if err != nil {
		d.state = stateErrored
		d.errMsg = api.Message(err, "Failed to create household")
		return
	}
	if err := d.loadHouseholds(ctx); err == nil {
		if created.ID != 0 {
			d.selected = created.ID
		}
		d.reload(ctx)
	}
	fmt.Fprintf(d.app.out, "Created household %q (ID %d). Share the ID so others can join.\n", created.Name, created.ID)
}

func (d *dashboard) joinHousehold(ctx context.Context) {
	input, err := d.app.readLine("Household ID")
	if err != nil || input == "" {
		return
	}
	id, err := parseJoinID(input)
	if err != nil {
		fmt.Fprintln(d.app.out, "! Failed to join. Check ID.")
		return
	}
	if err := d.app.api.JoinHousehold(ctx, id); err != nil {
		fmt.Fprintln(d.app.out, "! Failed to join. Check ID.")
		return
	}
	if err := d.loadHouseholds(ctx); err == nil {
		d.selected = id
		d.reload(ctx)
	}
}
