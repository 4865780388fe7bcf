package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/term"

	"roomsplit/internal/core"
)

// errEmptyAmount blocks expense submission without a visible message,
// mirroring the disabled-submit behavior of the original form.
var errEmptyAmount = errors.New("empty amount")

// loginForm is the sign-in draft.
type loginForm struct {
	email    string
	password string
}

// registerForm is the account creation draft.
type registerForm struct {
	name     string
	email    string
	password string
}

// expenseForm is the transient add-expense draft, held only while the
// dialog is open and discarded on submit or cancel.
type expenseForm struct {
	amount      string
	description string
	category    string
}

// parse validates the draft for submission. An empty amount silently
// blocks the form; anything else malformed is a visible error.
func (f expenseForm) parse() (core.Amount, error) {
	if strings.TrimSpace(f.amount) == "" {
		return 0, errEmptyAmount
	}
	return core.ParseAmount(f.amount)
}

// parseJoinID validates a join-by-id input.
func parseJoinID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid household id")
	}
	return id, nil
}

// readLine prompts for one line of input and returns it trimmed.
func (a *App) readLine(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword prompts without echoing when stdin is a terminal,
// falling back to a plain line read for pipes and tests.
func (a *App) readPassword(label string) (string, error) {
	if a.stdinFile != nil && term.IsTerminal(int(a.stdinFile.Fd())) {
		fmt.Fprintf(a.out, "%s: ", label)
		raw, err := term.ReadPassword(int(a.stdinFile.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return a.readLine(label)
}
