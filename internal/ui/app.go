// Package ui implements the interactive terminal surface: an
// unauthenticated landing page and the household dashboard. Each page
// owns its form drafts and orchestrates gateway calls; aggregation over
// fetched data lives in core.
package ui

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"roomsplit/internal/api"
	"roomsplit/internal/log"
	"roomsplit/internal/session"
)

// nav tells the app loop where to go after a page returns.
type nav int

const (
	navStay nav = iota
	navLoggedIn
	navLoggedOut
	navQuit
)

// App wires the pages to the gateway and the session store.
type App struct {
	api     *api.Client
	session *session.Store
	logger  *log.Logger

	in  *bufio.Reader
	out io.Writer

	// stdinFile is set when input is the process stdin, enabling the
	// no-echo password prompt on terminals.
	stdinFile *os.File
}

// New builds the app reading from stdin and writing to stdout.
func New(client *api.Client, store *session.Store, logger *log.Logger) *App {
	a := NewWithIO(client, store, logger, os.Stdin, os.Stdout)
	a.stdinFile = os.Stdin
	return a
}

// NewWithIO builds the app against explicit streams. Used by tests.
func NewWithIO(client *api.Client, store *session.Store, logger *log.Logger, in io.Reader, out io.Writer) *App {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &App{
		api:     client,
		session: store,
		logger:  logger.WithComponent(log.ComponentUI),
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Run is the route gate: it re-evaluates session presence on every
// navigation and renders either the auth landing or the dashboard.
func (a *App) Run(ctx context.Context) error {
	for {
		var (
			next nav
			err  error
		)
		if _, ok := a.session.Token(); ok {
			next, err = a.runDashboard(ctx)
		} else {
			next, err = a.runAuth(ctx)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if next == navQuit {
			return nil
		}
	}
}
