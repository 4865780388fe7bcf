package ui

import (
	"context"
	"fmt"

	"github.com/common-nighthawk/go-figure"

	"roomsplit/internal/api"
	"roomsplit/internal/log"
)

// runAuth renders the landing page and loops until the user signs in,
// creates an account, or quits. Errors from a submission are shown
// inline and the page stays put; the error resets on the next attempt.
func (a *App) runAuth(ctx context.Context) (nav, error) {
	fmt.Fprint(a.out, figure.NewFigure("roomsplit", "", true).String())
	fmt.Fprintln(a.out, "Track & split shared household expenses.")
	fmt.Fprintln(a.out)

	for {
		fmt.Fprintln(a.out, "[1] Sign in  [2] Create account  [q] Quit")
		choice, err := a.readLine("choice")
		if err != nil {
			return navQuit, err
		}

		switch choice {
		case "1":
			if err := a.login(ctx); err != nil {
				fmt.Fprintf(a.out, "! %s\n\n", api.Message(err, "Login failed"))
				continue
			}
			return navLoggedIn, nil
		case "2":
			if err := a.register(ctx); err != nil {
				fmt.Fprintf(a.out, "! %s\n\n", api.Message(err, "Registration failed"))
				continue
			}
			return navLoggedIn, nil
		case "q", "Q":
			return navQuit, nil
		}
	}
}

func (a *App) login(ctx context.Context) error {
	var f loginForm
	var err error
	if f.email, err = a.readLine("Email"); err != nil {
		return err
	}
	if f.password, err = a.readPassword("Password"); err != nil {
		return err
	}

	creds, err := a.api.Login(ctx, f.email, f.password)
	if err != nil {
		return err
	}
	if err := a.session.SetToken(ctx, creds.Token); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "Signed in", log.FieldOperation, log.OpLogin)
	return nil
}

func (a *App) register(ctx context.Context) error {
	var f registerForm
	var err error
	if f.name, err = a.readLine("Name"); err != nil {
		return err
	}
	if f.email, err = a.readLine("Email"); err != nil {
		return err
	}
	if f.password, err = a.readPassword("Password"); err != nil {
		return err
	}

	creds, err := a.api.Register(ctx, f.name, f.email, f.password)
	if err != nil {
		return err
	}
	if err := a.session.SetToken(ctx, creds.Token); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "Account created", log.FieldOperation, log.OpRegister)
	return nil
}
