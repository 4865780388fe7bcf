package commands

import (
	"context"
	"errors"

	"roomsplit/internal/cli"
	"roomsplit/internal/core"
)

// resolveScope picks the household and period for a one-shot data
// command: explicit flags win, then the persisted preference, then the
// first household the server returns.
func resolveScope(ctx context.Context, env *cli.Env, householdID int64, month, year int) (int64, core.Period, error) {
	period := core.CurrentPeriod()
	if month != 0 {
		period.Month = month
	}
	if year != 0 {
		period.Year = year
	}
	if err := period.Validate(); err != nil {
		return 0, period, err
	}

	if householdID == 0 {
		if prefs, ok, err := env.Session.Preferences(ctx); err == nil && ok {
			householdID = prefs.HouseholdID
		}
	}
	if householdID == 0 {
		households, err := env.API.Households(ctx)
		if err != nil {
			return 0, period, err
		}
		if len(households) == 0 {
			return 0, period, errors.New("no households yet, run 'roomsplit households create <name>' first")
		}
		householdID = households[0].ID
	}

	return householdID, period, nil
}
