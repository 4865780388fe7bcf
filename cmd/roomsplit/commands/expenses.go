package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roomsplit/internal/api"
	"roomsplit/internal/cli"
	"roomsplit/internal/core"
	"roomsplit/internal/ui"
)

var (
	expensesHousehold int64
	expensesMonth     int
	expensesYear      int

	addHousehold int64
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "List expenses for a household and month",
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		if err := requireSession(env); err != nil {
			return err
		}

		householdID, period, err := resolveScope(cmd.Context(), env, expensesHousehold, expensesMonth, expensesYear)
		if err != nil {
			return err
		}

		expenses, err := env.API.Expenses(cmd.Context(), householdID, period)
		if err != nil {
			return fmt.Errorf("load expenses: %s", api.Message(err, "request failed"))
		}
		ui.RenderExpenses(os.Stdout, expenses)
		return nil
	}),
}

var addCmd = &cobra.Command{
	Use:   "add <amount> [description] [category]",
	Short: "Log a new expense",
	Args:  cobra.RangeArgs(1, 3),
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		if err := requireSession(env); err != nil {
			return err
		}

		amount, err := core.ParseAmount(args[0])
		if err != nil {
			return errors.New("invalid amount")
		}
		description := ""
		category := ""
		if len(args) > 1 {
			description = args[1]
		}
		if len(args) > 2 {
			category = args[2]
		}

		householdID, _, err := resolveScope(cmd.Context(), env, addHousehold, 0, 0)
		if err != nil {
			return err
		}

		if _, err := env.API.CreateExpense(cmd.Context(), api.NewExpense{
			HouseholdID: householdID,
			Amount:      amount,
			Description: description,
			Category:    category,
		}); err != nil {
			return fmt.Errorf("add expense: %s", api.Message(err, "request failed"))
		}

		fmt.Printf("Added expense of %s to household %d.\n", amount.Display(), householdID)
		return nil
	}),
}

func init() {
	expensesCmd.Flags().Int64Var(&expensesHousehold, "household", 0, "household ID (defaults to the last used one)")
	expensesCmd.Flags().IntVar(&expensesMonth, "month", 0, "month 1-12 (defaults to the current month)")
	expensesCmd.Flags().IntVar(&expensesYear, "year", 0, "year (defaults to the current year)")

	addCmd.Flags().Int64Var(&addHousehold, "household", 0, "household ID (defaults to the last used one)")

	rootCmd.AddCommand(expensesCmd)
	rootCmd.AddCommand(addCmd)
}
