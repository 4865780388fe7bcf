package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"roomsplit/internal/api"
	"roomsplit/internal/cli"
	"roomsplit/internal/core"
	"roomsplit/internal/ui"
)

var (
	summaryHousehold int64
	summaryMonth     int
	summaryYear      int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show balances, settlements and category totals for a month",
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		if err := requireSession(env); err != nil {
			return err
		}

		householdID, period, err := resolveScope(cmd.Context(), env, summaryHousehold, summaryMonth, summaryYear)
		if err != nil {
			return err
		}

		var (
			expenses []core.Expense
			summary  core.Summary
		)
		var g errgroup.Group
		g.Go(func() error {
			var err error
			expenses, err = env.API.Expenses(cmd.Context(), householdID, period)
			return err
		})
		g.Go(func() error {
			var err error
			summary, err = env.API.Summary(cmd.Context(), householdID, period)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("load data: %s", api.Message(err, "request failed"))
		}

		fmt.Printf("Household %d, %02d/%d\n", householdID, period.Month, period.Year)
		ui.RenderSummary(os.Stdout, expenses, summary)
		ui.RenderCategories(os.Stdout, expenses)
		return nil
	}),
}

func init() {
	summaryCmd.Flags().Int64Var(&summaryHousehold, "household", 0, "household ID (defaults to the last used one)")
	summaryCmd.Flags().IntVar(&summaryMonth, "month", 0, "month 1-12 (defaults to the current month)")
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "year (defaults to the current year)")

	rootCmd.AddCommand(summaryCmd)
}
