package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"roomsplit/internal/cli"
	"roomsplit/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roomsplit",
	Short: "roomsplit - shared household expense tracker",
	Long: `roomsplit is a terminal client for a shared-household expense tracker.
Sign in, create or join a household, log expenses and see who owes whom
at the end of the month.

Run without arguments for the interactive app, or use the subcommands
for one-shot scripted access.`,
	SilenceUsage: true,
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		app := ui.New(env.API, env.Session, env.Logger)
		return app.Run(cmd.Context())
	}),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// withEnv bootstraps the client environment around a command handler.
func withEnv(fn func(*cli.Env, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := cli.Bootstrap()
		if err != nil {
			return err
		}
		defer env.Close()
		return fn(env, cmd, args)
	}
}

// requireSession is the route gate for one-shot commands: without a
// stored token the protected surface is refused.
func requireSession(env *cli.Env) error {
	if _, ok := env.Session.Token(); !ok {
		return errors.New("not logged in, run 'roomsplit login' first")
	}
	return nil
}
