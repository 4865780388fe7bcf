package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"roomsplit/internal/api"
	"roomsplit/internal/cli"
)

var householdsCmd = &cobra.Command{
	Use:   "households",
	Short: "List the households you belong to",
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		if err := requireSession(env); err != nil {
			return err
		}

		households, err := env.API.Households(cmd.Context())
		if err != nil {
			return fmt.Errorf("load households: %s", api.Message(err, "request failed"))
		}
		if len(households) == 0 {
			fmt.Println("No households yet. Create one with 'roomsplit households create <name>'.")
			return nil
		}
		for _, h := range households {
			fmt.Printf("%d\t%s\n", h.ID, h.Name)
		}
		return nil
	}),
}

var householdsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a household",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		if err := requireSession(env); err != nil {
			return err
		}

		h, err := env.API.CreateHousehold(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("create household: %s", api.Message(err, "request failed"))
		}
		fmt.Printf("Created household %q (ID %d). Share the ID so others can join.\n", h.Name, h.ID)
		return nil
	}),
}

var householdsJoinCmd = &cobra.Command{
	Use:   "join <id>",
	Short: "Join an existing household by its numeric ID",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		if err := requireSession(env); err != nil {
			return err
		}

		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil || id <= 0 {
			return errors.New("invalid household id")
		}
		if err := env.API.JoinHousehold(cmd.Context(), id); err != nil {
			return fmt.Errorf("join household: %s", api.Message(err, "check the id"))
		}
		fmt.Printf("Joined household %d.\n", id)
		return nil
	}),
}

func init() {
	householdsCmd.AddCommand(householdsCreateCmd)
	householdsCmd.AddCommand(householdsJoinCmd)
	rootCmd.AddCommand(householdsCmd)
}
