package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"roomsplit/internal/api"
	"roomsplit/internal/cli"
)

var (
	loginEmail    string
	loginPassword string

	registerName     string
	registerEmail    string
	registerPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		email := loginEmail
		password := loginPassword
		var err error
		if email == "" {
			if email, err = promptLine("Email"); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptPassword("Password"); err != nil {
				return err
			}
		}

		creds, err := env.API.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %s", api.Message(err, "request failed"))
		}
		if err := env.Session.SetToken(cmd.Context(), creds.Token); err != nil {
			return err
		}

		fmt.Println("Logged in.")
		return nil
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session token",
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		name := registerName
		email := registerEmail
		password := registerPassword
		var err error
		if name == "" {
			if name, err = promptLine("Name"); err != nil {
				return err
			}
		}
		if email == "" {
			if email, err = promptLine("Email"); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptPassword("Password"); err != nil {
				return err
			}
		}

		creds, err := env.API.Register(cmd.Context(), name, email, password)
		if err != nil {
			return fmt.Errorf("registration failed: %s", api.Message(err, "request failed"))
		}
		if err := env.Session.SetToken(cmd.Context(), creds.Token); err != nil {
			return err
		}

		fmt.Println("Account created.")
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: withEnv(func(env *cli.Env, cmd *cobra.Command, args []string) error {
		if err := env.Session.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	}),
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (prompted if omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted if omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "display name (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (prompted if omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
}
