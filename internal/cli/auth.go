// auth.go implements the login, register, logout and whoami commands.
package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tutorterm/tutor/internal/api"
	"github.com/tutorterm/tutor/internal/state"
)

var (
	registerEmail       string
	registerDisplayName string
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and store an access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		resp, err := client.Login(cmd.Context(), api.Credentials{
			Username: args[0],
			Password: password,
		})
		if err != nil {
			return err
		}

		if err := saveAuth(resp); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", resp.User.Username)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		resp, err := client.Register(cmd.Context(), api.RegisterRequest{
			Username:    args[0],
			Password:    password,
			Email:       registerEmail,
			DisplayName: registerDisplayName,
		})
		if err != nil {
			return err
		}

		if err := saveAuth(resp); err != nil {
			return err
		}
		fmt.Printf("Registered and logged in as %s\n", resp.User.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := state.Clear(); err != nil {
			return fmt.Errorf("cli: clearing state: %w", err)
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			return err
		}

		user, err := client.Me(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Username: %s\n", user.Username)
		if user.DisplayName != "" {
			fmt.Printf("Name:     %s\n", user.DisplayName)
		}
		if user.Email != "" {
			fmt.Printf("Email:    %s\n", user.Email)
		}
		if user.LastLoginAt != nil {
			fmt.Printf("Last login: %s\n", user.LastLoginAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

// saveAuth persists the token and user identity from an auth response.
func saveAuth(resp *api.AuthResponse) error {
	st := &state.State{
		AccessToken: resp.AccessToken,
		UserID:      resp.User.ID,
		Username:    resp.User.Username,
	}
	if err := state.Save(st); err != nil {
		return fmt.Errorf("cli: saving state: %w", err)
	}
	return nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("cli: reading password: %w", err)
	}
	return string(b), nil
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address for the new account")
	registerCmd.Flags().StringVar(&registerDisplayName, "name", "", "Display name for the new account")
}
