package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ErlanBelekov/netzone/internal/client"
)

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			rec, err := client.NewHTTP(serverURL, "").Login(cmd.Context(), args[0], password)
			if err != nil {
				if client.IsStatus(err, http.StatusUnauthorized) {
					return fmt.Errorf("invalid email or password")
				}
				return err
			}
			if err := slot.Save(cmd.Context(), rec); err != nil {
				return err
			}
			cmd.Printf("Logged in as %s (%s)\n", rec.User.Email, rec.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c, err := authed(cmd.Context()); err == nil {
				// The server keeps no session state; a failed call changes nothing.
				_ = c.Logout(cmd.Context())
			}
			if err := slot.Clear(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			u, err := c.Profile(cmd.Context())
			if err != nil {
				if client.IsStatus(err, http.StatusUnauthorized) {
					_ = slot.Clear(cmd.Context())
					return errNotLoggedIn
				}
				return err
			}
			cmd.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
}
