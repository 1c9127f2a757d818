// Package commands holds the netzonectl command tree.
package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ErlanBelekov/netzone/internal/client"
	"github.com/ErlanBelekov/netzone/internal/session"
)

var (
	home      string
	serverURL string

	slot *session.FileSlot
)

var errNotLoggedIn = errors.New("not logged in; run `netzonectl login` first")

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "netzonectl",
		Short:        "Manage a Netzone marketplace from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".netzone")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			slot = session.NewFileSlot(home)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.netzone)")
	root.PersistentFlags().StringVar(&serverURL, "server", envOr("NETZONE_SERVER", "http://localhost:8080"), "Netzone API base URL")

	root.AddCommand(loginCmd(), logoutCmd(), whoamiCmd(), domainsCmd(), inquiriesCmd(), analyticsCmd())
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// authed returns a client carrying the stored session token.
func authed(ctx context.Context) (*client.HTTPClient, error) {
	rec, err := slot.Load(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Token == "" {
		return nil, errNotLoggedIn
	}
	return client.NewHTTP(serverURL, rec.Token), nil
}

// writeOutput writes b to path, or to stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, b []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	cmd.Printf("Wrote %s (%d bytes)\n", path, len(b))
	return nil
}
