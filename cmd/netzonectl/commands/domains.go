package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ErlanBelekov/netzone/internal/client"
	"github.com/ErlanBelekov/netzone/internal/domain"
)

func domainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "Manage the domain portfolio",
	}
	cmd.AddCommand(domainsListCmd(), domainsAddCmd(), domainsStatusCmd(), domainsDeleteCmd())
	return cmd
}

func domainsListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains, optionally filtered by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			ds, counts, err := c.Domains(cmd.Context(), domain.DomainStatus(status))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDOMAIN\tSTATUS\tPRICE\tNAMESERVERS")
			for _, d := range ds {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%v\n", d.ID, d.DomainName, d.Status, d.Price, d.Nameservers)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			cmd.Printf("%d shown, %d total\n", len(ds), counts.All)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "pending_verification|active|sold|archived")
	return cmd
}

func domainsAddCmd() *cobra.Command {
	var in client.AddDomain
	cmd := &cobra.Command{
		Use:   "add [domain]",
		Short: "Add a domain; it starts as pending_verification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			in.DomainName = args[0]
			d, err := c.AddDomain(cmd.Context(), in)
			if err != nil {
				return err
			}
			cmd.Printf("Added %s (id %d, %s)\n", d.DomainName, d.ID, d.Status)
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.Price, "price", 0, "asking price")
	cmd.Flags().StringVar(&in.Tagline, "tagline", "", "landing page tagline")
	cmd.Flags().IntVar(&in.ThemeVariant, "theme", 1, "landing page theme (1-3)")
	cmd.Flags().StringSliceVar(&in.Nameservers, "ns", nil, "nameservers (at most two)")
	return cmd
}

func domainsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [status]",
		Short: "Change a domain's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			status := domain.DomainStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("invalid status %q", args[1])
			}

			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			d, err := c.SetDomainStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			cmd.Printf("%s is now %s\n", d.DomainName, d.Status)
			return nil
		},
	}
}

func domainsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.DeleteDomain(cmd.Context(), id); err != nil {
				return err
			}
			cmd.Printf("Deleted domain %d\n", id)
			return nil
		},
	}
}
