package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ErlanBelekov/netzone/internal/domain"
	"github.com/ErlanBelekov/netzone/internal/export"
)

func inquiriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inquiries",
		Short: "Review buyer inquiries",
	}
	cmd.AddCommand(inquiriesListCmd(), inquiriesExportCmd())
	return cmd
}

func inquiriesListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inquiries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			inqs, counts, err := c.Inquiries(cmd.Context(), domain.InquiryStatus(status))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDOMAIN\tFROM\tBUDGET\tSTATUS")
			for _, i := range inqs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s <%s>\t%s\t%s\n",
					i.ID, i.CreatedAt.Format("2006-01-02"), i.DomainName, i.Name, i.Email, i.Budget, i.Status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			cmd.Printf("%d shown, %d total\n", len(inqs), counts.All)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "new|replied|negotiating|closed")
	return cmd
}

func inquiriesExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download every inquiry as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			b, err := c.ExportInquiries(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, b)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", export.InquiriesFilename, `output file, "-" for stdout`)
	return cmd
}
