package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ErlanBelekov/netzone/internal/export"
)

func analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Marketplace analytics",
	}
	cmd.AddCommand(analyticsExportCmd())
	return cmd
}

func analyticsExportCmd() *cobra.Command {
	var (
		rangeDays int
		out       string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the analytics report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch rangeDays {
			case 7, 30, 90:
			default:
				return fmt.Errorf("--range must be 7, 30 or 90")
			}
			c, err := authed(cmd.Context())
			if err != nil {
				return err
			}
			b, err := c.ExportAnalytics(cmd.Context(), rangeDays)
			if err != nil {
				return err
			}
			if out == "" {
				out = export.AnalyticsFilename(time.Now())
			}
			return writeOutput(cmd, out, b)
		},
	}
	cmd.Flags().IntVar(&rangeDays, "range", 30, "days to include: 7, 30 or 90")
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file (default analytics-YYYY-MM-DD.json), "-" for stdout`)
	return cmd
}
