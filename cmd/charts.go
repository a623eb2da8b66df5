package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	chartsSel selectionFlags
	chartsOut string
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Write the report charts as PNG files",
	RunE:  runCharts,
}

func init() {
	chartsSel.register(chartsCmd)
	chartsCmd.Flags().StringVar(&chartsOut, "out", "", "output directory, defaults to charts.output_dir")
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	sel, err := chartsSel.selection(svc)
	if err != nil {
		return err
	}
	paths, err := svc.Charts().WriteAll(chartsOut, svc.Report(sel))
	for _, p := range paths {
		if _, werr := fmt.Fprintln(cmd.OutOrStdout(), p); werr != nil {
			return werr
		}
	}
	return err
}
