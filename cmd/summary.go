package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/chargereport/infra/present"
	"github.com/kilianp07/chargereport/pkg/export"
)

var (
	summarySel    selectionFlags
	summaryFormat string
	summaryTable  string
	summaryWidth  int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the report for a selection",
	RunE:  runSummary,
}

func init() {
	summarySel.register(summaryCmd)
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "text", "output format: text, json or csv")
	summaryCmd.Flags().StringVar(&summaryTable, "table", "", "print a single table ("+fmt.Sprint(export.Tables)+")")
	summaryCmd.Flags().IntVar(&summaryWidth, "width", 120, "terminal width for the text layout")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	switch summaryFormat {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown format %q", summaryFormat)
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	sel, err := summarySel.selection(svc)
	if err != nil {
		return err
	}
	rep := svc.Report(sel)
	out := cmd.OutOrStdout()

	switch summaryFormat {
	case "json":
		if summaryTable == "" {
			return export.WriteJSON(out, rep)
		}
		v, err := export.Table(rep, summaryTable)
		if err != nil {
			return err
		}
		return export.WriteJSON(out, v)
	case "csv":
		table := summaryTable
		if table == "" {
			table = "summary"
		}
		return export.WriteCSV(out, rep, table)
	}
	if summaryTable != "" {
		header, rows, err := export.Tabulate(rep, summaryTable)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, present.Table(summaryTable, header, rows))
		return err
	}
	return present.Render(out, rep, summaryWidth)
}
