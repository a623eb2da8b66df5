package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/chargereport/app"
	"github.com/kilianp07/chargereport/core/model"
	"github.com/kilianp07/chargereport/core/report"
)

// selectionFlags are the report controls shared by the printing commands.
type selectionFlags struct {
	start    string
	end      string
	vehicles []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first day (YYYY-MM-DD), defaults to the earliest session")
	cmd.Flags().StringVar(&f.end, "end", "", "last day (YYYY-MM-DD), defaults to the latest session")
	cmd.Flags().StringSliceVar(&f.vehicles, "vehicle", nil, "vehicle to include, repeatable; defaults to all")
}

func (f *selectionFlags) selection(svc *app.Service) (model.Selection, error) {
	return report.ParseSelection(f.start, f.end, f.vehicles, svc.Location(), svc.DefaultSelection())
}
