package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "List the vehicles and the date span of the dataset",
	RunE:  runVehicles,
}

func init() {
	rootCmd.AddCommand(vehiclesCmd)
}

func runVehicles(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	defer closeService(svc)

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "# %s\n", svc.DefaultSelection().Range); err != nil {
		return err
	}
	for _, v := range svc.Vehicles() {
		if _, err := fmt.Fprintln(out, v); err != nil {
			return err
		}
	}
	return nil
}
