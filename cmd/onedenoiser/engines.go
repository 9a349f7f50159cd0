package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiinamiyuki/OneDenoiser/internal/denoise"
)

func newEnginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the denoisers known to this build",
		Args:  cobra.NoArgs,
		RunE:  runEngines,
	}
}

func runEngines(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, e := range denoise.Engines() {
		if e.Available {
			fmt.Fprintf(out, "%-12s available\n", e.Name)
		} else {
			fmt.Fprintf(out, "%-12s unavailable: %s\n", e.Name, e.Reason)
		}
	}
	return nil
}
