package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shiinamiyuki/OneDenoiser/internal/imageio"
)

func newIdentifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identify [file]",
		Short: "Inspect image dimensions and storage format",
		Args:  cobra.ExactArgs(1),
		RunE:  runIdentify,
	}
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	info, err := imageio.GetInfo(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Fprintf(out, "Channels:   %d\n", info.Channels)
	fmt.Fprintf(out, "Format:     %s\n", info.Format)
	fmt.Fprintf(out, "Transfer:   %s\n", info.Transfer)
	fmt.Fprintf(out, "File size:  %s\n", humanize.Bytes(uint64(info.FileSize)))
	if imageio.Create(path) == nil {
		fmt.Fprintln(out, "Writable:   no (read-only format)")
	}
	return nil
}
