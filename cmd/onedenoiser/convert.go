package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shiinamiyuki/OneDenoiser/internal/color"
	"github.com/shiinamiyuki/OneDenoiser/internal/pipeline"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-encode an image through the linear pipeline without denoising",
		Args:  cobra.NoArgs,
		RunE:  runConvert,
	}
	cmd.Flags().StringP("input", "i", "", "Input image")
	cmd.Flags().StringP("output", "o", "", "Output image")
	cmd.Flags().String("assume", "", "Transfer function of the input samples: linear, srgb (default: from storage format)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	assumeStr, _ := cmd.Flags().GetString("assume")
	threads, _ := cmd.Flags().GetInt("threads")

	opts := pipeline.ConvertOptions{Input: inputPath, Output: outputPath, Workers: threads}
	if assumeStr != "" {
		assume, err := color.ParseTransfer(assumeStr)
		if err != nil {
			return err
		}
		opts.Assume = &assume
	}

	img, written, err := pipeline.Convert(opts)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %dx%d (%d channels)\n", img.Width, img.Height, img.Channels)
	printOutput(cmd, outputPath, written)
	return nil
}
