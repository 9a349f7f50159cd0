package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shiinamiyuki/OneDenoiser/internal/pipeline"
)

var errNoDenoiser = errors.New("denoiser not specified (use --use <name>)")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onedenoiser --use <name> -i <input> -o <output>",
		Short: "Easy-to-use wrapper for open source denoisers",
		Long: `Loads a noisy rendered image, optionally with albedo and normal buffers,
runs it through the selected denoiser and writes the result.

8-bit and 16-bit formats are treated as sRGB encoded and converted to linear
light before denoising; .pfm files are read and written as linear float data.`,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRun:   setupLogging,
		RunE:               runDenoise,
	}

	cmd.Flags().String("use", "", "Which denoiser to use (list them with the engines command)")
	cmd.Flags().StringP("input", "i", "", "Noisy image")
	cmd.Flags().StringP("albedo", "a", "", "Albedo")
	cmd.Flags().StringP("normal", "n", "", "Normal")
	cmd.Flags().StringP("output", "o", "", "Denoised image")
	cmd.PersistentFlags().Int("threads", 0, "Goroutines used for color conversion (0 = all CPUs)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newEnginesCmd(), newIdentifyCmd(), newConvertCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
}

func runDenoise(cmd *cobra.Command, args []string) error {
	engine, _ := cmd.Flags().GetString("use")
	inputPath, _ := cmd.Flags().GetString("input")
	albedoPath, _ := cmd.Flags().GetString("albedo")
	normalPath, _ := cmd.Flags().GetString("normal")
	outputPath, _ := cmd.Flags().GetString("output")
	threads, _ := cmd.Flags().GetInt("threads")

	if engine == "" {
		cmd.Help()
		return errNoDenoiser
	}
	if inputPath == "" {
		return errors.New("input not specified")
	}
	if outputPath == "" {
		return errors.New("output not specified")
	}

	result, err := pipeline.Run(pipeline.Options{
		Engine:  engine,
		Input:   inputPath,
		Albedo:  albedoPath,
		Normal:  normalPath,
		Output:  outputPath,
		Workers: threads,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Denoised %dx%d (%d channels) with %s\n", result.Width, result.Height, result.Channels, result.Engine)
	fmt.Fprintf(out, "Input:  %s\n", inputPath)
	printOutput(cmd, outputPath, result.Written)
	return nil
}

// printOutput reports where the result went, or that the output format was
// not recognised and nothing was written.
func printOutput(cmd *cobra.Command, path string, written bool) {
	out := cmd.OutOrStdout()
	if !written {
		fmt.Fprintf(out, "Output: %s (not written: unsupported format)\n", path)
		return
	}
	if st, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Output: %s (%s)\n", path, humanize.Bytes(uint64(st.Size())))
		return
	}
	fmt.Fprintf(out, "Output: %s\n", path)
}
