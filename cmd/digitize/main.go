// Package main provides the command-line interface to digitizer session files.
package main

import (
	"fmt"
	"os"

	"data-digitizer/internal/calibrate"
	"data-digitizer/internal/export"
	"data-digitizer/internal/project"
	"data-digitizer/internal/testplot"
	"data-digitizer/internal/version"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "digitize",
		Short: "Extract data from digitized plot sessions",
		Long: `digitize measures the points of a saved digitizer session and writes
them as tab-delimited text or an Excel workbook.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newMeasureCmd(), newTestplotCmd(), newVersionCmd())
	return rootCmd
}

func newMeasureCmd() *cobra.Command {
	var outputPath, xlsxPath string

	cmd := &cobra.Command{
		Use:   "measure SESSION" + project.Extension,
		Short: "Calibrate a session and export its data points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, args[0], outputPath, xlsxPath)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write an Excel workbook")
	return cmd
}

func runMeasure(cmd *cobra.Command, sessionPath, outputPath, xlsxPath string) error {
	f, err := project.Load(sessionPath)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	store := f.Store()
	axes, err := f.Axes(store)
	if err != nil {
		return err
	}
	calibrate.Measure(store, axes)
	pts := store.Points()

	if outputPath != "" {
		if err := export.SaveText(outputPath, pts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if err := export.WriteText(cmd.OutOrStdout(), pts); err != nil {
		return err
	}

	if xlsxPath != "" {
		if err := export.SaveXLSX(xlsxPath, pts); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(), export.Summarize(pts))
	return nil
}

func newTestplotCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "testplot KIND",
		Short: "Render a synthetic plot (linear, xlog, ylog or loglog)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := testplot.ParseKind(args[0])
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = "test-" + k.String() + ".png"
			}
			spec, err := testplot.Generate(k, outputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: x in [%g, %g], y in [%g, %g]\n",
				outputPath, spec.XMin, spec.XMax, spec.YMin, spec.YMax)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output image path (default: test-KIND.png)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "digitize", version.String())
		},
	}
}
