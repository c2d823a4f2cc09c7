package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jd-santos/cookdown/internal/batch"
	"github.com/jd-santos/cookdown/internal/parsers"
)

var (
	flagBatchInput      string
	flagBatchOutput     string
	flagBatchRecursive  bool
	flagBatchParallel   int
	flagBatchExtensions []string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every recipe file in a directory",
	Long: `Batch scans the input directory for supported recipe exports and
converts them across a bounded worker pool. A single file's failure is
reported and the run continues.

Examples:
  cookdown batch -i ./exports -o ./vault/recipes
  cookdown batch -i ./exports -r -p 8
  cookdown batch -i ./exports -e crumb`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&flagBatchInput, "input", "i", "", "Input directory")
	batchCmd.Flags().StringVarP(&flagBatchOutput, "output", "o", "", "Output directory")
	batchCmd.Flags().BoolVarP(&flagBatchRecursive, "recursive", "r", false, "Search input directory recursively")
	batchCmd.Flags().IntVarP(&flagBatchParallel, "parallel", "p", 0, "Maximum parallel conversions")
	batchCmd.Flags().StringSliceVarP(&flagBatchExtensions, "extensions", "e", nil, "Only convert these extensions")
}

func runBatch(cmd *cobra.Command, args []string) error {
	opts := batch.Options{
		InputDir:    flagBatchInput,
		OutputDir:   flagBatchOutput,
		Recursive:   flagBatchRecursive || cfg.Batch.Recursive,
		Parallelism: flagBatchParallel,
		Extensions:  flagBatchExtensions,
	}
	if opts.InputDir == "" {
		opts.InputDir = cfg.Paths.InputDir
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.Paths.OutputDir
	}
	if opts.Parallelism == 0 {
		opts.Parallelism = cfg.Batch.Parallelism
	}

	engine := batch.NewEngine(parsers.Builtin(), logger)
	report, err := engine.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	for _, file := range report.Files {
		if file.Err != nil {
			logger.Error("failed", "input", file.Input, "error", file.Err)
			continue
		}
		logger.Info("converted", "input", file.Input, "recipes", len(file.Outputs))
	}

	logger.Info("batch complete",
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"output", opts.OutputDir)

	if report.Attempted == 0 {
		return fmt.Errorf("no supported recipe files found in %s", opts.InputDir)
	}
	return nil
}
