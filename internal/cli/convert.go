package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jd-santos/cookdown/internal/convert"
	"github.com/jd-santos/cookdown/internal/parsers"
)

var (
	flagConvertFile   string
	flagConvertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a single recipe file",
	Long: `Convert decodes one recipe-export file and writes one markdown file
per recipe it contains (an archive yields several), plus extracted
images under the output directory.

Examples:
  cookdown convert -f recipe.crumb
  cookdown convert -f export.paprikarecipes -o ./out`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&flagConvertFile, "file", "f", "", "Recipe file to convert (required)")
	convertCmd.Flags().StringVarP(&flagConvertOutput, "output", "o", "", "Output directory")
	convertCmd.MarkFlagRequired("file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	outputDir := flagConvertOutput
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	converter := convert.New(parsers.Builtin(), logger)
	result := converter.File(flagConvertFile, outputDir)
	if result.Err != nil {
		return result.Err
	}

	for _, out := range result.Outputs {
		logger.Info("converted", "input", result.Input, "output", out)
	}
	for _, skipped := range result.Skipped {
		logger.Warn("archive entry skipped", "entry", skipped.Entry, "error", skipped.Err)
	}
	if len(result.Outputs) == 0 {
		return fmt.Errorf("no recipes converted from %s", flagConvertFile)
	}
	return nil
}
