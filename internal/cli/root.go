// Package cli implements the cookdown commands using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jd-santos/cookdown/internal/config"
)

var (
	flagLogLevel string

	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cookdown",
	Short: "Convert recipe-export files to markdown",
	Long: `cookdown converts proprietary recipe exports (Crouton .crumb,
Paprika .paprikarecipe and .paprikarecipes) into markdown files with
YAML frontmatter and extracted images.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			level = log.InfoLevel
		}
		logger.SetLevel(level)
	},
}

func init() {
	cfg = config.NewConfig()
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
