package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jd-santos/cookdown/internal/parsers"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported recipe file formats",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Supported recipe file formats:")
		for _, ext := range parsers.Builtin().Extensions() {
			fmt.Printf("  .%s\n", ext)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
