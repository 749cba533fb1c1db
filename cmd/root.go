package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unprompted/unprompted/internal/output"
	"github.com/unprompted/unprompted/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "unprompted",
	Short: "Auto-confirm prompt dialogs in watched desktop windows",
	Long: `unprompted watches desktop windows whose titles match a configured
pattern and activates confirmation controls (buttons like "Accept all" or
"Run") on a polling loop, so unattended sessions keep moving without a
human clicking through the prompts.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}
