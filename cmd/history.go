package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/unprompted/unprompted/internal/config"
	"github.com/unprompted/unprompted/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent activations from the journal",
	Long: `Print the most recent recorded activations, newest first. Requires
journal_path to be set in the configuration file.

Examples:
  unprompted history --config unprompted.yaml
  unprompted history --config unprompted.yaml --limit 50`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("config", "unprompted.yaml", "Path to the YAML configuration file")
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.JournalPath == "" {
		return fmt.Errorf("journal_path is not set in %s", configPath)
	}

	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no activations recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tWINDOW\tCONTROL\tTYPE\tTARGET\tTIER")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.At.Format(time.RFC3339), e.WindowTitle, e.ControlText, e.ControlType, e.Target, e.Tier)
	}
	return w.Flush()
}
