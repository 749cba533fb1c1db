package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/unprompted/unprompted/internal/output"
	"github.com/unprompted/unprompted/internal/server"
	"github.com/unprompted/unprompted/internal/supervisor"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running supervisor's control server",
	Long: `Ask the control server for the current clicker state.

Examples:
  unprompted status
  unprompted status --addr 127.0.0.1:9000 --format json`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().String("addr", server.DefaultAddr, "Control server address")
}

func runStatus(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s/status", addr))
	if err != nil {
		return fmt.Errorf("control server unreachable at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	var st supervisor.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return fmt.Errorf("decode status response: %w", err)
	}
	return output.Print(st)
}
