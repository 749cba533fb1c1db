package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unprompted/unprompted/internal/logging"
	"github.com/unprompted/unprompted/internal/server"
	"github.com/unprompted/unprompted/internal/supervisor"
)

var superviseCmd = &cobra.Command{
	Use:   "supervise",
	Short: "Supervise the worker and expose the loopback control surface",
	Long: `Launch the supervisor: it owns the worker process (start, stop, exit
detection) and serves the control endpoints on the loopback interface:

  GET  /status    current state, worker PID and last exit code
  POST /start     launch the worker
  POST /stop      terminate the worker
  GET  /icon.png  state indicator image (green idle, red active)

Examples:
  unprompted supervise --config unprompted.yaml
  unprompted supervise --config unprompted.yaml --start --worker-verbose
  unprompted supervise --config unprompted.yaml --addr 127.0.0.1:9000`,
	RunE: runSupervise,
}

func init() {
	rootCmd.AddCommand(superviseCmd)
	superviseCmd.Flags().String("config", "unprompted.yaml", "Path to the worker YAML configuration file")
	superviseCmd.Flags().String("worker-path", "", "Worker executable (default: this binary)")
	superviseCmd.Flags().String("addr", server.DefaultAddr, "Control server listen address")
	superviseCmd.Flags().Bool("start", false, "Start the worker immediately")
	superviseCmd.Flags().Bool("debug", false, "Write supervisor diagnostics to supervisor.log")
	superviseCmd.Flags().Bool("worker-debug", false, "Force debug_mode in the worker")
	superviseCmd.Flags().Bool("worker-verbose", false, "Force verbose in the worker")
}

func runSupervise(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	workerPath, _ := cmd.Flags().GetString("worker-path")
	addr, _ := cmd.Flags().GetString("addr")
	startNow, _ := cmd.Flags().GetBool("start")
	debug, _ := cmd.Flags().GetBool("debug")
	workerDebug, _ := cmd.Flags().GetBool("worker-debug")
	workerVerbose, _ := cmd.Flags().GetBool("worker-verbose")

	sup, err := supervisor.New(supervisor.Options{
		WorkerPath:    workerPath,
		ConfigPath:    configPath,
		Debug:         debug,
		WorkerDebug:   workerDebug,
		WorkerVerbose: workerVerbose,
	})
	if err != nil {
		return err
	}
	defer sup.Quit()

	log := logging.New(logging.Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	})
	if startNow {
		if err := sup.Start(); err != nil {
			log.Warn().Err(err).Msg("initial start failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(sup, log).ListenAndServe(ctx, addr)
}
