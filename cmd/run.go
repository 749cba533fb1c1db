package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/unprompted/unprompted/internal/config"
	"github.com/unprompted/unprompted/internal/engine"
	"github.com/unprompted/unprompted/internal/journal"
	"github.com/unprompted/unprompted/internal/logging"
	"github.com/unprompted/unprompted/internal/match"
	"github.com/unprompted/unprompted/internal/platform"
	"github.com/unprompted/unprompted/internal/scope"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the worker poll loop in the foreground",
	Long: `Run the click worker directly: load the configuration, then poll the
desktop on the configured interval, activating target controls in windows
whose titles match the watch pattern. This is also the process the
supervise command launches and monitors.

Examples:
  unprompted run --config unprompted.yaml
  UNPROMPTED_DEBUG_MODE=1 unprompted run --config unprompted.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("config", "unprompted.yaml", "Path to the YAML configuration file")
}

func runRun(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, warnings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	overrides := cfg.ApplyEnv()

	log := logging.ForWorker(cfg.Verbose, cfg.DebugMode)
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if overrides.Verbose != nil {
		log.Debug().Bool("verbose", *overrides.Verbose).Str("source", config.EnvVerbose).Msg("environment override")
	}
	if overrides.DebugMode != nil {
		log.Debug().Bool("debug_mode", *overrides.DebugMode).Str("source", config.EnvDebugMode).Msg("environment override")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	titleRE, err := cfg.CompileTitleRegex()
	if err != nil {
		return err
	}
	targets, err := match.CompileTargets(cfg.Targets, cfg.UIA.TargetRegexes)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no usable targets configured")
	}

	desktop, err := platform.NewDesktop()
	if err != nil {
		return fmt.Errorf("desktop provider: %w", err)
	}

	opts := engine.Options{Targets: targets, Scope: cfg.Scope}
	if cfg.Scope.Enabled && !cfg.Scope.RelativeToWindow {
		screen, err := desktop.VirtualScreen()
		if err != nil {
			return fmt.Errorf("virtual screen bounds: %w", err)
		}
		region, ok, err := scope.Resolve(screen, cfg.Scope)
		if err != nil {
			return err
		}
		if ok {
			opts.GlobalScope = &region
		}
	}

	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		opts.OnActivation = func(a engine.Activation) {
			err := j.Record(journal.Entry{
				At:          a.Time,
				WindowTitle: a.WindowTitle,
				ControlText: a.ControlText,
				ControlType: a.ControlType,
				Target:      a.Target,
				Tier:        a.Tier,
				Rect:        a.Rect.String(),
			})
			if err != nil {
				log.Warn().Err(err).Msg("journal write failed")
			}
		}
	}

	log.Info().
		Str("window_title_regex", cfg.UIA.WindowTitleRegex).
		Str("targets", formatTargets(cfg.Targets)).
		Float64("interval_seconds", cfg.IntervalSeconds).
		Bool("uia_enabled", cfg.UIA.Enabled).
		Msg("watching for prompts")

	ctx := context.Background()
	if cfg.IgnoreKeyboardInterrupt {
		// The supervisor owns shutdown; a stray Ctrl-C in the worker's
		// console must not kill the loop. SIGTERM stays deliverable so a
		// supervisor stop still works without the kill escalation.
		signal.Ignore(os.Interrupt)
		log.Debug().Msg("keyboard interrupt ignored per configuration")
	} else {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	eng := engine.New(desktop, opts, log)
	disc := engine.NewDiscoverer(desktop, titleRE, log)
	loop := engine.NewLoop(eng, disc, engine.LoopOptions{
		Interval:        time.Duration(cfg.IntervalSeconds * float64(time.Second)),
		ContinueOnError: cfg.ContinueOnError,
		UIAEnabled:      cfg.UIA.Enabled,
		ScopeEnabled:    cfg.Scope.Enabled,
	}, log)
	return loop.Run(ctx)
}

// formatTargets renders the target list for the startup banner:
// "accept all" or "run".
func formatTargets(targets []string) string {
	quoted := make([]string, len(targets))
	for i, t := range targets {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
	}
}
