// Package supervisor launches the worker poll loop as a monitored child
// process and exposes on/off control and live status behind a single
// lock.
package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/unprompted/unprompted/internal/logging"
)

// State is the supervisor's view of the worker process.
type State int

const (
	StateIdle State = iota
	StateActive
	StateError
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateError:
		return "ERROR"
	default:
		return "IDLE"
	}
}

// Status is a point-in-time snapshot of the worker process.
type Status struct {
	State        string `json:"state"          yaml:"state"`
	PID          int    `json:"pid,omitempty"  yaml:"pid,omitempty"`
	LastExitCode *int   `json:"last_exit_code,omitempty" yaml:"last_exit_code,omitempty"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrAlreadyRunning is returned when Start is called while a worker is
// still alive.
var ErrAlreadyRunning = errors.New("worker already running")

// Options configures a Supervisor.
type Options struct {
	// WorkerPath optionally overrides worker executable resolution.
	WorkerPath string

	// ConfigPath is the worker configuration file, validated at Start.
	ConfigPath string

	// LogPath is the append-only worker output log. Defaults to
	// worker.log next to the config file.
	LogPath string

	// DiagLogPath is the supervisor's own diagnostic log, written only
	// when Debug is set. Defaults to supervisor.log next to the config.
	DiagLogPath string

	Debug         bool
	WorkerDebug   bool
	WorkerVerbose bool

	// StopTimeout bounds the graceful-terminate wait before escalating
	// to a kill. Defaults to 5s.
	StopTimeout time.Duration
}

// Supervisor owns the worker child process. All state transitions happen
// under one mutex; the lock is never held across a blocking wait.
type Supervisor struct {
	opts     Options
	log      zerolog.Logger
	diagFile *os.File

	mu       sync.Mutex
	state    State
	startErr string
	cmd      *exec.Cmd
	done     chan struct{}
	logFile  *os.File
	lastExit *int

	// newCommand builds the worker command; replaced in tests.
	newCommand func(workerPath string) *exec.Cmd
}

// New constructs a Supervisor. Construction failures are also appended to
// startup_error.log so packaged runs without a console still leave a
// trace.
func New(opts Options) (*Supervisor, error) {
	s, err := build(opts)
	if err != nil {
		writeStartupError(err)
		return nil, err
	}
	return s, nil
}

func build(opts Options) (*Supervisor, error) {
	if opts.ConfigPath == "" {
		return nil, errors.New("config path is required")
	}
	abs, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	opts.ConfigPath = abs

	if opts.LogPath == "" {
		opts.LogPath = filepath.Join(filepath.Dir(abs), "worker.log")
	}
	if opts.DiagLogPath == "" {
		opts.DiagLogPath = filepath.Join(filepath.Dir(abs), "supervisor.log")
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 5 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(opts.LogPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	s := &Supervisor{opts: opts, log: zerolog.Nop()}
	s.newCommand = s.workerCommand

	if opts.Debug {
		f, err := os.OpenFile(opts.DiagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open diagnostic log: %w", err)
		}
		s.diagFile = f
		s.log = logging.NewWithWriter(logging.Config{
			Level:      zerolog.DebugLevel,
			Format:     "json",
			TimeFormat: time.RFC3339,
		}, f)
	}

	s.log.Debug().
		Str("config", opts.ConfigPath).
		Str("worker_path", opts.WorkerPath).
		Bool("worker_debug", opts.WorkerDebug).
		Bool("worker_verbose", opts.WorkerVerbose).
		Msg("supervisor initialized")
	return s, nil
}

// Running reports whether the worker process is alive.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

// Status returns a snapshot of the current state.
func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{State: s.state.String(), Error: s.startErr}
	if s.cmd != nil && s.cmd.Process != nil {
		st.PID = s.cmd.Process.Pid
	}
	if s.lastExit != nil {
		code := *s.lastExit
		st.LastExitCode = &code
	}
	return st
}

// Start launches the worker. Refused while one is already running; a
// failed start transitions to Error with the reason recorded, and is
// never retried silently.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil {
		s.log.Debug().Msg("start requested but worker already running")
		return ErrAlreadyRunning
	}

	worker, err := s.resolveWorker()
	if err != nil {
		return s.failStart(err)
	}
	if _, err := os.Stat(s.opts.ConfigPath); err != nil {
		return s.failStart(fmt.Errorf("config file missing: %s", s.opts.ConfigPath))
	}

	logFile, err := os.OpenFile(s.opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return s.failStart(fmt.Errorf("open worker log: %w", err))
	}
	writeMarker(logFile, fmt.Sprintf("=== start %s ===", timestamp()))

	cmd := s.newCommand(worker)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	hideConsole(cmd)

	s.log.Debug().Str("worker", worker).Strs("args", cmd.Args).Msg("starting worker")
	if err := cmd.Start(); err != nil {
		logFile.Close()
		return s.failStart(fmt.Errorf("spawn worker: %w", err))
	}

	done := make(chan struct{})
	s.cmd = cmd
	s.done = done
	s.logFile = logFile
	s.lastExit = nil
	s.state = StateActive
	s.startErr = ""
	s.log.Debug().Int("pid", cmd.Process.Pid).Msg("worker started")

	go s.reap(cmd, done)
	return nil
}

// failStart records a refused start. Caller holds the lock.
func (s *Supervisor) failStart(err error) error {
	s.state = StateError
	s.startErr = err.Error()
	s.log.Debug().Err(err).Msg("start failed")
	return err
}

// reap waits for the child and, if it exited on its own, performs the
// Active → Idle transition with the recorded exit code. If Stop already
// claimed the process, only the done signal remains to deliver.
func (s *Supervisor) reap(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()
	code := exitCode(cmd, err)

	s.mu.Lock()
	if s.cmd == cmd {
		s.cmd = nil
		s.lastExit = &code
		s.state = StateIdle
		if s.logFile != nil {
			writeMarker(s.logFile, fmt.Sprintf("=== exited %s code=%d ===", timestamp(), code))
			s.logFile.Close()
			s.logFile = nil
		}
		s.log.Debug().Int("code", code).Msg("worker exited")
	}
	s.mu.Unlock()
	close(done)
}

// Stop terminates the worker: graceful request first, then a bounded
// wait, then a kill. Idempotent when nothing is running. The lock is
// released around the wait.
func (s *Supervisor) Stop() error {
	s.mu.Lock()
	cmd := s.cmd
	done := s.done
	logFile := s.logFile
	if cmd == nil {
		// A refused start leaves Error state behind; an explicit stop
		// acknowledges it.
		if s.state == StateError {
			s.state = StateIdle
			s.startErr = ""
		}
		s.mu.Unlock()
		return nil
	}
	s.cmd = nil
	s.logFile = nil
	s.state = StateIdle
	s.mu.Unlock()

	pid := cmd.Process.Pid
	if err := terminate(cmd.Process); err != nil {
		_ = cmd.Process.Kill()
	}
	select {
	case <-done:
		s.log.Debug().Int("pid", pid).Msg("worker terminated gracefully")
	case <-time.After(s.opts.StopTimeout):
		_ = cmd.Process.Kill()
		<-done
		s.log.Debug().Int("pid", pid).Msg("worker force-killed")
	}

	code := exitCode(cmd, nil)
	s.mu.Lock()
	s.lastExit = &code
	if logFile != nil {
		writeMarker(logFile, fmt.Sprintf("=== stop %s ===", timestamp()))
		logFile.Close()
	}
	s.mu.Unlock()
	return nil
}

// Quit stops the worker and releases the supervisor's own resources.
func (s *Supervisor) Quit() {
	_ = s.Stop()
	if s.diagFile != nil {
		s.diagFile.Close()
		s.diagFile = nil
	}
}

// resolveWorker picks the executable to launch: an explicit override, the
// currently-running binary, then a PATH search. Fatal when none resolves.
func (s *Supervisor) resolveWorker() (string, error) {
	if s.opts.WorkerPath != "" {
		abs, err := filepath.Abs(s.opts.WorkerPath)
		if err != nil {
			return "", fmt.Errorf("resolve worker path: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return "", fmt.Errorf("worker executable not found: %s", abs)
		}
		return abs, nil
	}
	if exe, err := os.Executable(); err == nil {
		return exe, nil
	}
	if path, err := exec.LookPath("unprompted"); err == nil {
		return path, nil
	}
	return "", errors.New("could not resolve a worker executable; pass --worker-path")
}

// workerCommand builds the real worker invocation with the merged child
// environment.
func (s *Supervisor) workerCommand(workerPath string) *exec.Cmd {
	cmd := exec.Command(workerPath, "run", "--config", s.opts.ConfigPath)
	cmd.Dir = filepath.Dir(s.opts.ConfigPath)

	env := os.Environ()
	// Keep child console output UTF-8-clean on minimal environments so
	// labels with non-ASCII hint glyphs survive into the log.
	if os.Getenv("LANG") == "" {
		env = append(env, "LANG=C.UTF-8")
	}
	if s.opts.WorkerDebug {
		env = append(env, "UNPROMPTED_DEBUG_MODE=1")
	}
	if s.opts.WorkerVerbose {
		env = append(env, "UNPROMPTED_VERBOSE=1")
	}
	cmd.Env = env
	return cmd
}

func exitCode(cmd *exec.Cmd, waitErr error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	if waitErr != nil {
		return -1
	}
	return 0
}

func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func writeMarker(f *os.File, marker string) {
	fmt.Fprintf(f, "\n%s\n", marker)
	_ = f.Sync()
}

// writeStartupError appends construction failures to startup_error.log
// next to the executable (or the working directory as a last resort).
func writeStartupError(cause error) {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	path := filepath.Join(dir, "startup_error.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	cwd, _ := os.Getwd()
	exe, _ := os.Executable()
	fmt.Fprintf(f, "\n=== startup error %s ===\n", timestamp())
	fmt.Fprintf(f, "cwd: %s\n", cwd)
	fmt.Fprintf(f, "executable: %s\n", exe)
	fmt.Fprintf(f, "argv: %s\n", strings.Join(os.Args, " "))
	fmt.Fprintf(f, "error: %v\n", cause)
	fmt.Fprintf(f, "%s\n", debug.Stack())
}
