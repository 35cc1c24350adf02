// Package shell runs toolchain commands as child processes.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/creack/pty"
	"go.trai.ch/same-cargo/internal/adapters/detector"
	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/same-cargo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
	mode   atomic.Int32
}

// NewExecutor creates a new Executor. The output mode is detected from the
// current terminal until SetMode overrides it.
func NewExecutor(logger ports.Logger) *Executor {
	e := &Executor{logger: logger}
	e.SetMode(detector.DetectEnvironment())
	return e
}

// SetMode selects how child output is attached. ModeAuto re-runs detection.
func (e *Executor) SetMode(mode detector.OutputMode) {
	if mode == detector.ModeAuto {
		mode = detector.DetectEnvironment()
	}
	e.mode.Store(int32(mode)) //nolint:gosec // small enum
}

// Mode returns the output mode used for new processes.
func (e *Executor) Mode() detector.OutputMode {
	return detector.OutputMode(e.mode.Load())
}

// Execute runs the command and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) error {
	if cmd == nil || cmd.Name == "" {
		return nil
	}

	proc, err := e.prepare(ctx, cmd)
	if err != nil {
		return err
	}

	if e.Mode() == detector.ModePTY {
		err = runPTY(proc, stdout)
	} else {
		err = runPipe(proc, stdout, stderr)
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	err = zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	return zerr.With(err, "project", cmd.Project)
}

func (e *Executor) prepare(ctx context.Context, cmd *domain.Command) (*exec.Cmd, error) {
	env := resolveEnvironment(os.Environ(), cmd.Environment)

	executable := cmd.Name
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	proc := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // toolchain from workspace config
	if len(proc.Args) > 0 {
		proc.Args[0] = cmd.Name
	}
	proc.Env = env

	if cmd.Dir != "" {
		info, err := os.Stat(cmd.Dir)
		if err != nil || !info.IsDir() {
			e.logger.Warn("working directory " + cmd.Dir + " is not available, using current directory")
		} else {
			proc.Dir = cmd.Dir
		}
	}

	return proc, nil
}

func runPipe(proc *exec.Cmd, stdout, stderr io.Writer) error {
	proc.Stdout = stdout
	proc.Stderr = stderr
	if err := proc.Start(); err != nil {
		return zerr.Wrap(err, "failed to start command")
	}
	return proc.Wait()
}

// runPTY attaches the process to a pseudo-terminal. The terminal merges both
// streams, so everything is copied to stdout.
func runPTY(proc *exec.Cmd, stdout io.Writer) error {
	ptmx, err := pty.Start(proc)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		_, _ = io.Copy(stdout, ptmx)
	}()

	err = proc.Wait()
	<-ioDone
	return err
}

// resolveEnvironment overlays the command overrides onto the process
// environment. The result is sorted by key.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the PATH of the given environment,
// which may differ from the PATH of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
