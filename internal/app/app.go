// Package app implements the application layer for same-cargo.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/same-cargo/internal/adapters/detector"
	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/same-cargo/internal/core/ports"
	"go.trai.ch/same-cargo/internal/engine/cargo"
	"go.trai.ch/same-cargo/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader    ports.WorkspaceLoader
	executor  ports.Executor
	logger    ports.Logger
	tracer    ports.Tracer
	generator ports.ProjectGenerator
	stdout    io.Writer
	stderr    io.Writer
	workDir   string
}

// New creates a new App instance.
func New(
	loader ports.WorkspaceLoader,
	executor ports.Executor,
	log ports.Logger,
	tracer ports.Tracer,
	generator ports.ProjectGenerator,
) *App {
	return &App{
		loader:    loader,
		executor:  executor,
		logger:    log,
		tracer:    tracer,
		generator: generator,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// WithOutput redirects toolchain output and printed commands.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithWorkingDir sets the directory used to discover the workspace.
// It defaults to the process working directory.
func (a *App) WithWorkingDir(dir string) *App {
	a.workDir = dir
	return a
}

// ConfigureLogging switches the logger to JSON output when supported.
func (a *App) ConfigureLogging(json bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(json)
	}
}

// RunOptions configuration for the Run and Exec methods.
type RunOptions struct {
	// Overrides are command-line options merged last.
	Overrides domain.Options
	// DryRun prints the commands without executing them.
	DryRun bool
	// All selects every project in the workspace.
	All bool
	// Jobs bounds concurrent toolchain processes. Zero means runtime.NumCPU().
	Jobs int
	// OutputMode is one of "auto", "pty" or "pipe".
	OutputMode string
	// Verbose prints workspace details and a summary per project.
	Verbose bool
}

// invocation is one planned toolchain command.
type invocation struct {
	project string
	target  string
	action  domain.Action
	cmd     *domain.Command
}

// Run executes action for each named project.
// With no names, the project containing the working directory is used.
func (a *App) Run(ctx context.Context, action domain.Action, projects []string, opts RunOptions) error {
	if !action.Valid() {
		return zerr.With(domain.ErrUnknownAction, "action", action.String())
	}

	ws, wd, err := a.loadWorkspace()
	if err != nil {
		return err
	}

	names, err := selectProjects(ws, wd, projects, opts.All)
	if err != nil {
		return err
	}

	invocations := make([]invocation, 0, len(names))
	for _, name := range names {
		inv, err := plan(ws, name, action.String(), action, opts.Overrides)
		if err != nil {
			return err
		}
		invocations = append(invocations, inv)
	}

	a.describe(ws, opts)
	return a.execute(ctx, invocations, opts)
}

// Exec runs a single configured target referenced as "project:target".
// The target's configured action selects the toolchain subcommand.
func (a *App) Exec(ctx context.Context, ref string, opts RunOptions) error {
	projectName, targetName, ok := strings.Cut(ref, ":")
	if !ok || projectName == "" || targetName == "" {
		return zerr.With(domain.ErrInvalidTargetReference, "reference", ref)
	}

	ws, _, err := a.loadWorkspace()
	if err != nil {
		return err
	}

	project, err := ws.Project(projectName)
	if err != nil {
		return err
	}
	target, ok := project.Targets[targetName]
	if !ok {
		err := zerr.With(domain.ErrTargetNotFound, "project", projectName)
		return zerr.With(err, "target", targetName)
	}

	inv, err := plan(ws, projectName, targetName, target.Action, opts.Overrides)
	if err != nil {
		return err
	}

	a.describe(ws, opts)
	return a.execute(ctx, []invocation{inv}, opts)
}

// Generate scaffolds a project at the workspace root, or at the working
// directory when no workspace is found.
func (a *App) Generate(ctx context.Context, spec domain.ProjectSpec) (string, error) {
	wd, err := a.getwd()
	if err != nil {
		return "", err
	}

	root, err := a.loader.DiscoverRoot(wd)
	if err != nil {
		root = wd
	}

	return a.generator.Generate(ctx, root, spec)
}

func (a *App) getwd() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return wd, nil
}

func (a *App) loadWorkspace() (*domain.Workspace, string, error) {
	wd, err := a.getwd()
	if err != nil {
		return nil, "", err
	}

	ws, err := a.loader.Load(wd)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to load configuration")
	}
	return ws, wd, nil
}

func (a *App) describe(ws *domain.Workspace, opts RunOptions) {
	if !opts.Verbose {
		return
	}
	a.logger.Info(fmt.Sprintf("workspace %s (%d projects, toolchain %s)", ws.Root, len(ws.Projects), ws.Toolchain))
}

// selectProjects resolves the project names for an invocation, in the order
// given. Duplicates are dropped.
func selectProjects(ws *domain.Workspace, wd string, requested []string, all bool) ([]string, error) {
	if all {
		return slices.Sorted(maps.Keys(ws.Projects)), nil
	}

	if len(requested) == 0 {
		if name, ok := projectAt(ws, wd); ok {
			return []string{name}, nil
		}
		return nil, domain.ErrNoProjectsSpecified
	}

	names := make([]string, 0, len(requested))
	for _, name := range requested {
		if _, err := ws.Project(name); err != nil {
			return nil, err
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names, nil
}

// projectAt returns the project whose root most closely contains dir.
func projectAt(ws *domain.Workspace, dir string) (string, bool) {
	var best string
	bestLen := -1
	for name, p := range ws.Projects {
		rel, err := filepath.Rel(p.Root, dir)
		if err != nil || !filepath.IsLocal(rel) {
			continue
		}
		if len(p.Root) > bestLen {
			best, bestLen = name, len(p.Root)
		}
	}
	return best, bestLen >= 0
}

// plan merges the options for a project and builds its command line.
func plan(
	ws *domain.Workspace,
	projectName, targetName string,
	action domain.Action,
	overrides domain.Options,
) (invocation, error) {
	project, err := ws.Project(projectName)
	if err != nil {
		return invocation{}, err
	}

	opts := project.ResolveOptions(targetName, overrides)
	args, err := cargo.BuildArgs(action, opts, ws.Context(projectName, targetName))
	if err != nil {
		return invocation{}, zerr.With(err, "project", projectName)
	}

	env := make(map[string]string, len(ws.Environment)+len(project.Environment))
	for k, v := range ws.Environment {
		env[k] = v
	}
	for k, v := range project.Environment {
		env[k] = v
	}

	return invocation{
		project: projectName,
		target:  targetName,
		action:  action,
		cmd: &domain.Command{
			Project:     projectName,
			Name:        ws.Toolchain,
			Args:        args,
			Dir:         ws.Root,
			Environment: env,
		},
	}, nil
}

// execute prints each command and, unless dry-running, runs them with at most
// opts.Jobs processes at a time. Every failure is reported, not just the first.
func (a *App) execute(ctx context.Context, invocations []invocation, opts RunOptions) error {
	stdout := &syncWriter{w: a.stdout}
	stderr := &syncWriter{w: a.stderr}

	if opts.DryRun {
		for _, inv := range invocations {
			printCommand(stdout, inv.cmd)
		}
		return nil
	}

	if m, ok := a.executor.(interface{ SetMode(detector.OutputMode) }); ok {
		m.SetMode(detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode))
	}

	ctx, root := a.tracer.Start(ctx, "same-cargo")
	defer root.End()
	root.SetAttribute("run_id", uuid.NewString())

	names := make([]string, len(invocations))
	for i, inv := range invocations {
		names[i] = inv.project
	}
	a.tracer.EmitPlan(ctx, names)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var spanOpts []ports.SpanOption
	if opts.Verbose {
		spanOpts = append(spanOpts, ports.WithReport())
	}

	prefixed := len(invocations) > 1
	errs := make([]error, len(invocations))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, inv := range invocations {
		g.Go(func() error {
			errs[i] = a.runOne(ctx, inv, stdout, stderr, prefixed, spanOpts)
			return nil
		})
	}
	_ = g.Wait()

	var exited, broken []error
	for _, err := range errs {
		switch {
		case err == nil:
		case toolchainExited(err):
			exited = append(exited, err)
		default:
			broken = append(broken, err)
		}
	}

	switch {
	case len(broken) > 0:
		// The toolchain never ran for these, so nothing has been reported yet.
		err := zerr.Wrap(errors.Join(append(broken, exited...)...), "failed to run toolchain")
		root.RecordError(err)
		return err
	case len(exited) > 0:
		err := errors.Join(exited...)
		root.RecordError(err)
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	default:
		return nil
	}
}

// toolchainExited reports whether err comes from a process that ran and
// exited unsuccessfully, having printed its own diagnostics.
func toolchainExited(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

func (a *App) runOne(
	ctx context.Context,
	inv invocation,
	stdout, stderr io.Writer,
	prefixed bool,
	spanOpts []ports.SpanOption,
) error {
	ctx, span := a.tracer.Start(ctx, inv.project, spanOpts...)
	defer span.End()

	span.SetAttribute("project", inv.project)
	span.SetAttribute("target", inv.target)
	span.SetAttribute("action", inv.action.String())
	span.SetAttribute("args", inv.cmd.Args)

	printCommand(stdout, inv.cmd)

	out, errOut := stdout, stderr
	if prefixed {
		pOut := newPrefixWriter(stdout, inv.project)
		pErr := newPrefixWriter(stderr, inv.project)
		defer func() {
			_ = pOut.Close()
			_ = pErr.Close()
		}()
		out, errOut = pOut, pErr
	}

	if err := a.executor.Execute(ctx, inv.cmd, out, errOut); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func printCommand(w io.Writer, cmd *domain.Command) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Prompt, cmd.String())
}

// syncWriter serializes writes from concurrent invocations.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
