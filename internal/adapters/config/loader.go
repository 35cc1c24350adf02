// Package config provides the workspace loader for same-cargo.
package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/same-cargo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.WorkspaceLoader using YAML files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the real filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader over fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Mode represents the configuration mode of a workspace.
type Mode string

const (
	// ModeWorkspace indicates that a workfile was found.
	ModeWorkspace Mode = "workspace"
	// ModeStandalone indicates a single samefile without a workfile.
	ModeStandalone Mode = "standalone"
)

var validProjectNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// ValidateProjectName checks a project name against the allowed character set.
func ValidateProjectName(name string) error {
	if name == "" {
		return domain.ErrMissingProjectName
	}
	if !validProjectNameRegex.MatchString(name) {
		return zerr.With(domain.ErrInvalidProjectName, "project_name", name)
	}
	return nil
}

// Load reads the configuration that applies to cwd and returns the workspace.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeStandalone:
		return l.loadStandalone(configPath)
	case ModeWorkspace:
		return l.loadWorkfile(configPath)
	default:
		return nil, zerr.With(domain.ErrConfigNotFound, "mode", mode)
	}
}

// DiscoverRoot returns the directory holding the configuration for cwd.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, _, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func (l *Loader) findConfiguration(cwd string) (string, Mode, error) {
	currentDir := cwd
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := l.FS.Stat(workfilePath); err == nil {
			return workfilePath, ModeWorkspace, nil
		}

		if standaloneCandidate == "" {
			samefilePath := filepath.Join(currentDir, domain.SameFileName)
			if _, err := l.FS.Stat(samefilePath); err == nil {
				standaloneCandidate = samefilePath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, ModeStandalone, nil
	}

	return "", "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) loadStandalone(configPath string) (*domain.Workspace, error) {
	var samefile Samefile
	if err := l.readAndUnmarshalYAML(configPath, &samefile); err != nil {
		return nil, err
	}

	root := resolveRoot(configPath, samefile.Root)
	ws := domain.NewWorkspace(root)

	project, err := buildProject(&samefile, root, ".")
	if err != nil {
		return nil, err
	}
	if err := ws.AddProject(project); err != nil {
		return nil, err
	}
	return ws, nil
}

func (l *Loader) loadWorkfile(configPath string) (*domain.Workspace, error) {
	var workfile Workfile
	if err := l.readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}

	ws := domain.NewWorkspace(resolveRoot(configPath, workfile.Root))
	if workfile.Toolchain != "" {
		ws.Toolchain = workfile.Toolchain
	}
	ws.Environment = workfile.Env

	projectPaths, err := l.resolveProjectPaths(ws.Root, workfile.Projects)
	if err != nil {
		return nil, err
	}

	for _, projectPath := range projectPaths {
		if err := l.processProject(ws, projectPath); err != nil {
			return nil, err
		}
	}

	return ws, nil
}

func (l *Loader) resolveProjectPaths(workspaceRoot string, patterns []string) ([]string, error) {
	// Several globs may match the same directory.
	projectPaths := make(map[string]struct{})

	for _, pattern := range patterns {
		absPattern := filepath.Join(workspaceRoot, pattern)

		matches, err := l.FS.Glob(absPattern)
		if err != nil {
			return nil, zerr.Wrap(err, "glob pattern failed: "+pattern)
		}

		for _, match := range matches {
			projectPaths[match] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(projectPaths)), nil
}

func (l *Loader) processProject(ws *domain.Workspace, projectPath string) error {
	relPath, _ := filepath.Rel(ws.Root, projectPath)

	info, err := l.FS.Stat(projectPath)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil
	}

	sameYamlPath := filepath.Join(projectPath, domain.SameFileName)
	if _, statErr := l.FS.Stat(sameYamlPath); statErr != nil {
		l.Logger.Warn(fmt.Sprintf("%s missing in project %s, skipping", domain.SameFileName, relPath))
		return nil
	}

	var samefile Samefile
	if err := l.readAndUnmarshalYAML(sameYamlPath, &samefile); err != nil {
		return zerr.With(err, "directory", relPath)
	}

	if samefile.Root != "" {
		l.Logger.Warn(fmt.Sprintf("'root' defined in %s is ignored in workspace mode", relPath))
	}

	project, err := buildProject(&samefile, projectPath, relPath)
	if err != nil {
		return err
	}

	return ws.AddProject(project)
}

// buildProject validates a samefile and converts it into a domain.Project.
func buildProject(samefile *Samefile, projectRoot, relPath string) (*domain.Project, error) {
	if err := ValidateProjectName(samefile.Project); err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}

	kind, err := domain.ParseProjectKind(samefile.Kind)
	if err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}

	opts, err := decodeOptions(&samefile.Options)
	if err != nil {
		return nil, zerr.With(err, "directory", relPath)
	}

	targets := make(map[string]*domain.Target, len(samefile.Targets))
	for name, dto := range samefile.Targets {
		target, err := buildTarget(name, dto)
		if err != nil {
			err = zerr.With(err, "target", name)
			return nil, zerr.With(err, "directory", relPath)
		}
		targets[name] = target
	}

	return &domain.Project{
		Name:        samefile.Project,
		Root:        projectRoot,
		Kind:        kind,
		Environment: samefile.Env,
		Options:     opts,
		Targets:     targets,
	}, nil
}

func buildTarget(name string, dto *TargetDTO) (*domain.Target, error) {
	if dto == nil {
		dto = &TargetDTO{}
	}

	actionName := dto.Action
	if actionName == "" {
		actionName = name
	}
	action, err := domain.ParseAction(actionName)
	if err != nil {
		return nil, err
	}

	opts, err := decodeOptions(&dto.Options)
	if err != nil {
		return nil, err
	}

	return &domain.Target{Name: name, Action: action, Options: opts}, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target any) error {
	configFile, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return nil
}
