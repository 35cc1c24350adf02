package domain

import "go.trai.ch/zerr"

// ProjectKind distinguishes binaries from libraries.
type ProjectKind string

const (
	// KindApplication is a project that produces an executable.
	KindApplication ProjectKind = "application"
	// KindLibrary is a project that is only linked by others.
	KindLibrary ProjectKind = "library"
)

// ParseProjectKind validates a kind read from configuration.
// An empty string defaults to KindApplication.
func ParseProjectKind(s string) (ProjectKind, error) {
	switch ProjectKind(s) {
	case "", KindApplication:
		return KindApplication, nil
	case KindLibrary:
		return KindLibrary, nil
	default:
		return "", zerr.With(ErrInvalidProjectKind, "kind", s)
	}
}

// ProjectMetadata is what the workspace knows about a project besides its name.
type ProjectMetadata struct {
	Root string
	Kind ProjectKind
}

// WorkspaceContext is the read-only view of the workspace handed to the
// argument builder. TargetName is the workspace target that triggered the
// invocation and is informational only.
type WorkspaceContext struct {
	ProjectName string
	TargetName  string
	Projects    map[string]ProjectMetadata
}

// CurrentProject returns the metadata of ProjectName.
func (c WorkspaceContext) CurrentProject() (ProjectMetadata, bool) {
	meta, ok := c.Projects[c.ProjectName]
	return meta, ok
}

// Target is a named workspace target bound to a cargo action.
type Target struct {
	Name    string
	Action  Action
	Options Options
}

// Project is a single cargo package registered in the workspace.
type Project struct {
	Name        string
	Root        string
	Kind        ProjectKind
	Environment map[string]string
	Options     Options
	Targets     map[string]*Target
}

// Workspace is the loaded workspace configuration.
type Workspace struct {
	Root        string
	Toolchain   string
	Environment map[string]string
	Projects    map[string]*Project
}

// NewWorkspace creates an empty workspace rooted at root.
func NewWorkspace(root string) *Workspace {
	return &Workspace{
		Root:      root,
		Toolchain: DefaultToolchain,
		Projects:  make(map[string]*Project),
	}
}

// AddProject registers p, rejecting duplicate names.
func (w *Workspace) AddProject(p *Project) error {
	if existing, ok := w.Projects[p.Name]; ok {
		err := zerr.With(ErrDuplicateProjectName, "project_name", p.Name)
		err = zerr.With(err, "first_occurrence", existing.Root)
		return zerr.With(err, "duplicate_at", p.Root)
	}
	w.Projects[p.Name] = p
	return nil
}

// Project looks up a project by name.
func (w *Workspace) Project(name string) (*Project, error) {
	p, ok := w.Projects[name]
	if !ok {
		return nil, zerr.With(ErrProjectNotFound, "project", name)
	}
	return p, nil
}

// Context builds the WorkspaceContext for an invocation of project.
func (w *Workspace) Context(project, targetName string) WorkspaceContext {
	meta := make(map[string]ProjectMetadata, len(w.Projects))
	for name, p := range w.Projects {
		meta[name] = ProjectMetadata{Root: p.Root, Kind: p.Kind}
	}
	return WorkspaceContext{
		ProjectName: project,
		TargetName:  targetName,
		Projects:    meta,
	}
}

// ResolveOptions merges project defaults, the named target's options and
// overrides, in that order. A missing target contributes nothing.
func (p *Project) ResolveOptions(targetName string, overrides Options) Options {
	opts := p.Options
	if t, ok := p.Targets[targetName]; ok {
		opts = opts.Merge(t.Options)
	}
	return opts.Merge(overrides)
}

// ProjectSpec describes a project to be scaffolded by the generator.
type ProjectSpec struct {
	Name string
	Kind ProjectKind
	// Directory overrides the parent directory, relative to the workspace root.
	Directory string
}
