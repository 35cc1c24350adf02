// Package generator scaffolds project files inside a workspace.
package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/same-cargo/internal/adapters/config"
	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/same-cargo/internal/core/ports"
	"go.trai.ch/same-cargo/internal/engine/cargo"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const samefileVersion = "1"

// Generator implements ports.ProjectGenerator by writing same.yaml files.
type Generator struct {
	logger ports.Logger
}

// New creates a new Generator.
func New(logger ports.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate writes the project file for spec below root and returns its path.
func (g *Generator) Generate(ctx context.Context, root string, spec domain.ProjectSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := cargo.NormalizeProjectName(spec.Name)
	if strings.TrimSpace(name) == "" {
		return "", domain.ErrMissingProjectName
	}
	if err := config.ValidateProjectName(name); err != nil {
		return "", err
	}

	parent, err := parentDir(spec)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, parent, name)
	path := filepath.Join(dir, domain.SameFileName)

	data, err := render(name, spec.Kind)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrProjectWriteFailed.Error()), "path", path)
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrProjectWriteFailed.Error()), "path", dir)
	}

	created, err := writeExclusive(path, data)
	if err != nil {
		return "", err
	}
	if !created {
		return "", zerr.With(domain.ErrProjectExists, "path", path)
	}

	// Crate files already present are adopted as they are.
	for _, file := range crateFiles(name, spec.Kind) {
		target := filepath.Join(dir, file.path)
		if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrProjectWriteFailed.Error()), "path", target)
		}
		created, err := writeExclusive(target, file.data)
		if err != nil {
			return "", err
		}
		if !created {
			g.logger.Info("kept existing " + target)
		}
	}

	g.logger.Info("created " + path)
	return path, nil
}

// writeExclusive creates path with data. It reports false without writing
// when the file already exists.
func writeExclusive(path string, data []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.FilePerm) //nolint:gosec // path built from validated name
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrProjectWriteFailed.Error()), "path", path)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return false, zerr.With(zerr.Wrap(err, domain.ErrProjectWriteFailed.Error()), "path", path)
	}
	if err := f.Close(); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrProjectWriteFailed.Error()), "path", path)
	}
	return true, nil
}

func parentDir(spec domain.ProjectSpec) (string, error) {
	if spec.Directory != "" {
		if !filepath.IsLocal(spec.Directory) {
			return "", zerr.With(domain.ErrInvalidProjectDirectory, "directory", spec.Directory)
		}
		return spec.Directory, nil
	}
	if spec.Kind == domain.KindLibrary {
		return domain.LibrariesDir, nil
	}
	return domain.ApplicationsDir, nil
}

// defaultActions lists the targets scaffolded for each kind of project.
func defaultActions(kind domain.ProjectKind) []domain.Action {
	if kind == domain.KindLibrary {
		return []domain.Action{domain.ActionBuild, domain.ActionTest}
	}
	return []domain.Action{domain.ActionBuild, domain.ActionRun, domain.ActionTest}
}

func render(name string, kind domain.ProjectKind) ([]byte, error) {
	if kind == "" {
		kind = domain.KindApplication
	}

	file := config.Samefile{
		Version: samefileVersion,
		Project: name,
		Kind:    string(kind),
		Targets: make(map[string]*config.TargetDTO),
	}
	for _, action := range defaultActions(kind) {
		file.Targets[action.String()] = &config.TargetDTO{Action: action.String()}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
