package config

import "gopkg.in/yaml.v3"

// Workfile represents the structure of the same.work.yaml configuration file.
type Workfile struct {
	Version   string            `yaml:"version"`
	Root      string            `yaml:"root"`
	Toolchain string            `yaml:"toolchain"`
	Env       map[string]string `yaml:"env"`
	Projects  []string          `yaml:"projects"`
}

// Samefile represents the structure of the same.yaml configuration file.
// Options are kept as raw nodes so passthrough keys retain file order.
type Samefile struct {
	Version string                `yaml:"version,omitempty"`
	Project string                `yaml:"project"`
	Kind    string                `yaml:"kind,omitempty"`
	Root    string                `yaml:"root,omitempty"`
	Env     map[string]string     `yaml:"env,omitempty"`
	Options yaml.Node             `yaml:"options,omitempty"`
	Targets map[string]*TargetDTO `yaml:"targets,omitempty"`
}

// TargetDTO represents a target definition in the configuration.
// An empty Action defaults to the target name.
type TargetDTO struct {
	Action  string    `yaml:"action,omitempty"`
	Options yaml.Node `yaml:"options,omitempty"`
}
