package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownAction is returned when a lifecycle action is outside the supported set.
	// It signals a contract violation by the caller, not bad user data.
	ErrUnknownAction = zerr.New("unknown lifecycle action")

	// ErrInvalidOptionValue is returned when a recognized option has the wrong type.
	ErrInvalidOptionValue = zerr.New("invalid option value")

	// ErrUnsupportedOptionType is returned when an option value is not a scalar.
	ErrUnsupportedOptionType = zerr.New("option values must be strings or booleans")

	// ErrMissingProjectName is returned when a samefile is missing a project name.
	ErrMissingProjectName = zerr.New("missing project name")

	// ErrInvalidProjectName is returned when a project name is invalid.
	ErrInvalidProjectName = zerr.New("project name can only contain alphanumeric characters, hyphens and underscores")

	// ErrDuplicateProjectName is returned when multiple projects share the same name in a workspace.
	ErrDuplicateProjectName = zerr.New("duplicate project name")

	// ErrInvalidProjectKind is returned when a project kind is neither application nor library.
	ErrInvalidProjectKind = zerr.New("invalid project kind, expected 'application' or 'library'")

	// ErrProjectNotFound is returned when a requested project is not part of the workspace.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrTargetNotFound is returned when a requested target is not configured for a project.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrInvalidTargetReference is returned when a target reference is not of the form project:target.
	ErrInvalidTargetReference = zerr.New("invalid target reference, expected 'project:target'")

	// ErrNoProjectsSpecified is returned when an action is run without any project.
	ErrNoProjectsSpecified = zerr.New("no projects specified")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find samefile or workfile")

	// ErrBuildExecutionFailed is returned when the toolchain exits unsuccessfully.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrProjectExists is returned when the generator would overwrite an existing project.
	ErrProjectExists = zerr.New("project already exists")

	// ErrProjectWriteFailed is returned when the generator cannot write the project file.
	ErrProjectWriteFailed = zerr.New("failed to write project file")

	// ErrInvalidProjectDirectory is returned when a generator directory leaves the workspace.
	ErrInvalidProjectDirectory = zerr.New("project directory must be relative to the workspace root")
)
