package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Action is a cargo subcommand selected by the caller for one invocation.
// It is independent of whatever target name the workspace used to trigger it.
type Action int

const (
	// ActionBuild compiles the project.
	ActionBuild Action = iota + 1
	// ActionRun builds and runs the project binary.
	ActionRun
	// ActionTest runs the project tests.
	ActionTest
	// ActionCheck type-checks the project without producing artifacts.
	ActionCheck
	// ActionClean removes build artifacts.
	ActionClean
	// ActionPublish uploads the package to a registry.
	ActionPublish
)

var actionNames = map[Action]string{
	ActionBuild:   "build",
	ActionRun:     "run",
	ActionTest:    "test",
	ActionCheck:   "check",
	ActionClean:   "clean",
	ActionPublish: "publish",
}

// Actions returns every supported action in declaration order.
func Actions() []Action {
	return []Action{ActionBuild, ActionRun, ActionTest, ActionCheck, ActionClean, ActionPublish}
}

// ParseAction returns the Action whose canonical name is s.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if actionNames[a] == s {
			return a, nil
		}
	}
	return 0, zerr.With(ErrUnknownAction, "action", s)
}

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// String returns the lowercase subcommand name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}
