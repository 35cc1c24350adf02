package domain

import "strings"

// Command is a fully resolved toolchain invocation.
type Command struct {
	// Project is the name of the project the command was built for.
	Project string
	// Name is the toolchain binary, e.g. "cargo".
	Name string
	// Args are the tokens produced by the argument builder.
	Args []string
	// Dir is the working directory.
	Dir string
	// Environment overrides applied on top of the process environment.
	Environment map[string]string
}

// Argv returns the binary followed by its arguments.
func (c *Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	return append(argv, c.Args...)
}

// String joins the argv with spaces for display.
func (c *Command) String() string {
	return strings.Join(c.Argv(), " ")
}
