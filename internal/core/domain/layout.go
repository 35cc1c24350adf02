package domain

const (
	// SameFileName is the name of the project configuration file.
	SameFileName = "same.yaml"

	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "same.work.yaml"

	// DefaultToolchain is the binary invoked when the workfile names none.
	DefaultToolchain = "cargo"

	// ApplicationsDir is where generated applications are placed.
	ApplicationsDir = "apps"

	// LibrariesDir is where generated libraries are placed.
	LibrariesDir = "libs"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
