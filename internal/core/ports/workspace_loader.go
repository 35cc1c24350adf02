package ports

import "go.trai.ch/same-cargo/internal/core/domain"

// WorkspaceLoader defines the interface for loading the workspace configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace_loader.go -destination=mocks/mock_workspace_loader.go -package=mocks
type WorkspaceLoader interface {
	// Load reads the configuration found from the given working directory.
	Load(cwd string) (*domain.Workspace, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the directory containing same.work.yaml or same.yaml.
	DiscoverRoot(cwd string) (string, error)
}
