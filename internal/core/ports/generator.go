package ports

import (
	"context"

	"go.trai.ch/same-cargo/internal/core/domain"
)

// ProjectGenerator scaffolds project configuration on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type ProjectGenerator interface {
	// Generate writes the project file for spec below root and returns its path.
	Generate(ctx context.Context, root string, spec domain.ProjectSpec) (string, error)
}
