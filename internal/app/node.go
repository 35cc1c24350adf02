package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/same-cargo/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/same-cargo/internal/adapters/generator" //nolint:depguard // Wired in app layer
	"go.trai.ch/same-cargo/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/same-cargo/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/same-cargo/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/same-cargo/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.NodeID,
			generator.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.WorkspaceLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	gen, err := graft.Dep[ports.ProjectGenerator](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, log, tracer, gen), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
