// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/same-cargo/internal/adapters/config"
	_ "go.trai.ch/same-cargo/internal/adapters/generator"
	_ "go.trai.ch/same-cargo/internal/adapters/logger"
	_ "go.trai.ch/same-cargo/internal/adapters/shell"
	_ "go.trai.ch/same-cargo/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/same-cargo/internal/app"
)
