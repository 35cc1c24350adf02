package cargo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/same-cargo/internal/engine/cargo"
)

func TestNormalizeProjectName(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
	}{
		{name: "respects kebab-case", candidate: "my-app"},
		{name: "respects snake_case", candidate: "my_app"},
		{name: "respects PascalCase", candidate: "MyApp"},
		{name: "respects camelCase", candidate: "myApp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.candidate, cargo.NormalizeProjectName(tt.candidate))
		})
	}
}
