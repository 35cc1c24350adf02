package config_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/same-cargo/internal/adapters/config"
)

func TestMountedFS(t *testing.T) {
	fsys := config.NewMountedFS("/ws", fstest.MapFS{
		"same.work.yaml":     {Data: []byte("projects: []\n")},
		"apps/api/same.yaml": {Data: []byte("project: api\n")},
	})

	t.Run("root stats as directory", func(t *testing.T) {
		info, err := fsys.Stat("/ws")
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("reads below root", func(t *testing.T) {
		data, err := fsys.ReadFile("/ws/apps/api/same.yaml")
		require.NoError(t, err)
		assert.Equal(t, "project: api\n", string(data))
	})

	t.Run("glob returns absolute paths", func(t *testing.T) {
		matches, err := fsys.Glob("/ws/apps/*")
		require.NoError(t, err)
		assert.Equal(t, []string{"/ws/apps/api"}, matches)
	})

	t.Run("paths outside root do not resolve", func(t *testing.T) {
		_, err := fsys.Stat("/other/same.yaml")
		require.Error(t, err)
	})
}
