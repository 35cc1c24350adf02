package cargo_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/same-cargo/internal/engine/cargo"
	"go.trai.ch/zerr"
)

// mockWorkspaceContext mirrors a workspace invocation such as "test-app:build".
func mockWorkspaceContext(command string) domain.WorkspaceContext {
	projectName, targetName, _ := strings.Cut(command, ":")
	return domain.WorkspaceContext{
		ProjectName: projectName,
		TargetName:  targetName,
		Projects: map[string]domain.ProjectMetadata{
			"test-app": {Root: "apps/test-app", Kind: domain.KindApplication},
			"test-lib": {Root: "libs/test-lib", Kind: domain.KindLibrary},
		},
	}
}

func cargoCommand(t *testing.T, action domain.Action, opts domain.Options, wctx domain.WorkspaceContext) string {
	t.Helper()
	args, err := cargo.BuildArgs(action, opts, wctx)
	require.NoError(t, err)
	return strings.Join(append([]string{"cargo"}, args...), " ")
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		opts     domain.Options
		expected string
	}{
		{
			name:     "supports --target",
			command:  "test-app:build",
			opts:     domain.Options{Target: domain.String("86_64-pc-windows-gnu")},
			expected: "cargo build --bin test-app --target 86_64-pc-windows-gnu",
		},
		{
			name:     "ignores the workspace target name",
			command:  "test-app:flooptydoopty",
			opts:     domain.Options{},
			expected: "cargo build --bin test-app",
		},
		{
			name:    "does not pass falsy arguments",
			command: "test-app:build",
			opts: domain.Options{
				Release: domain.Bool(false),
				Target:  domain.Unset(),
			},
			expected: "cargo build --bin test-app",
		},
		{
			name:     "passes --profile",
			command:  "test-app:build",
			opts:     domain.Options{Profile: domain.String("dev-custom")},
			expected: "cargo build --bin test-app --profile dev-custom",
		},
		{
			name:    "passes through unknown arguments dasherized",
			command: "test-app:build",
			opts: domain.Options{Extra: []domain.Option{
				{Key: "unknownArg", Value: domain.String("lorem-ipsum")},
			}},
			expected: "cargo build --bin test-app --unknown-arg lorem-ipsum",
		},
		{
			name:    "capitalized keys never repeat recognized flags",
			command: "test-app:build",
			opts: domain.Options{
				Release: domain.Bool(true),
				Extra: []domain.Option{
					{Key: "Release", Value: domain.Bool(true)},
					{Key: "Bin", Value: domain.String("other")},
					{Key: "Profile", Value: domain.String("dev")},
				},
			},
			expected: "cargo build --bin test-app --release",
		},
		{
			name:     "allows a custom binary target",
			command:  "test-app:build",
			opts:     domain.Options{Bin: domain.String("custom-bin-name")},
			expected: "cargo build -p test-app --bin custom-bin-name",
		},
		{
			name:     "treats an empty bin as absent",
			command:  "test-app:build",
			opts:     domain.Options{Bin: domain.String("")},
			expected: "cargo build --bin test-app",
		},
		{
			name:     "emits a bare --release",
			command:  "test-app:build",
			opts:     domain.Options{Release: domain.Bool(true)},
			expected: "cargo build --bin test-app --release",
		},
		{
			name:     "ignores an empty target",
			command:  "test-app:build",
			opts:     domain.Options{Target: domain.String("")},
			expected: "cargo build --bin test-app",
		},
		{
			name:    "passthrough booleans",
			command: "test-app:build",
			opts: domain.Options{Extra: []domain.Option{
				{Key: "allFeatures", Value: domain.Bool(true)},
				{Key: "offline", Value: domain.Bool(false)},
				{Key: "locked", Value: domain.Unset()},
				{Key: "features", Value: domain.String("")},
			}},
			expected: "cargo build --bin test-app --all-features",
		},
		{
			name:    "fixed order regardless of field assignment",
			command: "test-lib:build",
			opts: domain.Options{
				Profile: domain.String("bench"),
				Target:  domain.String("wasm32-unknown-unknown"),
				Release: domain.Bool(true),
				Bin:     domain.String("tool"),
				Extra: []domain.Option{
					{Key: "targetDir", Value: domain.String("out")},
					{Key: "frozen", Value: domain.Bool(true)},
				},
			},
			expected: "cargo build -p test-lib --bin tool --release --target wasm32-unknown-unknown " +
				"--profile bench --target-dir out --frozen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cargoCommand(t, domain.ActionBuild, tt.opts, mockWorkspaceContext(tt.command))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuildArgs_Tokens(t *testing.T) {
	args, err := cargo.BuildArgs(
		domain.ActionBuild,
		domain.Options{Extra: []domain.Option{{Key: "unknownArg", Value: domain.String("lorem ipsum")}}},
		mockWorkspaceContext("test-app:build"),
	)
	require.NoError(t, err)

	// Values are separate tokens and never split or joined.
	assert.Equal(t, []string{"build", "--bin", "test-app", "--unknown-arg", "lorem ipsum"}, args)
}

func TestBuildArgs_SubcommandFromAction(t *testing.T) {
	wctx := mockWorkspaceContext("test-app:build")
	for _, action := range domain.Actions() {
		args, err := cargo.BuildArgs(action, domain.Options{}, wctx)
		require.NoError(t, err)
		assert.Equal(t, []string{action.String(), "--bin", "test-app"}, args)
	}
}

func TestBuildArgs_UnknownAction(t *testing.T) {
	args, err := cargo.BuildArgs(domain.Action(99), domain.Options{}, mockWorkspaceContext("test-app:build"))
	require.Error(t, err)
	assert.Nil(t, args)
	assert.ErrorContains(t, err, domain.ErrUnknownAction.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "Action(99)", zErr.Metadata()["action"])
}

func TestBuildArgs_RecognizedKeysInExtraAreIgnored(t *testing.T) {
	opts := domain.Options{Extra: []domain.Option{
		{Key: "bin", Value: domain.String("sneaky")},
		{Key: "release", Value: domain.Bool(true)},
	}}
	assert.Equal(t, "cargo build --bin test-app",
		cargoCommand(t, domain.ActionBuild, opts, mockWorkspaceContext("test-app:build")))
}

func TestBuildArgs_Idempotent(t *testing.T) {
	opts := domain.Options{
		Release: domain.Bool(true),
		Extra: []domain.Option{
			{Key: "b", Value: domain.String("2")},
			{Key: "a", Value: domain.String("1")},
		},
	}
	wctx := mockWorkspaceContext("test-app:build")

	first, err := cargo.BuildArgs(domain.ActionTest, opts, wctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := cargo.BuildArgs(domain.ActionTest, opts, wctx)
			assert.NoError(t, err)
			assert.Equal(t, first, again)
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"test", "--bin", "test-app", "--release", "--b", "2", "--a", "1"}, first)
}
