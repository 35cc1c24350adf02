package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/same-cargo/cmd/same-cargo/commands"
	"go.trai.ch/same-cargo/internal/app"
	"go.trai.ch/same-cargo/internal/build"
	"go.trai.ch/same-cargo/internal/core/domain"
)

type mockApp struct {
	runFunc      func(ctx context.Context, action domain.Action, projects []string, opts app.RunOptions) error
	execFunc     func(ctx context.Context, ref string, opts app.RunOptions) error
	generateFunc func(ctx context.Context, spec domain.ProjectSpec) (string, error)
	jsonLogs     bool
}

func (m *mockApp) Run(ctx context.Context, action domain.Action, projects []string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, action, projects, opts)
	}
	return nil
}

func (m *mockApp) Exec(ctx context.Context, ref string, opts app.RunOptions) error {
	if m.execFunc != nil {
		return m.execFunc(ctx, ref, opts)
	}
	return nil
}

func (m *mockApp) Generate(ctx context.Context, spec domain.ProjectSpec) (string, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, spec)
	}
	return "", nil
}

func (m *mockApp) ConfigureLogging(json bool) {
	m.jsonLogs = json
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(t.Context())
	return buf.String(), err
}

func TestCommands_Action(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var gotAction domain.Action
		var gotProjects []string
		var gotOpts app.RunOptions

		mock := &mockApp{
			runFunc: func(_ context.Context, action domain.Action, projects []string, opts app.RunOptions) error {
				gotAction, gotProjects, gotOpts = action, projects, opts
				return nil
			},
		}

		_, err := execute(t, mock, "build", "api", "worker",
			"--release", "--target", "wasm32-unknown-unknown",
			"-o", "features=serde", "-o", "offline", "-o", "locked=false", "-o", "features=tokio",
			"--dry-run", "-j", "2", "--output-mode", "pipe", "--verbose")
		require.NoError(t, err)

		assert.Equal(t, domain.ActionBuild, gotAction)
		assert.Equal(t, []string{"api", "worker"}, gotProjects)
		assert.True(t, gotOpts.DryRun)
		assert.True(t, gotOpts.Verbose)
		assert.False(t, gotOpts.All)
		assert.Equal(t, 2, gotOpts.Jobs)
		assert.Equal(t, "pipe", gotOpts.OutputMode)

		overrides := gotOpts.Overrides
		assert.Equal(t, domain.Bool(true), overrides.Release)
		assert.Equal(t, domain.String("wasm32-unknown-unknown"), overrides.Target)
		assert.False(t, overrides.Profile.IsSet())
		assert.False(t, overrides.Bin.IsSet())
		assert.Equal(t, []domain.Option{
			{Key: "features", Value: domain.String("tokio")},
			{Key: "offline", Value: domain.Bool(true)},
			{Key: "locked", Value: domain.Bool(false)},
		}, overrides.Extra)
	})

	t.Run("unchanged flags stay unset", func(t *testing.T) {
		var gotOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ domain.Action, _ []string, opts app.RunOptions) error {
				gotOpts = opts
				return nil
			},
		}

		_, err := execute(t, mock, "test", "--all")
		require.NoError(t, err)

		assert.True(t, gotOpts.All)
		assert.False(t, gotOpts.Overrides.Release.IsSet())
		assert.False(t, gotOpts.Overrides.Target.IsSet())
		assert.Empty(t, gotOpts.Overrides.Extra)
	})

	t.Run("every action has a command", func(t *testing.T) {
		for _, action := range domain.Actions() {
			var got domain.Action
			mock := &mockApp{
				runFunc: func(_ context.Context, a domain.Action, _ []string, _ app.RunOptions) error {
					got = a
					return nil
				},
			}
			_, err := execute(t, mock, action.String(), "api")
			require.NoError(t, err)
			assert.Equal(t, action, got)
		}
	})

	t.Run("rejects invalid options", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ domain.Action, _ []string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		for _, args := range [][]string{
			{"build", "-o", "=value"},
			{"build", "-o", "release=fast"},
			{"build", "-o", "profile=true"},
			{"build", "--jobs=-1"},
		} {
			_, err := execute(t, mock, args...)
			require.Error(t, err, "args %v", args)
			assert.ErrorContains(t, err, domain.ErrInvalidOptionValue.Error())
		}
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ domain.Action, _ []string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "build", "api")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("json flag configures logging", func(t *testing.T) {
		mock := &mockApp{}

		_, err := execute(t, mock, "check", "--json")
		require.NoError(t, err)
		assert.True(t, mock.jsonLogs)
	})
}

func TestCommands_Exec(t *testing.T) {
	var gotRef string
	var gotOpts app.RunOptions
	mock := &mockApp{
		execFunc: func(_ context.Context, ref string, opts app.RunOptions) error {
			gotRef, gotOpts = ref, opts
			return nil
		},
	}

	_, err := execute(t, mock, "exec", "api:lint", "--profile", "ci", "--bin", "api-cli")
	require.NoError(t, err)

	assert.Equal(t, "api:lint", gotRef)
	assert.Equal(t, domain.String("ci"), gotOpts.Overrides.Profile)
	assert.Equal(t, domain.String("api-cli"), gotOpts.Overrides.Bin)

	_, err = execute(t, mock, "exec")
	require.Error(t, err)
}

func TestCommands_Generate(t *testing.T) {
	var gotSpec domain.ProjectSpec
	mock := &mockApp{
		generateFunc: func(_ context.Context, spec domain.ProjectSpec) (string, error) {
			gotSpec = spec
			return "/ws/libs/myLib/same.yaml", nil
		},
	}

	out, err := execute(t, mock, "generate", "myLib", "--kind", "library")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectSpec{Name: "myLib", Kind: domain.KindLibrary}, gotSpec)
	assert.Equal(t, "/ws/libs/myLib/same.yaml\n", out)

	_, err = execute(t, mock, "generate", "my-app", "--directory", "services")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectSpec{Name: "my-app", Kind: domain.KindApplication, Directory: "services"}, gotSpec)

	_, err = execute(t, mock, "generate", "x", "--kind", "plugin")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidProjectKind.Error())
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "same-cargo version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)

	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, "commit: "+build.Commit)
}
