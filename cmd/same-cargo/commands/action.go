package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/same-cargo/internal/app"
	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/zerr"
)

var actionSummaries = map[domain.Action]string{
	domain.ActionBuild:   "Compile the given projects",
	domain.ActionRun:     "Run the binary of the given projects",
	domain.ActionTest:    "Run the tests of the given projects",
	domain.ActionCheck:   "Check the given projects for errors without building",
	domain.ActionClean:   "Remove build artifacts of the given projects",
	domain.ActionPublish: "Publish the given projects to a registry",
}

func (c *CLI) newActionCmd(action domain.Action) *cobra.Command {
	cmd := &cobra.Command{
		Use:   action.String() + " [projects...]",
		Short: actionSummaries[action],
		Long: fmt.Sprintf(
			"Run cargo %s for each project. Without arguments the project containing the\n"+
				"current directory is used. Options from same.yaml are merged with the flags given here.",
			action,
		),
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptions(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Run(cmd.Context(), action, args, opts)
		},
	}
	addRunFlags(cmd.Flags())
	cmd.Flags().Bool("all", false, "Run for every project in the workspace")
	return cmd
}

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <project>:<target>",
		Short: "Run a target configured in a project's same.yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := runOptions(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Exec(cmd.Context(), args[0], opts)
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.Bool(domain.OptionRelease, false, "Build artifacts in release mode")
	flags.String(domain.OptionTarget, "", "Build for the target triple")
	flags.String(domain.OptionProfile, "", "Build artifacts with the specified profile")
	flags.String(domain.OptionBin, "", "Binary to build, selecting the project with -p")
	flags.StringArrayP("option", "o", nil, "Extra cargo option as key=value or key (repeatable)")
	flags.Bool("dry-run", false, "Print the cargo commands without running them")
	flags.IntP("jobs", "j", 0, "Maximum number of concurrent cargo processes (default: number of CPUs)")
	flags.String("output-mode", "auto", "Output mode: auto, pty, or pipe")
	flags.Bool("verbose", false, "Print workspace details and a summary per project")
}

// runOptions collects the shared flags. Only flags given on the command line
// become overrides, so same.yaml values survive otherwise.
func runOptions(flags *pflag.FlagSet) (app.RunOptions, error) {
	var opts app.RunOptions

	if flags.Changed(domain.OptionRelease) {
		release, _ := flags.GetBool(domain.OptionRelease)
		opts.Overrides.Set(domain.OptionRelease, domain.Bool(release))
	}
	for _, key := range []string{domain.OptionTarget, domain.OptionProfile, domain.OptionBin} {
		if flags.Changed(key) {
			v, _ := flags.GetString(key)
			opts.Overrides.Set(key, domain.String(v))
		}
	}

	raw, _ := flags.GetStringArray("option")
	for _, entry := range raw {
		key, value, err := parseOption(entry)
		if err != nil {
			return app.RunOptions{}, err
		}
		opts.Overrides.Set(key, value)
	}

	opts.DryRun, _ = flags.GetBool("dry-run")
	opts.Jobs, _ = flags.GetInt("jobs")
	opts.OutputMode, _ = flags.GetString("output-mode")
	opts.Verbose, _ = flags.GetBool("verbose")
	if flags.Lookup("all") != nil {
		opts.All, _ = flags.GetBool("all")
	}

	if opts.Jobs < 0 {
		return app.RunOptions{}, zerr.With(domain.ErrInvalidOptionValue, "jobs", opts.Jobs)
	}
	return opts, nil
}

// parseOption splits "key=value". A bare "key" is a flag set to true and the
// literals true and false become booleans.
func parseOption(entry string) (string, domain.OptionValue, error) {
	key, raw, hasValue := strings.Cut(entry, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", domain.Unset(), zerr.With(domain.ErrInvalidOptionValue, "option", entry)
	}

	value := domain.Bool(true)
	if hasValue {
		value = domain.ParseOptionValue(raw)
	}
	if err := domain.CheckOption(key, value); err != nil {
		return "", domain.Unset(), err
	}
	return key, value, nil
}
