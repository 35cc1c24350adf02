// Package cargo translates lifecycle actions and option bags into cargo
// command-line arguments.
package cargo

import (
	"go.trai.ch/same-cargo/internal/core/domain"
	"go.trai.ch/zerr"
)

type emission uint8

const (
	bareFlagIfTrue emission = iota
	valueFlagIfNonEmpty
)

type recognizedFlag struct {
	key  string
	rule emission
}

// recognizedFlags are emitted after target selection, in this order.
// "bin" is absent because target selection consumes it.
var recognizedFlags = []recognizedFlag{
	{key: domain.OptionRelease, rule: bareFlagIfTrue},
	{key: domain.OptionTarget, rule: valueFlagIfNonEmpty},
	{key: domain.OptionProfile, rule: valueFlagIfNonEmpty},
}

// BuildArgs returns the cargo arguments for running action on the current
// project of wctx. The returned slice does not include the cargo binary.
//
// The subcommand always comes from action; wctx.TargetName is never consulted.
// Unset and false options produce nothing.
func BuildArgs(action domain.Action, opts domain.Options, wctx domain.WorkspaceContext) ([]string, error) {
	if !action.Valid() {
		return nil, zerr.With(domain.ErrUnknownAction, "action", action.String())
	}

	args := make([]string, 0, 3+2*len(recognizedFlags)+2*len(opts.Extra))
	args = append(args, action.String())

	if opts.Bin.NonEmpty() {
		args = append(args, "-p", wctx.ProjectName, "--bin", opts.Bin.Text())
	} else {
		args = append(args, "--bin", wctx.ProjectName)
	}

	for _, f := range recognizedFlags {
		args = appendFlag(args, Dasherize(f.key), f.rule, opts.Get(f.key))
	}

	for _, opt := range opts.Extra {
		// "Release" dasherizes to "release" and would repeat a recognized flag.
		name := Dasherize(opt.Key)
		if domain.IsRecognized(opt.Key) || domain.IsRecognized(name) {
			continue
		}
		args = appendPassthrough(args, name, opt.Value)
	}

	return args, nil
}

func appendFlag(args []string, name string, rule emission, v domain.OptionValue) []string {
	switch rule {
	case bareFlagIfTrue:
		if v.True() {
			return append(args, "--"+name)
		}
	case valueFlagIfNonEmpty:
		if v.NonEmpty() {
			return append(args, "--"+name, v.Text())
		}
	}
	return args
}

func appendPassthrough(args []string, name string, v domain.OptionValue) []string {
	switch {
	case v.True():
		return append(args, "--"+name)
	case v.NonEmpty():
		return append(args, "--"+name, v.Text())
	default:
		return args
	}
}
