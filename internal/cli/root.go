package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cimatrix/internal/buildspec"
	"github.com/roach88/cimatrix/internal/evaluator"
	"github.com/roach88/cimatrix/internal/matrix"
)

// RootOptions holds the command's flags.
type RootOptions struct {
	Verbose       bool
	Profile       string
	ProfileFile   string
	DefaultPython string
	RequireName   []string
	Runners       []string
	Indent        string
}

const usageLine = "<evaluator-binary-path> <spec-file-path>"

// NewRootCommand creates the cimatrix command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cimatrix [flags] " + usageLine,
		Short: "Extract a CI job matrix from a build specification",
		Long: `Evaluate a CI spec file with an external evaluator (e.g. jsonnet) and
print the gate jobs it defines as a JSON matrix for a CI orchestrator.

Only jobs targeting tier1, tier2 or tier3 whose name contains "gate" and
whose capabilities resolve to a known runner are emitted.

Example:
  cimatrix jsonnet ci.jsonnet
  cimatrix --profile array jsonnet ci.jsonnet`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true, // usage is printed for argument errors only
		SilenceErrors: true, // main reports errors
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s %s\n", cmd.Name(), usageLine)
				return NewExitError(ExitFailure, fmt.Sprintf("expected 2 arguments, got %d", len(args)))
			}
			return runExtract(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log evaluation and filtering decisions to stderr")
	cmd.Flags().StringVar(&opts.Profile, "profile", matrix.ProfileInclude, "matrix profile (include|array, or one from --profile-file)")
	cmd.Flags().StringVar(&opts.ProfileFile, "profile-file", "", "YAML or CUE file defining additional profiles")
	cmd.Flags().StringVar(&opts.DefaultPython, "default-python", "", "override the profile's default python version")
	cmd.Flags().StringArrayVar(&opts.RequireName, "require-name", nil, "extra substring job names must contain (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Runners, "runner", nil, "restrict output to this runner (repeatable)")
	cmd.Flags().StringVar(&opts.Indent, "indent", "", "override indentation (auto|always|never)")

	return cmd
}

// resolveProfile selects the profile and applies flag overrides.
func resolveProfile(opts *RootOptions) (matrix.Profile, error) {
	profiles := matrix.BuiltinProfiles()
	if opts.ProfileFile != "" {
		var err error
		profiles, err = matrix.LoadProfiles(opts.ProfileFile)
		if err != nil {
			return matrix.Profile{}, err
		}
	}

	p, err := profiles.Lookup(opts.Profile)
	if err != nil {
		return matrix.Profile{}, err
	}
	if opts.DefaultPython != "" {
		p.DefaultPythonVersion = opts.DefaultPython
	}
	if len(opts.RequireName) > 0 {
		p.NameContains = append(append([]string{}, p.NameContains...), opts.RequireName...)
	}
	if len(opts.Runners) > 0 {
		p.Runners = opts.Runners
	}
	if opts.Indent != "" {
		p.Indent = matrix.IndentMode(opts.Indent)
	}
	return p, p.Validate()
}

func runExtract(opts *RootOptions, evaluatorBin, specPath string, cmd *cobra.Command) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	profile, err := resolveProfile(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "resolving profile", err)
	}
	logger.Debug("using profile", "profile", profile.Name, "python", profile.DefaultPythonVersion,
		"name_contains", profile.NameContains, "runners", profile.Runners)

	var ev evaluator.Evaluator = &evaluator.Exec{Binary: evaluatorBin}
	logger.Debug("evaluating build specification", "evaluator", evaluatorBin, "spec", specPath)
	data, err := ev.Evaluate(cmd.Context(), specPath)
	if err != nil {
		return WrapExitError(ExitFailure, "evaluating build specification", err)
	}

	spec, err := buildspec.Decode(data)
	if err != nil {
		return WrapExitError(ExitFailure, "decoding build specification", err)
	}
	logger.Debug("decoded build specification", "builds", len(spec.Builds))

	res, err := matrix.Extract(spec, profile)
	if err != nil {
		return WrapExitError(ExitFailure, "extracting matrix", err)
	}
	for _, skip := range res.Skipped {
		logger.Debug("skipped job", "job", skip.Name, "reason", string(skip.Reason))
	}
	logger.Debug("extracted matrix", "jobs", len(res.Descriptors), "skipped", len(res.Skipped))

	// Render fully before writing so a failure leaves stdout empty.
	var buf bytes.Buffer
	out := cmd.OutOrStdout()
	if err := matrix.WriteMatrix(&buf, res.Descriptors, profile, isTerminal(out)); err != nil {
		return WrapExitError(ExitFailure, "writing matrix", err)
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return WrapExitError(ExitFailure, "writing matrix", err)
	}
	return nil
}
