package matrix

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// OutputShape selects the top-level JSON shape of the emitted matrix.
type OutputShape string

const (
	OutputInclude OutputShape = "include" // {"include": [...]}
	OutputArray   OutputShape = "array"   // [...]
)

// IndentMode controls pretty-printing of the emitted matrix.
type IndentMode string

const (
	IndentAuto   IndentMode = "auto" // indent only when writing to a terminal
	IndentAlways IndentMode = "always"
	IndentNever  IndentMode = "never"
)

// Fixed rules shared by every profile.
const (
	GateMarker       = "gate"
	ExcludedVariant  = "graal-enterprise"
	DefaultMxVersion = "master"
)

// Tiers are the target tags that put a job in the gating matrix.
var Tiers = []string{"tier1", "tier2", "tier3"}

// ErrUnknownProfile is returned when a profile name is not defined.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile is a named filtering and output configuration.
type Profile struct {
	Name                 string
	DefaultPythonVersion string

	// NameContains lists substrings a job name must contain in addition
	// to GateMarker.
	NameContains []string

	// Runners restricts output to these runner labels; empty allows all.
	Runners []string

	Output OutputShape
	Indent IndentMode
}

// Validate checks the profile for unknown enum values and runners.
func (p Profile) Validate() error {
	switch p.Output {
	case OutputInclude, OutputArray:
	default:
		return fmt.Errorf("profile %q: invalid output %q: must be %q or %q", p.Name, p.Output, OutputInclude, OutputArray)
	}
	switch p.Indent {
	case IndentAuto, IndentAlways, IndentNever:
	default:
		return fmt.Errorf("profile %q: invalid indent %q: must be one of auto, always, never", p.Name, p.Indent)
	}
	if p.DefaultPythonVersion == "" {
		return fmt.Errorf("profile %q: default python version is required", p.Name)
	}
	for _, r := range p.Runners {
		if !KnownRunner(r) {
			return fmt.Errorf("profile %q: unknown runner %q", p.Name, r)
		}
	}
	return nil
}

// AllowsRunner reports whether jobs on runner pass the runner restriction.
func (p Profile) AllowsRunner(runner string) bool {
	return len(p.Runners) == 0 || slices.Contains(p.Runners, runner)
}

// Built-in profile names.
const (
	ProfileInclude = "include"
	ProfileArray   = "array"
)

// Profiles is a set of profiles keyed by name.
type Profiles map[string]Profile

// BuiltinProfiles returns the two shipped configurations: the
// include-object matrix used by the GitHub workflow, and the bare-array
// unittest matrix.
func BuiltinProfiles() Profiles {
	return Profiles{
		ProfileInclude: {
			Name:                 ProfileInclude,
			DefaultPythonVersion: "3.10",
			Output:               OutputInclude,
			Indent:               IndentAlways,
		},
		ProfileArray: {
			Name:                 ProfileArray,
			DefaultPythonVersion: "3.12",
			NameContains:         []string{"unittest"},
			Runners:              []string{"ubuntu-latest"},
			Output:               OutputArray,
			Indent:               IndentAuto,
		},
	}
}

// Lookup returns the named profile.
func (ps Profiles) Lookup(name string) (Profile, error) {
	p, ok := ps[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownProfile, name, ps.Names())
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
