package matrix

import (
	"strings"

	"al.essio.dev/pkg/shellescape"

	"github.com/roach88/cimatrix/internal/buildspec"
)

// SkipReason explains why a job record produced no descriptor.
type SkipReason string

const (
	SkipNoTier          SkipReason = "no tier target"
	SkipNotGate         SkipReason = "name lacks gate marker"
	SkipNameFilter      SkipReason = "name lacks required substring"
	SkipUnknownPlatform SkipReason = "unrecognized platform"
	SkipRunnerFilter    SkipReason = "runner not allowed by profile"
	SkipExcludedVariant SkipReason = "excluded variant"
)

// Skip records a dropped job.
type Skip struct {
	Name   string
	Reason SkipReason
}

// Result is the outcome of an extraction.
type Result struct {
	Descriptors []Descriptor
	Skipped     []Skip
}

// Python3Home is the download that supplies the interpreter as an
// artifact. Its presence makes the MX_PYTHON* variables stale.
const Python3Home = "PYTHON3_HOME"

var stalePythonVars = []string{"MX_PYTHON", "MX_PYTHON_VERSION"}

// Extract filters the builds of spec and normalizes the survivors, in
// input order. It deletes stale MX_PYTHON* variables from the environment
// of jobs that download their interpreter; the deletion is visible both
// in the emitted descriptors and in spec itself.
func Extract(spec *buildspec.Spec, p Profile) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Descriptors: []Descriptor{}}
	for i := range spec.Builds {
		job := &spec.Builds[i]

		runner, reason := admit(job, p)
		if reason != "" {
			res.Skipped = append(res.Skipped, Skip{Name: job.Name, Reason: reason})
			continue
		}

		d := normalize(job, p, runner)

		text, err := d.Text()
		if err != nil {
			return nil, err
		}
		if strings.Contains(text, ExcludedVariant) {
			res.Skipped = append(res.Skipped, Skip{Name: job.Name, Reason: SkipExcludedVariant})
			continue
		}

		res.Descriptors = append(res.Descriptors, d)
	}
	return res, nil
}

// admit applies the inclusion predicates that do not need the normalized
// record and returns the resolved runner.
func admit(job *buildspec.Job, p Profile) (string, SkipReason) {
	if !job.HasTarget(Tiers...) {
		return "", SkipNoTier
	}
	if !strings.Contains(job.Name, GateMarker) {
		return "", SkipNotGate
	}
	runner, ok := ResolveRunner(job.Capabilities)
	if !ok {
		return "", SkipUnknownPlatform
	}
	for _, sub := range p.NameContains {
		if !strings.Contains(job.Name, sub) {
			return "", SkipNameFilter
		}
	}
	if !p.AllowsRunner(runner) {
		return "", SkipRunnerFilter
	}
	return runner, ""
}

func normalize(job *buildspec.Job, p Profile, runner string) Descriptor {
	if job.Environment == nil {
		job.Environment = buildspec.NewEnvironment()
	}

	mxVersion := DefaultMxVersion
	pythonVersion := p.DefaultPythonVersion
	var pythonPkgs, systemPkgs []string

	for _, pkg := range job.Packages {
		kind, name := ClassifyPackage(pkg.Key)
		switch kind {
		case KindPythonPin:
			pythonVersion = StripComparators(pkg.Version)
		case KindMxPin:
			mxVersion = StripComparators(pkg.Version)
		case KindPython:
			pythonPkgs = append(pythonPkgs, PackageToken(name, pkg.Version))
		default:
			systemPkgs = append(systemPkgs, PackageToken(name, pkg.Version))
		}
	}

	for _, dl := range job.Downloads {
		if dl.Name != Python3Home {
			continue
		}
		if v, ok := dl.Version(); ok {
			pythonVersion = v
		}
		for _, name := range stalePythonVars {
			job.Environment.Delete(name)
		}
	}

	return Descriptor{
		Name:           job.Name,
		MxVersion:      mxVersion,
		PythonVersion:  pythonVersion,
		OS:             runner,
		SetupSteps:     renderSteps(job.Setup),
		RunSteps:       renderSteps(job.Run),
		PythonPackages: strings.Join(pythonPkgs, " "),
		SystemPackages: strings.Join(systemPkgs, " "),
		Env:            job.Environment,
	}
}

// renderSteps shell-quotes every argument vector and joins them with "; ".
func renderSteps(cmds [][]string) string {
	parts := make([]string, len(cmds))
	for i, argv := range cmds {
		parts[i] = shellescape.QuoteCommand(argv)
	}
	return strings.Join(parts, "; ")
}
