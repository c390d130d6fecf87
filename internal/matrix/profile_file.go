package matrix

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk shape of a profile file:
//
//	profiles:
//	  nightly:
//	    default_python_version: "3.11"
//	    name_contains: [unittest]
//	    runners: [ubuntu-latest]
//	    output: array
//	    indent: never
//
// Unset fields inherit from the built-in profile of the same name, or
// from the "include" profile for new names.
type profileFile struct {
	Profiles map[string]profileEntry `yaml:"profiles" json:"profiles"`
}

type profileEntry struct {
	DefaultPythonVersion *string  `yaml:"default_python_version" json:"default_python_version"`
	NameContains         []string `yaml:"name_contains" json:"name_contains"`
	Runners              []string `yaml:"runners" json:"runners"`
	Output               *string  `yaml:"output" json:"output"`
	Indent               *string  `yaml:"indent" json:"indent"`
}

// LoadProfiles reads a YAML (.yaml, .yml) or CUE (.cue) profile file and
// returns the built-in profiles merged with the file's definitions.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	var pf profileFile
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("parsing profile file %s: %w", path, err)
		}
	case ".cue":
		if err := decodeCUE(path, data, &pf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("profile file %s: unsupported extension %q (want .yaml, .yml or .cue)", path, ext)
	}

	return mergeProfiles(BuiltinProfiles(), pf)
}

func decodeCUE(path string, data []byte, pf *profileFile) error {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return fmt.Errorf("compiling profile file %s: %w", path, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validating profile file %s: %w", path, err)
	}
	if err := v.Decode(pf); err != nil {
		return fmt.Errorf("decoding profile file %s: %w", path, err)
	}
	return nil
}

func mergeProfiles(base Profiles, pf profileFile) (Profiles, error) {
	out := make(Profiles, len(base)+len(pf.Profiles))
	for name, p := range base {
		out[name] = p
	}

	for name, entry := range pf.Profiles {
		p, ok := out[name]
		if !ok {
			p = base[ProfileInclude]
		}
		p.Name = name
		entry.apply(&p)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		out[name] = p
	}
	return out, nil
}

func (e profileEntry) apply(p *Profile) {
	if e.DefaultPythonVersion != nil {
		p.DefaultPythonVersion = *e.DefaultPythonVersion
	}
	if e.NameContains != nil {
		p.NameContains = e.NameContains
	}
	if e.Runners != nil {
		p.Runners = e.Runners
	}
	if e.Output != nil {
		p.Output = OutputShape(*e.Output)
	}
	if e.Indent != nil {
		p.Indent = IndentMode(*e.Indent)
	}
}
