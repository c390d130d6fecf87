package buildspec

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformed is returned when the document is not a JSON object.
var ErrMalformed = errors.New("malformed build specification")

// FieldError reports a job record whose shape does not match what the
// evaluator is expected to produce.
type FieldError struct {
	Index  int    // position in "builds"
	Field  string // offending field, e.g. "name" or "packages"
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("builds[%d]: field %q %s", e.Index, e.Field, e.Reason)
}

// Decode parses a build specification document.
func Decode(data []byte) (*Spec, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	spec := &Spec{}
	builds := root.Get("builds")
	if !builds.Exists() {
		return spec, nil
	}
	if !builds.IsArray() {
		return nil, fmt.Errorf("%w: \"builds\" must be an array", ErrMalformed)
	}

	var decodeErr error
	builds.ForEach(func(_, value gjson.Result) bool {
		job, err := decodeJob(len(spec.Builds), value)
		if err != nil {
			decodeErr = err
			return false
		}
		spec.Builds = append(spec.Builds, *job)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return spec, nil
}

func decodeJob(index int, v gjson.Result) (*Job, error) {
	if !v.IsObject() {
		return nil, &FieldError{Index: index, Field: "builds", Reason: "entry must be an object"}
	}

	name := v.Get("name")
	if !name.Exists() {
		return nil, &FieldError{Index: index, Field: "name", Reason: "is required"}
	}
	if name.Type != gjson.String {
		return nil, &FieldError{Index: index, Field: "name", Reason: "must be a string"}
	}

	job := &Job{
		Name:        name.Str,
		Environment: NewEnvironment(),
	}

	var err error
	if job.Targets, err = stringList(index, "targets", v.Get("targets")); err != nil {
		return nil, err
	}
	if job.Capabilities, err = stringList(index, "capabilities", v.Get("capabilities")); err != nil {
		return nil, err
	}
	if job.Setup, err = commandList(index, "setup", v.Get("setup")); err != nil {
		return nil, err
	}
	if job.Run, err = commandList(index, "run", v.Get("run")); err != nil {
		return nil, err
	}

	if env := v.Get("environment"); env.Exists() {
		if !env.IsObject() {
			return nil, &FieldError{Index: index, Field: "environment", Reason: "must be an object"}
		}
		env.ForEach(func(key, value gjson.Result) bool {
			job.Environment.Set(key.String(), []byte(value.Raw))
			return true
		})
	}

	if pkgs := v.Get("packages"); pkgs.Exists() {
		if !pkgs.IsObject() {
			return nil, &FieldError{Index: index, Field: "packages", Reason: "must be an object"}
		}
		pkgs.ForEach(func(key, value gjson.Result) bool {
			job.Packages = setPackage(job.Packages, key.String(), value.String())
			return true
		})
	}

	if dls := v.Get("downloads"); dls.Exists() {
		if !dls.IsObject() {
			return nil, &FieldError{Index: index, Field: "downloads", Reason: "must be an object"}
		}
		dls.ForEach(func(key, value gjson.Result) bool {
			if !value.IsObject() {
				err = &FieldError{Index: index, Field: "downloads." + key.String(), Reason: "must be an object"}
				return false
			}
			dl := Download{Name: key.String(), Fields: map[string]string{}}
			value.ForEach(func(k, fv gjson.Result) bool {
				dl.Fields[k.String()] = fv.String()
				return true
			})
			job.Downloads = setDownload(job.Downloads, dl)
			return true
		})
		if err != nil {
			return nil, err
		}
	}

	return job, nil
}

// setPackage mirrors JSON object semantics for duplicate keys: the last
// value wins, the first position is kept.
func setPackage(pkgs []Package, key, version string) []Package {
	for i := range pkgs {
		if pkgs[i].Key == key {
			pkgs[i].Version = version
			return pkgs
		}
	}
	return append(pkgs, Package{Key: key, Version: version})
}

func setDownload(dls []Download, dl Download) []Download {
	for i := range dls {
		if dls[i].Name == dl.Name {
			dls[i] = dl
			return dls
		}
	}
	return append(dls, dl)
}

func stringList(index int, field string, v gjson.Result) ([]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, &FieldError{Index: index, Field: field, Reason: "must be an array"}
	}
	var out []string
	for _, elem := range v.Array() {
		out = append(out, elem.String())
	}
	return out, nil
}

func commandList(index int, field string, v gjson.Result) ([][]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, &FieldError{Index: index, Field: field, Reason: "must be an array of commands"}
	}
	var out [][]string
	for i, cmd := range v.Array() {
		if !cmd.IsArray() {
			return nil, &FieldError{
				Index:  index,
				Field:  fmt.Sprintf("%s[%d]", field, i),
				Reason: "must be an argument vector",
			}
		}
		argv := []string{}
		for _, arg := range cmd.Array() {
			argv = append(argv, arg.String())
		}
		out = append(out, argv)
	}
	return out, nil
}
