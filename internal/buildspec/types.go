package buildspec

// Spec is a decoded build specification.
type Spec struct {
	Builds []Job
}

// Job is one raw entry of the "builds" array.
type Job struct {
	Name         string
	Targets      []string
	Capabilities []string // e.g. ["linux", "amd64"]

	// Environment is never nil after Decode.
	Environment *Environment

	Packages  []Package  // document order
	Downloads []Download // document order

	Setup [][]string // argument vectors
	Run   [][]string
}

// HasTarget reports whether any of the given tags appears in Targets.
func (j *Job) HasTarget(tags ...string) bool {
	for _, t := range j.Targets {
		for _, tag := range tags {
			if t == tag {
				return true
			}
		}
	}
	return false
}

// Package is one "packages" entry. Key may carry a group prefix such as
// "00:" or "pip:"; Version is the raw requirement string (e.g. "==1.2").
type Package struct {
	Key     string
	Version string
}

// Download is one "downloads" entry.
type Download struct {
	Name   string
	Fields map[string]string
}

// Version returns the "version" field of the download, if present.
func (d Download) Version() (string, bool) {
	v, ok := d.Fields["version"]
	return v, ok
}
