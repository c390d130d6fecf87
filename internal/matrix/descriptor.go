package matrix

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cimatrix/internal/buildspec"
)

// Descriptor is one normalized CI job. Field order is the emitted key order.
type Descriptor struct {
	Name           string                 `json:"name"`
	MxVersion      string                 `json:"mx_version"`
	PythonVersion  string                 `json:"python_version"`
	OS             string                 `json:"os,omitempty"`
	SetupSteps     string                 `json:"setup_steps"`
	RunSteps       string                 `json:"run_steps"`
	PythonPackages string                 `json:"python_packages"`
	SystemPackages string                 `json:"system_packages"`
	Env            *buildspec.Environment `json:"env"`
}

// Text returns the textual form of the whole descriptor that the
// excluded-variant check searches: compact JSON, no HTML escaping, NFC
// normalized.
func (d *Descriptor) Text() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return "", fmt.Errorf("rendering descriptor %q: %w", d.Name, err)
	}
	return norm.NFC.String(string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))), nil
}
