package matrix

import (
	"encoding/json"
	"fmt"
	"io"
)

type includeMatrix struct {
	Include []Descriptor `json:"include"`
}

// WriteMatrix encodes descriptors in the profile's output shape.
// isTerminal decides indentation for IndentAuto profiles.
func WriteMatrix(w io.Writer, descriptors []Descriptor, p Profile, isTerminal bool) error {
	if descriptors == nil {
		descriptors = []Descriptor{}
	}

	var doc any = descriptors
	if p.Output == OutputInclude {
		doc = includeMatrix{Include: descriptors}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if p.Pretty(isTerminal) {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding matrix: %w", err)
	}
	return nil
}

// Pretty reports whether output should be indented.
func (p Profile) Pretty(isTerminal bool) bool {
	switch p.Indent {
	case IndentAlways:
		return true
	case IndentNever:
		return false
	default:
		return isTerminal
	}
}
