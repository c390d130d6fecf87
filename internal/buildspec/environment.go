package buildspec

import (
	"bytes"
	"encoding/json"
)

// EnvVar is a single environment entry. Value holds the raw JSON value so
// non-string values survive a round trip untouched.
type EnvVar struct {
	Name  string
	Value json.RawMessage
}

// Environment is an insertion-ordered environment mapping.
type Environment struct {
	vars []EnvVar
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{}
}

// Set adds or replaces a variable. A replaced variable keeps its position.
func (e *Environment) Set(name string, value json.RawMessage) {
	for i := range e.vars {
		if e.vars[i].Name == name {
			e.vars[i].Value = value
			return
		}
	}
	e.vars = append(e.vars, EnvVar{Name: name, Value: value})
}

// SetString adds or replaces a variable with a string value.
func (e *Environment) SetString(name, value string) {
	raw, _ := json.Marshal(value)
	e.Set(name, raw)
}

// Get returns the raw value of a variable.
func (e *Environment) Get(name string) (json.RawMessage, bool) {
	for _, v := range e.vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

// Delete removes a variable, reporting whether it was present.
func (e *Environment) Delete(name string) bool {
	for i, v := range e.vars {
		if v.Name == name {
			e.vars = append(e.vars[:i], e.vars[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of variables.
func (e *Environment) Len() int {
	return len(e.vars)
}

// Vars returns a copy of the variables in order.
func (e *Environment) Vars() []EnvVar {
	out := make([]EnvVar, len(e.vars))
	copy(out, e.vars)
	return out
}

// MarshalJSON renders the environment as a JSON object in insertion order.
func (e *Environment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if e != nil {
		for i, v := range e.vars {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := marshalNoEscape(v.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if len(v.Value) == 0 {
				buf.WriteString("null")
				continue
			}
			buf.Write(v.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
