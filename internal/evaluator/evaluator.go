// Package evaluator runs the configuration-language evaluator that turns a
// CI spec file into a JSON build specification.
package evaluator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Evaluator produces a JSON build specification from a spec file.
type Evaluator interface {
	Evaluate(ctx context.Context, specPath string) ([]byte, error)
}

// ErrEmptyOutput is returned when the evaluator exits cleanly without
// printing anything.
var ErrEmptyOutput = errors.New("evaluator produced no output")

// Error describes a failed evaluator run.
type Error struct {
	Binary   string
	SpecPath string
	Stderr   string // trimmed stderr of the child, if any
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Binary, e.SpecPath, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the child's exit status, or -1 if it did not exit
// normally (not found, killed by a signal).
func (e *Error) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Exec runs an evaluator binary as `<Binary> <specPath>` and returns its
// standard output. jsonnet is invoked this way.
type Exec struct {
	Binary string
}

// Evaluate runs the binary and waits for it to exit.
func (e *Exec) Evaluate(ctx context.Context, specPath string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.Binary, specPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &Error{
			Binary:   e.Binary,
			SpecPath: specPath,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	if stdout.Len() == 0 {
		return nil, &Error{
			Binary:   e.Binary,
			SpecPath: specPath,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      ErrEmptyOutput,
		}
	}
	return stdout.Bytes(), nil
}
