// Package testutil holds helpers shared by tests that drive the CLI
// against a stand-in evaluator.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// FakeEvaluator writes an executable shell script with the given body and
// returns its path. It stands in for jsonnet: the spec path arrives as $1.
// Tests are skipped where no POSIX shell is available.
func FakeEvaluator(t testing.TB, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake evaluator needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-jsonnet")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// CatEvaluator returns an evaluator that prints the spec file unchanged,
// which is what jsonnet does for a plain JSON document.
func CatEvaluator(t testing.TB) string {
	t.Helper()
	return FakeEvaluator(t, `exec cat "$1"`)
}

// WriteSpec writes content to a fresh spec file and returns its path.
func WriteSpec(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ci.jsonnet")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
