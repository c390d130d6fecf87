package matrix

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cimatrix/internal/buildspec"
)

// renderFixture extracts testdata/buildspec.json with the named built-in
// profile. Regenerate golden files with:
//
//	go test ./internal/matrix -update
func renderFixture(t *testing.T, profile string, isTerminal bool) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "buildspec.json"))
	require.NoError(t, err)
	spec, err := buildspec.Decode(data)
	require.NoError(t, err)

	p, err := BuiltinProfiles().Lookup(profile)
	require.NoError(t, err)

	res, err := Extract(spec, p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, res.Descriptors, p, isTerminal))
	return buf.Bytes()
}

func TestWriteMatrixGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	t.Run("include_profile", func(t *testing.T) {
		// Always indented, even when not writing to a terminal.
		g.Assert(t, "include_profile", renderFixture(t, ProfileInclude, false))
	})
	t.Run("array_profile", func(t *testing.T) {
		g.Assert(t, "array_profile", renderFixture(t, ProfileArray, false))
	})
}

func TestWriteMatrixArrayIndentsOnTerminal(t *testing.T) {
	out := renderFixture(t, ProfileArray, true)
	assert.Contains(t, string(out), "[\n  {\n    \"name\": \"unittest-gate-linux\",")
}

func TestWriteMatrixEmpty(t *testing.T) {
	profiles := BuiltinProfiles()

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, nil, profiles[ProfileArray], false))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteMatrix(&buf, nil, profiles[ProfileInclude], false))
	assert.Equal(t, "{\n  \"include\": []\n}\n", buf.String())
}

func TestProfilePretty(t *testing.T) {
	tests := []struct {
		indent     IndentMode
		isTerminal bool
		want       bool
	}{
		{IndentAlways, false, true},
		{IndentNever, true, false},
		{IndentAuto, true, true},
		{IndentAuto, false, false},
	}

	for _, tt := range tests {
		p := Profile{Indent: tt.indent}
		assert.Equal(t, tt.want, p.Pretty(tt.isTerminal), "%s terminal=%v", tt.indent, tt.isTerminal)
	}
}
