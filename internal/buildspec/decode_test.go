package buildspec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFullRecord(t *testing.T) {
	doc := `{
		"builds": [{
			"name": "unittest-gate-linux",
			"targets": ["tier1", "daily"],
			"capabilities": ["linux", "amd64"],
			"environment": {"B": "2", "A": "1", "N": 3},
			"packages": {"mx": "==1.2.3", "00:gcc": "==9", "pip:pytest": "==7.0"},
			"downloads": {"PYTHON3_HOME": {"name": "python", "version": "3.9"}},
			"setup": [["echo", "hi"]],
			"run": [["pytest", "-v"], []]
		}]
	}`

	spec, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, spec.Builds, 1)

	job := spec.Builds[0]
	assert.Equal(t, "unittest-gate-linux", job.Name)
	assert.Equal(t, []string{"tier1", "daily"}, job.Targets)
	assert.Equal(t, []string{"linux", "amd64"}, job.Capabilities)
	assert.Equal(t, []Package{
		{Key: "mx", Version: "==1.2.3"},
		{Key: "00:gcc", Version: "==9"},
		{Key: "pip:pytest", Version: "==7.0"},
	}, job.Packages)
	require.Len(t, job.Downloads, 1)
	version, ok := job.Downloads[0].Version()
	assert.True(t, ok)
	assert.Equal(t, "3.9", version)
	assert.Equal(t, [][]string{{"echo", "hi"}}, job.Setup)
	assert.Equal(t, [][]string{{"pytest", "-v"}, {}}, job.Run)

	// Document order is preserved, including non-string values.
	envJSON, err := json.Marshal(job.Environment)
	require.NoError(t, err)
	assert.Equal(t, `{"B":"2","A":"1","N":3}`, string(envJSON))
}

func TestDecodeOptionalFieldsDefault(t *testing.T) {
	spec, err := Decode([]byte(`{"builds": [{"name": "bare"}]}`))
	require.NoError(t, err)
	require.Len(t, spec.Builds, 1)

	job := spec.Builds[0]
	assert.Empty(t, job.Targets)
	assert.Empty(t, job.Packages)
	assert.Empty(t, job.Downloads)
	require.NotNil(t, job.Environment)
	assert.Equal(t, 0, job.Environment.Len())
}

func TestDecodeNoBuilds(t *testing.T) {
	spec, err := Decode([]byte(`{"other": 1}`))
	require.NoError(t, err)
	assert.Empty(t, spec.Builds)
}

func TestDecodeDuplicatePackageKeys(t *testing.T) {
	spec, err := Decode([]byte(`{"builds": [{"name": "x", "packages": {"a": "1", "b": "2", "a": "3"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, []Package{{Key: "a", Version: "3"}, {Key: "b", Version: "2"}}, spec.Builds[0].Packages)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"truncated", `{"builds": [`},
		{"not_json", `builds:`},
		{"top_level_array", `[]`},
		{"builds_not_array", `{"builds": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestDecodeMissingNameIsFatal(t *testing.T) {
	doc := `{"builds": [
		{"name": "first-gate"},
		{"targets": ["tier1"]},
		{"name": "third-gate"}
	]}`

	spec, err := Decode([]byte(doc))
	require.Error(t, err)
	assert.Nil(t, spec)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, 1, fieldErr.Index)
	assert.Equal(t, "name", fieldErr.Field)
	assert.Contains(t, err.Error(), "builds[1]")
}

func TestDecodeShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"name_not_string", `{"builds": [{"name": 1}]}`, "name"},
		{"targets_not_array", `{"builds": [{"name": "a", "targets": "tier1"}]}`, "targets"},
		{"packages_not_object", `{"builds": [{"name": "a", "packages": []}]}`, "packages"},
		{"run_entry_not_argv", `{"builds": [{"name": "a", "run": ["make"]}]}`, "run[0]"},
		{"download_not_object", `{"builds": [{"name": "a", "downloads": {"JDK": "17"}}]}`, "downloads.JDK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr), "got %v", err)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestJobHasTarget(t *testing.T) {
	job := Job{Targets: []string{"daily", "tier2"}}
	assert.True(t, job.HasTarget("tier1", "tier2", "tier3"))
	assert.False(t, job.HasTarget("tier1"))
}
