package buildspec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentOrderAndDelete(t *testing.T) {
	env := NewEnvironment()
	env.SetString("MX_PYTHON", "python3.9")
	env.SetString("PATH", "/usr/bin")
	env.SetString("MX_PYTHON_VERSION", "3.9")

	assert.True(t, env.Delete("MX_PYTHON"))
	assert.False(t, env.Delete("MX_PYTHON"))
	assert.Equal(t, 2, env.Len())

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"PATH":"/usr/bin","MX_PYTHON_VERSION":"3.9"}`, string(data))
}

func TestEnvironmentSetKeepsPosition(t *testing.T) {
	env := NewEnvironment()
	env.SetString("A", "1")
	env.SetString("B", "2")
	env.SetString("A", "3")

	vars := env.Vars()
	require.Len(t, vars, 2)
	assert.Equal(t, "A", vars[0].Name)
	assert.JSONEq(t, `"3"`, string(vars[0].Value))
}

func TestEnvironmentMarshalNoHTMLEscape(t *testing.T) {
	env := NewEnvironment()
	env.Set("a<b", json.RawMessage(`"x&y"`))

	data, err := env.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a<b":"x&y"}`, string(data))
}

func TestEnvironmentEmpty(t *testing.T) {
	data, err := json.Marshal(NewEnvironment())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
