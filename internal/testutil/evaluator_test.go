package testutil

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatEvaluatorEchoesSpec(t *testing.T) {
	bin := CatEvaluator(t)
	spec := WriteSpec(t, `{"builds": []}`)

	out, err := exec.Command(bin, spec).Output()
	require.NoError(t, err)
	assert.Equal(t, `{"builds": []}`, string(out))
}

func TestFakeEvaluatorExitStatus(t *testing.T) {
	bin := FakeEvaluator(t, "exit 4")

	err := exec.Command(bin, "ci.jsonnet").Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.ExitCode())
}

func TestFakeEvaluatorIsExecutable(t *testing.T) {
	info, err := os.Stat(FakeEvaluator(t, "true"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100)
}
