package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdarder/modular/tests/testutil"
)

func TestValidateCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)

	cmd := exec.Command("go", "run", "./cmd/modular", "validate",
		"--file", "fixtures/declarations-sample.yaml",
		"--allow-override",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "validated: 2 modules, 3 providers")
}

func TestValidateCommandE2EBrokenDeclarations(t *testing.T) {
	root := testutil.RepoRoot(t)

	// Build the binary and run it directly: `go run` swallows the
	// child process's exit code, which this test asserts on.
	bin := filepath.Join(t.TempDir(), "modular")
	build := exec.Command("go", "build", "-o", bin, "./cmd/modular")
	build.Dir = root
	build.Env = append(os.Environ(), "GO111MODULE=on")
	buildOut, buildErr := build.CombinedOutput()
	require.NoError(t, buildErr, string(buildOut))

	cmd := exec.Command(bin, "validate",
		"--file", "fixtures/declarations-broken.yaml",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	require.Contains(t, string(out), "overrides resource 'retries' with type 'str'")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.ExitCode())
}

func TestGraphCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)

	cmd := exec.Command("go", "run", "./cmd/modular", "graph",
		"--file", "fixtures/declarations-sample.yaml",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "settings <- tuned_settings")
	require.Contains(t, string(out), "storage <- default_storage")
}
