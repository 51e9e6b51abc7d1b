//go:build basic || database

// Package integration contains end-to-end tests for the trustscore binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a trustscore binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

const widgetsURL = "https://github.com/acme/widgets"

// contextFixture scores widgetsURL without any network access.
const contextFixture = `
https://github.com/acme/widgets:
  license: MIT
  ramp:
    likes_norm: 0.5
    recency_norm: 1
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the trustscore binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "trustscore-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "trustscore")
		buildCmd := exec.Command("go", "build", "-o", binPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build trustscore: %v", err))
		}

		sharedBinaryPath = binPath
	})

	return sharedBinaryPath
}

// writeContextFile writes contextFixture to a temp file and returns its path.
func writeContextFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contexts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contextFixture), 0o644))
	return path
}

// runTrustscore runs the binary in a temp working directory with env added
// to the current environment.
func runTrustscore(t *testing.T, env []string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), env...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), outBuf.String(), errBuf.String())
	}
	return outBuf.String(), errBuf.String(), err
}
