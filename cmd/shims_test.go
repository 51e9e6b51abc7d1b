package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShimDryRun(t *testing.T) {
	tests := []struct {
		name string
		shim shim
		want string
	}{
		{"install", installShim, "Installing dependencies...\ngo mod download\n"},
		{"test", testShim, "Running tests...\ngo test ./... -cover\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.NoError(t, tt.shim.run(context.Background(), &stdout, &stderr, true))
			assert.Equal(t, tt.want, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestShimRunFailure(t *testing.T) {
	broken := shim{banner: "Running...", name: "trustscore-command-that-does-not-exist", args: []string{"x"}}
	var stdout, stderr bytes.Buffer
	err := broken.run(context.Background(), &stdout, &stderr, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trustscore-command-that-does-not-exist x")
	assert.Equal(t, "Running...\n", stdout.String())
}

func TestRootRequiresInput(t *testing.T) {
	err := rootCmd.PreRunE(rootCmd, nil)
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Equal(t, "No command or URLs provided", err.Error())
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"score", "install", "test", "metrics", "history", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	sub := map[string]bool{}
	for _, c := range historyCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, want := range []string{"status", "export", "clear", "migrate"} {
		assert.True(t, sub[want], "missing history command %s", want)
	}
}

func TestVersionOutput(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	text := out.String()
	assert.Contains(t, text, "trustscore CLI")
	assert.Contains(t, text, "Metrics:    8 registered")
	assert.Contains(t, text, "Plan:       8 operationalizations (total weight 1.00)")
	assert.Contains(t, text, "Thresholds: metric 0.50, net score 0.50")
}
