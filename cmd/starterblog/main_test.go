package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eringen/starterblog"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "starterblog dev\n", out)
}

func TestNewCommandScaffoldsBuildableSite(t *testing.T) {
	today = func() string { return "2024-05-06" }
	t.Cleanup(func() { today = defaultToday })

	dir := filepath.Join(t.TempDir(), "my-blog")
	out, err := execute(t, "new", dir, "--author", "Jane", "--twitter", "jane")
	require.NoError(t, err)
	assert.Contains(t, out, "Done! Next steps:")

	for _, name := range []string{
		"config.yaml", ".env.example", "static/robots.txt",
		"content/blog/hello-world/index.md", placeholderAvatar,
	} {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(name)))
	}

	cfgBytes, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfgBytes), `title: "My Blog"`)
	assert.Contains(t, string(cfgBytes), `twitter: "jane"`)

	// The scaffold uses paths relative to the site dir.
	t.Chdir(dir)
	cfg, err := starterblog.LoadConfig("", zap.NewNop())
	require.NoError(t, err)
	_, err = starterblog.NewBuilder(cfg, zap.NewNop()).Build(t.Context())
	require.NoError(t, err)

	post, err := os.ReadFile(filepath.Join("public", "hello-world", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(post), "May 06, 2024")
	assert.Contains(t, string(post), `href="https://twitter.com/jane"`)
}

func TestNewCommandRefusesExistingDir(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "new", dir)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "already exists"), err.Error())
}

func TestBuildCommandRequiresConfig(t *testing.T) {
	_, err := execute(t, "build", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
