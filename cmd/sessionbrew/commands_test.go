package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is a library folder plus a config pointing at it
type testEnv struct {
	dir     string
	library string
	config  string
}

func newTestEnv(t *testing.T, cacheEnabled bool) testEnv {
	t.Helper()
	dir := t.TempDir()
	lib := filepath.Join(dir, "library")

	files := []string{
		"Welcome.pptx",
		"Week 1/Kickoff.pptx",
		"Week 1/Kickoff_NL.pptx",
		"Week 1/Agenda.pdf",
		"Week 1/images/logo.png",
		"Week 2/Budget.xlsx",
	}
	for _, f := range files {
		path := filepath.Join(lib, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}

	config := filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf(`library:
  path: %q
logging:
  file: %q
  level: debug
cache:
  enabled: %t
  dir: %q
`, lib, filepath.Join(dir, "sessionbrew.log"), cacheEnabled, filepath.Join(dir, "cache"))
	require.NoError(t, os.WriteFile(config, []byte(yaml), 0644))

	return testEnv{dir: dir, library: lib, config: config}
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLibraryTree(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "library", "tree")
	require.NoError(t, err)

	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "Kickoff.pptx")
	assert.Contains(t, out, "Budget.xlsx")
	assert.NotContains(t, out, "Kickoff_NL.pptx")
	assert.NotContains(t, out, "logo.png")
}

func TestLibraryResolveFolder(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "library", "resolve", filepath.Join(env.library, "Week 1"))
	require.NoError(t, err)

	assert.Contains(t, out, "Kickoff.pptx")
	assert.Contains(t, out, "Agenda.pdf")
	assert.NotContains(t, out, "Kickoff_NL.pptx")
}

func TestLibraryResolveMissingPath(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "library", "resolve", filepath.Join(env.library, "gone"))
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to add")
}

func TestLibraryFind(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "library", "find", "kick", "--files")
	require.NoError(t, err)
	assert.Contains(t, out, "Kickoff.pptx")
	assert.Contains(t, out, "Week 1")

	out, err = env.run(t, "library", "find", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No matches for "zzz"`)
}

func TestLibraryFindRequiresQuery(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.run(t, "library", "find")
	require.Error(t, err)
}

func TestCacheStatsAfterScan(t *testing.T) {
	env := newTestEnv(t, true)

	_, err := env.run(t, "library", "tree")
	require.NoError(t, err)

	out, err := env.run(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Persistent: yes")
	assert.Contains(t, out, "trees")

	out, err = env.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared")

	_, err = env.run(t, "cache", "clear", "--all")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(env.dir, "cache"))
}

func TestCacheStatsMemoryOnly(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "memory only")
	assert.Contains(t, out, "Cache is empty")
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t, false)

	out, err := env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, env.library)
	assert.Contains(t, out, "Introduction")
	assert.Contains(t, out, "(system default)")
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t, false)
	target := filepath.Join(env.dir, "fresh", "config.yaml")

	out, err := env.run(t, "config", "init", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+target)
	assert.FileExists(t, target)

	_, err = env.run(t, "config", "init", target)
	require.Error(t, err)

	_, err = env.run(t, "config", "init", target, "--force")
	require.NoError(t, err)
}
