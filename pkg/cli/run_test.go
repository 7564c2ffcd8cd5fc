package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchblue/cascade/pkg/changes"
	"github.com/marchblue/cascade/pkg/semver"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func fixtureRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "root",
  "private": true,
  "workspaces": ["packages/*"]
}
`)
	writeFile(t, filepath.Join(root, "packages", "core", "package.json"), `{
  "name": "core",
  "version": "1.0.0"
}
`)
	writeFile(t, filepath.Join(root, "packages", "app", "package.json"), `{
  "name": "app",
  "version": "2.0.0",
  "dependencies": {
    "core": "workspace:^"
  }
}
`)
	writeFile(t, filepath.Join(root, ".cascade", "add-feature.yaml"), `
bumps:
  core: minor
summary: Add a feature.
`)
	return root
}

func TestRunResolution(t *testing.T) {
	root := fixtureRepo(t)

	res, err := runResolution(root, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "1.1.0", res.Report.PrimaryBumps["core"])
	assert.Equal(t, "2.0.1", res.Report.CascadeBumps["app"])
	assert.Equal(t, []string{"Add a feature."}, res.Changes.Summaries["core"])

	// Preview only: nothing on disk moved.
	data, err := os.ReadFile(filepath.Join(root, "packages", "core", "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.0.0"`)
}

func TestRunResolution_BumpOverride(t *testing.T) {
	root := fixtureRepo(t)

	res, err := runResolution(root, []string{"core=major"}, "")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", res.Report.PrimaryBumps["core"])
}

func TestRunResolution_Snapshot(t *testing.T) {
	root := fixtureRepo(t)

	res, err := runResolution(root, nil, "canary")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0-canary.snapshot", res.Report.PrimaryBumps["core"])
}

func TestRunResolution_ConfigStrategy(t *testing.T) {
	root := fixtureRepo(t)
	writeFile(t, filepath.Join(root, ".cascade.yaml"), "strategy: unified\n")

	res, err := runResolution(root, nil, "")
	require.NoError(t, err)

	// Unified: one shared version from the highest current version.
	assert.Equal(t, "2.1.0", res.Report.PrimaryBumps["core"])
	assert.Equal(t, "2.1.0", res.Report.PrimaryBumps["app"])
}

func TestMergeOverrides(t *testing.T) {
	set := &changes.Set{Intents: map[string]semver.Intent{
		"core": semver.Patch(),
	}}
	require.NoError(t, mergeOverrides(set, []string{"core=major", "app=minor"}))
	assert.Equal(t, semver.Major(), set.Intents["core"])
	assert.Equal(t, semver.Minor(), set.Intents["app"])
}

func TestMergeOverrides_Invalid(t *testing.T) {
	set := &changes.Set{Intents: map[string]semver.Intent{}}
	assert.Error(t, mergeOverrides(set, []string{"core"}))
	assert.Error(t, mergeOverrides(set, []string{"=major"}))
	assert.Error(t, mergeOverrides(set, []string{"core=huge"}))
}

func TestMultiFlag(t *testing.T) {
	var m multiFlag
	require.NoError(t, m.Set("a=minor"))
	require.NoError(t, m.Set("b=patch"))
	assert.Equal(t, multiFlag{"a=minor", "b=patch"}, m)
}

func TestRenderReport(t *testing.T) {
	root := fixtureRepo(t)
	res, err := runResolution(root, nil, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	renderReport(&buf, res.Report)
	out := buf.String()
	assert.Contains(t, out, "Primary bumps:")
	assert.Contains(t, out, "core -> 1.1.0")
	assert.Contains(t, out, "Cascade bumps:")
	assert.Contains(t, out, "app -> 2.0.1")
	assert.Contains(t, out, "Reference updates:")
	assert.Contains(t, out, `"workspace:^" unchanged`)
}
