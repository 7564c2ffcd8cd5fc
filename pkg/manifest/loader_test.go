package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeWorkspaceFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "fixture-root",
  "private": true,
  "workspaces": ["packages/*"]
}
`)
	writeFile(t, filepath.Join(root, "packages", "core", "package.json"), `{
  "name": "@fixture/core",
  "version": "1.2.0",
  "dependencies": {
    "lodash": "^4.17.0"
  }
}
`)
	writeFile(t, filepath.Join(root, "packages", "app", "package.json"), `{
  "name": "@fixture/app",
  "version": "2.0.0",
  "dependencies": {
    "@fixture/core": "workspace:^"
  },
  "devDependencies": {
    "@fixture/utils": "workspace:*"
  }
}
`)
	writeFile(t, filepath.Join(root, "packages", "utils", "package.json"), `{
  "name": "@fixture/utils",
  "version": "0.3.0"
}
`)
	return root
}

func TestLoadWorkspace(t *testing.T) {
	root := writeWorkspaceFixture(t)

	ws, err := NewLoader(nil).LoadWorkspace(context.Background(), root)
	require.NoError(t, err)

	assert.True(t, ws.Context.IsWorkspace())
	assert.Equal(t, []string{"@fixture/app", "@fixture/core", "@fixture/utils"},
		ws.Context.Members())
	assert.Empty(t, ws.Diagnostics)

	require.Len(t, ws.Packages, 3)
	assert.Equal(t, graph.Package{Name: "@fixture/app", Version: "2.0.0"}, ws.Packages[0])

	// Edges cover every dependency section; internal/external split is the
	// graph builder's job, not the loader's.
	require.Len(t, ws.Edges, 3)
	g, err := graph.Build(ws.Packages, ws.Edges)
	require.NoError(t, err)
	assert.Len(t, g.Edges(), 2)
	assert.Len(t, g.ExternalEdges(), 1)

	deps := g.DependenciesOf("@fixture/app")
	require.Len(t, deps, 2)
	assert.Equal(t, source.WorkspaceCompatible{}, deps[0].Source)
	assert.Equal(t, graph.KindProduction, deps[0].Kind)
	assert.Equal(t, source.WorkspaceAny{}, deps[1].Source)
	assert.Equal(t, graph.KindDevelopment, deps[1].Kind)
}

func TestLoadWorkspace_SinglePackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "solo",
  "version": "1.0.0",
  "dependencies": {
    "left-pad": "^1.3.0"
  }
}
`)

	ws, err := NewLoader(nil).LoadWorkspace(context.Background(), root)
	require.NoError(t, err)

	assert.False(t, ws.Context.IsWorkspace())
	require.Len(t, ws.Packages, 1)
	assert.Equal(t, "solo", ws.Packages[0].Name)
	require.Len(t, ws.Edges, 1)
	assert.Equal(t, "left-pad", ws.Edges[0].Dependency)
}

func TestLoadWorkspace_BadSpecifierIsDiagnostic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "root",
  "workspaces": ["packages/*"]
}
`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{
  "name": "a",
  "version": "1.0.0",
  "dependencies": {
    "broken": "not a range",
    "fine": "^1.0.0"
  }
}
`)

	ws, err := NewLoader(nil).LoadWorkspace(context.Background(), root)
	require.NoError(t, err)

	// The bad specifier is reported but does not abort the load; the good
	// edge survives.
	require.Len(t, ws.Diagnostics, 1)
	assert.Contains(t, ws.Diagnostics[0], "broken")
	require.Len(t, ws.Edges, 1)
	assert.Equal(t, "fine", ws.Edges[0].Dependency)
}

func TestLoadWorkspace_MissingManifest(t *testing.T) {
	_, err := NewLoader(nil).LoadWorkspace(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestLoadWorkspace_MalformedMemberAborts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "root",
  "workspaces": ["packages/*"]
}
`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{not json`)

	_, err := NewLoader(nil).LoadWorkspace(context.Background(), root)
	assert.Error(t, err)
}

func TestLoadWorkspace_GlobSkipsNonPackages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "root",
  "workspaces": ["packages/*"]
}
`)
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), `{
  "name": "a",
  "version": "1.0.0"
}
`)
	// A directory without a manifest and a plain file both match the glob
	// but are not workspace members.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "packages", "empty"), 0755))
	writeFile(t, filepath.Join(root, "packages", "README.md"), "docs")

	ws, err := NewLoader(nil).LoadWorkspace(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ws.Context.Members())
}
