package resolve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/semver"
	"github.com/marchblue/cascade/pkg/source"
	"github.com/marchblue/cascade/pkg/workspace"
)

func mkGraph(t *testing.T, packages []graph.Package, edges []graph.Edge) (*graph.Graph, workspace.Context) {
	t.Helper()
	g, err := graph.Build(packages, edges)
	require.NoError(t, err)
	names := make([]string, 0, len(packages))
	for _, p := range packages {
		names = append(names, p.Name)
	}
	return g, workspace.Detect(names)
}

func dep(consumer, dependency string) graph.Edge {
	return graph.Edge{
		Consumer:   consumer,
		Dependency: dependency,
		Source:     source.RegistrySemver{Range: "^1.0.0"},
		Kind:       graph.KindProduction,
	}
}

func TestPropagate_IndependentChain(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{
			{Name: "a", Version: "1.0.0"},
			{Name: "b", Version: "1.0.0"},
			{Name: "c", Version: "1.0.0"},
		},
		[]graph.Edge{dep("b", "a"), dep("c", "b")},
	)

	engine := NewEngine(nil)
	report := engine.Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.Minor()},
		Independent(), DefaultConfig())

	assert.Equal(t, map[string]string{"a": "1.1.0"}, report.PrimaryBumps)
	assert.Equal(t, map[string]string{"b": "1.0.1", "c": "1.0.1"}, report.CascadeBumps)
	assert.Equal(t, []string{"a", "b", "c"}, report.AffectedPackages)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.NotEmpty(t, report.RunID)

	// Registry-range references to bumped internal packages get pinned.
	require.Len(t, report.ReferenceUpdates, 2)
	assert.Equal(t, ReferenceUpdate{
		Package: "b", Dependency: "a",
		OldRef: "^1.0.0", NewRef: "1.1.0",
		Kind: UpdateFixedVersion,
	}, report.ReferenceUpdates[0])
	assert.Equal(t, ReferenceUpdate{
		Package: "c", Dependency: "b",
		OldRef: "^1.0.0", NewRef: "1.0.1",
		Kind: UpdateFixedVersion,
	}, report.ReferenceUpdates[1])
}

func TestPropagate_MinimumDependencyBump(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{{Name: "a", Version: "1.0.0"}, {Name: "b", Version: "1.0.0"}},
		[]graph.Edge{dep("b", "a")},
	)

	cfg := Config{MinimumDependencyBump: semver.Minor()}
	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.Patch()}, Independent(), cfg)

	assert.Equal(t, "1.0.1", report.PrimaryBumps["a"])
	assert.Equal(t, "1.1.0", report.CascadeBumps["b"])
}

// A numeric cascade bump outranks a snapshot primary on the same package.
func TestPropagate_NumericBeatsSnapshot(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{{Name: "a", Version: "1.0.0"}, {Name: "b", Version: "1.0.0"}},
		[]graph.Edge{dep("a", "b")},
	)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{
			"a": semver.Snapshot("canary"),
			"b": semver.Minor(),
		},
		Independent(), DefaultConfig())

	assert.Equal(t, "1.1.0", report.PrimaryBumps["b"])
	assert.Equal(t, "1.0.1", report.PrimaryBumps["a"], "cascade patch outranks the snapshot intent")
	assert.Empty(t, report.CascadeBumps)
}

func TestPropagate_SnapshotVersion(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{{Name: "a", Version: "1.2.3"}, {Name: "b", Version: "1.0.0"}},
		[]graph.Edge{dep("b", "a")},
	)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.Snapshot("canary")},
		Independent(), DefaultConfig())

	assert.Equal(t, "1.2.3-canary.snapshot", report.PrimaryBumps["a"])
	assert.Equal(t, "1.0.1", report.CascadeBumps["b"])
}

func TestPropagate_CycleTerminatesAndReports(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{{Name: "a", Version: "1.0.0"}, {Name: "b", Version: "1.0.0"}},
		[]graph.Edge{dep("a", "b"), dep("b", "a")},
	)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.Minor()},
		Independent(), DefaultConfig())

	// Production cycle is an error diagnostic, but resolution still runs.
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "a -> b -> a")
	assert.Equal(t, "1.1.0", report.PrimaryBumps["a"])
	assert.Equal(t, "1.0.1", report.CascadeBumps["b"])
	assert.NotContains(t, report.CascadeBumps, "a", "the seed is never cascade-bumped again")
}

func TestPropagate_MaxDepth(t *testing.T) {
	// p1 depends on p0, p2 on p1, ... p9 on p8.
	var packages []graph.Package
	var edges []graph.Edge
	for i := 0; i < 10; i++ {
		packages = append(packages, graph.Package{Name: fmt.Sprintf("p%d", i), Version: "1.0.0"})
		if i > 0 {
			edges = append(edges, dep(fmt.Sprintf("p%d", i), fmt.Sprintf("p%d", i-1)))
		}
	}
	g, ctx := mkGraph(t, packages, edges)

	cfg := Config{MinimumDependencyBump: semver.Patch(), MaxDepth: 3}
	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"p0": semver.Minor()}, Independent(), cfg)

	assert.Equal(t, map[string]string{"p0": "1.1.0"}, report.PrimaryBumps)
	assert.Equal(t, map[string]string{
		"p1": "1.0.1", "p2": "1.0.1", "p3": "1.0.1",
	}, report.CascadeBumps)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "depth 3 exceeded")
}

func TestPropagate_InvalidVersionExcluded(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{
			{Name: "bad", Version: "not-semver"},
			{Name: "good", Version: "1.0.0"},
			{Name: "leaf", Version: "1.0.0"},
		},
		[]graph.Edge{dep("bad", "good"), dep("leaf", "good")},
	)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"good": semver.Minor()},
		Independent(), DefaultConfig())

	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], `invalid version "not-semver"`)
	assert.Equal(t, "1.1.0", report.PrimaryBumps["good"])
	assert.Equal(t, "1.0.1", report.CascadeBumps["leaf"], "healthy siblings still resolve")
	assert.NotContains(t, report.CascadeBumps, "bad")
}

func TestPropagate_UnknownIntentWarned(t *testing.T) {
	g, ctx := mkGraph(t, []graph.Package{{Name: "a", Version: "1.0.0"}}, nil)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"ghost": semver.Major()},
		Independent(), DefaultConfig())

	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], `"ghost"`)
	assert.Empty(t, report.AffectedPackages)
}

func TestPropagate_NoneIntentIgnored(t *testing.T) {
	g, ctx := mkGraph(t, []graph.Package{{Name: "a", Version: "1.0.0"}}, nil)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.None()},
		Independent(), DefaultConfig())

	assert.Empty(t, report.AffectedPackages)
	assert.Empty(t, report.Warnings)
}

func TestPropagate_Unified(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{
			{Name: "a", Version: "1.2.0"},
			{Name: "b", Version: "1.0.0"},
			{Name: "c", Version: "2.0.0"},
		},
		nil,
	)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.Minor(), "b": semver.Major()},
		Unified(), DefaultConfig())

	// Highest intent (major) against the highest current version (2.0.0),
	// applied to every package.
	assert.Equal(t, map[string]string{
		"a": "3.0.0", "b": "3.0.0", "c": "3.0.0",
	}, report.PrimaryBumps)
	assert.Empty(t, report.CascadeBumps)
	assert.Equal(t, []string{"a", "b", "c"}, report.AffectedPackages)
}

func TestPropagate_UnifiedNoIntents(t *testing.T) {
	g, ctx := mkGraph(t, []graph.Package{{Name: "a", Version: "1.0.0"}}, nil)

	report := NewEngine(nil).Propagate(g, ctx, nil, Unified(), DefaultConfig())
	assert.Empty(t, report.AffectedPackages)
}

func TestPropagate_ReferenceUpdateKinds(t *testing.T) {
	edges := []graph.Edge{
		{Consumer: "pinned", Dependency: "a", Source: source.WorkspaceExact{Range: "1.2.3"}, Kind: graph.KindProduction},
		{Consumer: "caret", Dependency: "a", Source: source.WorkspaceCompatible{}, Kind: graph.KindProduction},
		{Consumer: "registry", Dependency: "a", Source: source.RegistrySemver{Range: "^1.2.0"}, Kind: graph.KindProduction},
	}
	g, ctx := mkGraph(t,
		[]graph.Package{
			{Name: "a", Version: "1.2.3"},
			{Name: "pinned", Version: "1.0.0"},
			{Name: "caret", Version: "1.0.0"},
			{Name: "registry", Version: "1.0.0"},
		},
		edges,
	)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.Minor()},
		Independent(), DefaultConfig())

	assert.Equal(t, "1.3.0", report.PrimaryBumps["a"])

	byConsumer := make(map[string]ReferenceUpdate)
	for _, u := range report.ReferenceUpdates {
		byConsumer[u.Package] = u
	}
	require.Len(t, byConsumer, 3)

	// Pinned workspace reference follows the new version.
	assert.Equal(t, UpdateWorkspaceProtocol, byConsumer["pinned"].Kind)
	assert.Equal(t, "workspace:1.3.0", byConsumer["pinned"].NewRef)

	// Dynamic workspace reference is left alone.
	assert.Equal(t, UpdateKeepRange, byConsumer["caret"].Kind)
	assert.Equal(t, "workspace:^", byConsumer["caret"].NewRef)

	assert.Equal(t, UpdateFixedVersion, byConsumer["registry"].Kind)
	assert.Equal(t, "1.3.0", byConsumer["registry"].NewRef)
}

func TestPropagate_ExternalEdgesNeverUpdated(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{{Name: "a", Version: "1.0.0"}, {Name: "b", Version: "1.0.0"}},
		[]graph.Edge{dep("b", "a"), dep("b", "lodash")},
	)

	report := NewEngine(nil).Propagate(g, ctx,
		map[string]semver.Intent{"a": semver.Minor()},
		Independent(), DefaultConfig())

	require.Len(t, report.ReferenceUpdates, 1)
	assert.Equal(t, "a", report.ReferenceUpdates[0].Dependency)
}

// Identical inputs yield identical reports, run IDs aside.
func TestPropagate_Deterministic(t *testing.T) {
	g, ctx := mkGraph(t,
		[]graph.Package{
			{Name: "a", Version: "1.0.0"},
			{Name: "b", Version: "1.0.0"},
			{Name: "c", Version: "1.0.0"},
			{Name: "d", Version: "1.0.0"},
		},
		[]graph.Edge{dep("b", "a"), dep("c", "a"), dep("d", "b"), dep("d", "c")},
	)
	intents := map[string]semver.Intent{"a": semver.Major()}

	engine := NewEngine(nil)
	first := engine.Propagate(g, ctx, intents, Independent(), DefaultConfig())
	for i := 0; i < 3; i++ {
		again := engine.Propagate(g, ctx, intents, Independent(), DefaultConfig())
		assert.Equal(t, first.PrimaryBumps, again.PrimaryBumps)
		assert.Equal(t, first.CascadeBumps, again.CascadeBumps)
		assert.Equal(t, first.ReferenceUpdates, again.ReferenceUpdates)
		assert.Equal(t, first.AffectedPackages, again.AffectedPackages)
		assert.Equal(t, first.Warnings, again.Warnings)
		assert.Equal(t, first.Errors, again.Errors)
		assert.NotEqual(t, first.RunID, again.RunID)
	}
}
