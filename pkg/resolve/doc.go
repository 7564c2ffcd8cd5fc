// Package resolve computes next versions for every package affected by a
// set of bump intents, including transitively affected dependents.
//
// # Overview
//
// Given the internal dependency graph, the primary bump intents supplied by
// a changeset collaborator, a versioning strategy, and propagation
// configuration, the engine walks reverse dependency edges to find every
// package that must be re-versioned because something it depends on
// changed, and emits a Report: primary bumps, cascade bumps,
// manifest reference updates, and accumulated diagnostics.
//
// The engine is purely computational: it never touches the filesystem, and
// it always returns a best-effort report rather than aborting on the first
// problem. One package with an unparseable version is excluded and reported
// while the rest of the workspace resolves normally. Identical inputs yield
// identical reports, down to ordering.
//
// # Strategies
//
// Independent: each affected package bumps on its own, dependents of a
// bumped package receive at least the configured minimum dependency bump.
//
// Unified: the single highest-precedence intent is applied to every package
// in the workspace, no traversal.
//
// Mixed: configured groups version together (unified within the group)
// while ungrouped packages follow independent propagation; edges crossing a
// group boundary still propagate minimum bumps in either direction.
//
// # Usage Example
//
//	engine := resolve.NewEngine(log)
//	report := engine.Propagate(g, ctx, intents, resolve.Independent(), resolve.DefaultConfig())
//	for _, name := range report.AffectedPackages {
//		fmt.Printf("%s -> %s\n", name, report.NewVersion(name))
//	}
//
// # Related Packages
//
//   - pkg/graph: Graph construction and cycle detection
//   - pkg/classify: Reference types drive reference-update behavior
//   - pkg/manifest: Applies the report to manifests in apply mode
package resolve
