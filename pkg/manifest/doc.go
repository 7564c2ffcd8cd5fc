// Package manifest reads and writes npm-style package.json manifests.
//
// # Overview
//
// This is the I/O collaborator around the pure resolution core. Loading
// discovers workspace members from the root manifest's workspaces globs,
// reads member manifests concurrently, and converts them into the graph
// inputs the engine consumes: packages, dependency edges with parsed
// specifiers, and the project context. Applying writes a resolution
// report's version bumps and reference updates back to disk.
//
// Specifier parse failures are per-dependency diagnostics, never load
// failures: one bad specifier must not hide analysis of the rest of the
// workspace.
//
// # Usage Example
//
//	loader := manifest.NewLoader(log)
//	ws, err := loader.LoadWorkspace(ctx, ".")
//	if err != nil {
//		return err
//	}
//	g, err := graph.Build(ws.Packages, ws.Edges)
//	...
//	if applyMode {
//		err = manifest.Apply(ws, report)
//	}
//
// # Related Packages
//
//   - pkg/graph: Consumes the loaded packages and edges
//   - pkg/resolve: Produces the report Apply writes back
package manifest
