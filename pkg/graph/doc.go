// Package graph builds the internal dependency graph of a repository and
// detects dependency cycles.
//
// # Overview
//
// The graph contains one node per package and one directed edge per
// declared dependency whose target is itself a known package. Edges to
// unknown names are retained separately as external references so cycle
// detection and cascade propagation stay scoped to intra-repository
// relationships. Graphs are name indexed rather than pointer linked and
// rebuilt from scratch for every resolution run.
//
// Cycle detection runs a strongly-connected-component analysis, so mutual
// chains of any length are found, not just pairwise loops. Cycles are data:
// an Error-severity cycle (one containing a production edge) is reported,
// never acted on here.
//
// # Usage Example
//
//	g, err := graph.Build(packages, edges)
//	if err != nil {
//		return err
//	}
//	for _, cycle := range graph.DetectCycles(g) {
//		fmt.Printf("%s: %s\n", cycle.Severity, strings.Join(cycle.Packages, " -> "))
//	}
//
// # Related Packages
//
//   - pkg/classify: Labels each edge internal or external
//   - pkg/resolve: Walks reverse edges for cascade propagation
package graph
