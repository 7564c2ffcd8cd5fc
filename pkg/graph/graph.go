package graph

import (
	"fmt"
	"sort"

	"github.com/marchblue/cascade/pkg/source"
)

// Package is a graph node: a named package at its current version. The
// version string is kept raw; the resolver parses it when a bump lands.
type Package struct {
	Name    string
	Version string
}

// EdgeKind is the dependency section an edge was declared in.
type EdgeKind int

const (
	KindProduction EdgeKind = iota
	KindDevelopment
	KindPeer
	KindOptional
)

func (k EdgeKind) String() string {
	return []string{"production", "development", "peer", "optional"}[k]
}

// Edge is a directed consumer -> dependency relationship.
type Edge struct {
	Consumer   string
	Dependency string
	Source     source.Source
	Kind       EdgeKind
}

// DuplicatePackageError indicates two packages with the same name, which
// makes node identity ambiguous and aborts graph construction.
type DuplicatePackageError struct {
	Name string
}

func (e *DuplicatePackageError) Error() string {
	return fmt.Sprintf("duplicate package %q", e.Name)
}

// Graph is the internal dependency graph. Construction is O(P+E); lookups
// are by package name.
type Graph struct {
	packages map[string]Package
	names    []string // sorted node names

	edges    []Edge           // internal edges, sorted
	outgoing map[string][]int // consumer name -> indices into edges
	incoming map[string][]int // dependency name -> indices into edges

	external []Edge // edges whose target is not a known package
}

// Build indexes packages by name and keeps only edges whose dependency
// name matches a known package. Edges to unknown names are recorded as
// external references and excluded from the graph proper.
func Build(packages []Package, edges []Edge) (*Graph, error) {
	g := &Graph{
		packages: make(map[string]Package, len(packages)),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
	}

	for _, pkg := range packages {
		if _, exists := g.packages[pkg.Name]; exists {
			return nil, &DuplicatePackageError{Name: pkg.Name}
		}
		g.packages[pkg.Name] = pkg
		g.names = append(g.names, pkg.Name)
	}
	sort.Strings(g.names)

	internal := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if _, known := g.packages[e.Dependency]; known {
			internal = append(internal, e)
		} else {
			g.external = append(g.external, e)
		}
	}

	// Deterministic edge order regardless of manifest iteration order.
	sortEdges(internal)
	sortEdges(g.external)

	g.edges = internal
	for i, e := range internal {
		g.outgoing[e.Consumer] = append(g.outgoing[e.Consumer], i)
		g.incoming[e.Dependency] = append(g.incoming[e.Dependency], i)
	}

	return g, nil
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Consumer != edges[j].Consumer {
			return edges[i].Consumer < edges[j].Consumer
		}
		if edges[i].Dependency != edges[j].Dependency {
			return edges[i].Dependency < edges[j].Dependency
		}
		return edges[i].Kind < edges[j].Kind
	})
}

// Package returns the named package.
func (g *Graph) Package(name string) (Package, bool) {
	pkg, ok := g.packages[name]
	return pkg, ok
}

// Names returns all package names in lexicographic order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len returns the number of packages.
func (g *Graph) Len() int { return len(g.names) }

// Edges returns the internal edges in deterministic order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// ExternalEdges returns edges whose dependency is not a known package.
func (g *Graph) ExternalEdges() []Edge {
	out := make([]Edge, len(g.external))
	copy(out, g.external)
	return out
}

// DependenciesOf returns the internal edges declared by consumer, in
// deterministic order.
func (g *Graph) DependenciesOf(consumer string) []Edge {
	return g.edgesAt(g.outgoing[consumer])
}

// Dependents returns the internal edges pointing at dependency, i.e. the
// reverse adjacency used by cascade propagation.
func (g *Graph) Dependents(dependency string) []Edge {
	return g.edgesAt(g.incoming[dependency])
}

func (g *Graph) edgesAt(indices []int) []Edge {
	out := make([]Edge, 0, len(indices))
	for _, i := range indices {
		out = append(out, g.edges[i])
	}
	return out
}
