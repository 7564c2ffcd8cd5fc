package graph

import (
	"sort"
	"strings"
)

// Severity classifies how serious a dependency cycle is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	return []string{"warning", "error"}[s]
}

// Cycle is one maximal dependency cycle: an ordered package sequence that
// loops back to its first element. Severity is Error iff any edge between
// the cycle's members is a production dependency.
type Cycle struct {
	Packages []string
	Severity Severity
}

func (c Cycle) String() string {
	if len(c.Packages) == 0 {
		return ""
	}
	return strings.Join(c.Packages, " -> ") + " -> " + c.Packages[0]
}

// DetectCycles finds every maximal cycle via Tarjan's strongly-connected-
// component analysis in O(P+E). Each component of size > 1 yields one
// representative cycle starting at its lexicographically smallest member.
// Cycles are ordered by that member, so identical graphs always report
// identical cycles.
func DetectCycles(g *Graph) []Cycle {
	t := &tarjan{
		g:       g,
		indexOf: make(map[string]int, g.Len()),
		lowlink: make(map[string]int, g.Len()),
		onStack: make(map[string]bool, g.Len()),
	}
	for _, name := range g.names {
		if _, seen := t.indexOf[name]; !seen {
			t.strongConnect(name)
		}
	}

	cycles := make([]Cycle, 0, len(t.components))
	for _, members := range t.components {
		cycles = append(cycles, g.buildCycle(members))
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Packages[0] < cycles[j].Packages[0]
	})
	return cycles
}

type tarjan struct {
	g       *Graph
	counter int
	indexOf map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string

	components [][]string // SCCs of size > 1
}

func (t *tarjan) strongConnect(name string) {
	t.indexOf[name] = t.counter
	t.lowlink[name] = t.counter
	t.counter++
	t.stack = append(t.stack, name)
	t.onStack[name] = true

	for _, e := range t.g.DependenciesOf(name) {
		next := e.Dependency
		if _, seen := t.indexOf[next]; !seen {
			t.strongConnect(next)
			if t.lowlink[next] < t.lowlink[name] {
				t.lowlink[name] = t.lowlink[next]
			}
		} else if t.onStack[next] {
			if t.indexOf[next] < t.lowlink[name] {
				t.lowlink[name] = t.indexOf[next]
			}
		}
	}

	if t.lowlink[name] != t.indexOf[name] {
		return
	}

	var members []string
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		members = append(members, top)
		if top == name {
			break
		}
	}
	if len(members) > 1 {
		t.components = append(t.components, members)
	}
}

// buildCycle turns an SCC into a concrete loop: walk from the smallest
// member along edges inside the component, preferring smaller successors,
// until the walk returns to its start.
func (g *Graph) buildCycle(members []string) Cycle {
	inSCC := make(map[string]bool, len(members))
	for _, m := range members {
		inSCC[m] = true
	}
	sort.Strings(members)
	start := members[0]

	severity := SeverityWarning
	for _, m := range members {
		for _, e := range g.DependenciesOf(m) {
			if inSCC[e.Dependency] && e.Kind == KindProduction {
				severity = SeverityError
			}
		}
	}

	path := []string{start}
	visited := map[string]bool{start: true}
	current := start
	for {
		next := ""
		for _, e := range g.DependenciesOf(current) {
			if !inSCC[e.Dependency] || visited[e.Dependency] {
				continue
			}
			if next == "" || e.Dependency < next {
				next = e.Dependency
			}
		}
		if next == "" {
			// Every in-component successor is visited; the loop closes.
			break
		}
		path = append(path, next)
		visited[next] = true
		current = next
	}

	return Cycle{Packages: path, Severity: severity}
}
