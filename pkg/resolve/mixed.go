package resolve

import (
	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/semver"
)

// mixed partitions the workspace: grouped packages version together
// (unified logic scoped to the group) while ungrouped packages follow
// independent propagation. Edges crossing a group boundary still carry
// minimum dependency bumps in either direction, so a bump outside a group
// can pull the whole group forward and a group bump cascades to outside
// dependents.
func (e *Engine) mixed(g *graph.Graph, rep *Report, primaries map[string]semver.Intent, strategy Strategy, cfg Config) {
	members := strategy.groupMembers()

	w := &mixedWalk{
		engine:      e,
		g:           g,
		rep:         rep,
		strategy:    strategy,
		cfg:         cfg,
		members:     members,
		effective:   make(map[string]semver.Intent),
		groupIntent: make(map[string]semver.Intent),
		isPrimary:   make(map[string]bool),
		badVersion:  make(map[string]bool),
	}

	for _, name := range sortedKeys(primaries) {
		w.isPrimary[name] = true
		w.raise(name, primaries[name], 0)
	}
	w.run()

	if w.depthExceeded {
		rep.warnf("propagation depth %d exceeded; more distant dependents were not bumped", cfg.MaxDepth)
	}

	e.assignMixedVersions(g, rep, w, strategy)
}

type mixedWalk struct {
	engine   *Engine
	g        *graph.Graph
	rep      *Report
	strategy Strategy
	cfg      Config
	members  map[string][]string

	effective   map[string]semver.Intent
	groupIntent map[string]semver.Intent
	isPrimary   map[string]bool
	badVersion  map[string]bool

	queue         []walkItem
	depthExceeded bool
}

type walkItem struct {
	name  string
	depth int
}

// raise lifts a package's effective bump to at least intent. A package is
// (re-)enqueued only when its bump actually grew, so precedence increases
// monotonically and the walk terminates even through cycles. Raising a
// grouped package lifts the whole group.
func (w *mixedWalk) raise(name string, intent semver.Intent, depth int) {
	if _, exists := w.g.Package(name); !exists {
		return
	}
	if w.strategy.isExcluded(name) && !w.isPrimary[name] {
		return
	}
	if !parseable(w.g, w.rep, w.badVersion, name) {
		return
	}

	current, seen := w.effective[name]
	next := semver.HigherPrecedence(current, intent)
	if seen && next == current {
		return
	}
	w.effective[name] = next
	w.queue = append(w.queue, walkItem{name: name, depth: depth})

	if grp := w.strategy.groupOf(name); grp != "" {
		lifted := semver.HigherPrecedence(w.groupIntent[grp], next)
		if lifted != w.groupIntent[grp] || !w.groupSettled(grp, lifted) {
			w.groupIntent[grp] = lifted
			for _, sibling := range w.members[grp] {
				if sibling != name {
					w.raise(sibling, lifted, depth)
				}
			}
		}
	}
}

func (w *mixedWalk) groupSettled(grp string, intent semver.Intent) bool {
	for _, sibling := range w.members[grp] {
		cur, seen := w.effective[sibling]
		if !seen || semver.HigherPrecedence(cur, intent) != cur {
			return false
		}
	}
	return true
}

func (w *mixedWalk) run() {
	min := w.cfg.MinimumDependencyBump
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		if w.cfg.MaxDepth > 0 && cur.depth+1 > w.cfg.MaxDepth {
			if len(w.g.Dependents(cur.name)) > 0 {
				w.depthExceeded = true
			}
			continue
		}
		for _, edge := range w.g.Dependents(cur.name) {
			w.raise(edge.Consumer, min, cur.depth+1)
		}
	}
}

func (e *Engine) assignMixedVersions(g *graph.Graph, rep *Report, w *mixedWalk, strategy Strategy) {
	// Shared version per bumped group, from the group's highest current
	// version and aggregated intent.
	groupVersion := make(map[string]string)
	for _, grp := range sortedKeys(w.groupIntent) {
		intent := w.groupIntent[grp]
		if intent.Kind == semver.BumpNone {
			continue
		}
		if shared, ok := e.sharedVersion(g, rep, w.members[grp], intent); ok {
			groupVersion[grp] = shared
		}
	}

	for _, name := range sortedKeys(w.effective) {
		var version string
		if grp := strategy.groupOf(name); grp != "" {
			shared, ok := groupVersion[grp]
			if !ok {
				continue
			}
			version = shared
		} else {
			pkg, _ := g.Package(name)
			next, err := semver.Resolve(pkg.Version, w.effective[name])
			if err != nil {
				rep.errorf("package %s: %v", name, err)
				continue
			}
			version = next.String()
		}
		if w.isPrimary[name] {
			rep.PrimaryBumps[name] = version
		} else {
			rep.CascadeBumps[name] = version
		}
	}
}
