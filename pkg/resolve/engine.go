package resolve

import (
	"sort"

	"github.com/marchblue/cascade/pkg/classify"
	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/observability"
	"github.com/marchblue/cascade/pkg/semver"
	"github.com/marchblue/cascade/pkg/source"
	"github.com/marchblue/cascade/pkg/workspace"
)

// Engine computes resolution reports. It holds no per-run state; a single
// engine may serve many runs, each of which owns its own graph and report.
type Engine struct {
	log *observability.Logger
}

// NewEngine creates an engine. A nil logger disables engine logging.
func NewEngine(log *observability.Logger) *Engine {
	if log == nil {
		log = observability.NewNopLogger()
	}
	return &Engine{log: log}
}

// Propagate computes the full resolution report for one run: cycle
// diagnostics, primary bumps, cascade bumps per the strategy, and manifest
// reference updates. It never performs I/O; preview and apply modes run
// the identical computation and differ only in what the caller does with
// the report.
func (e *Engine) Propagate(g *graph.Graph, ctx workspace.Context, intents map[string]semver.Intent, strategy Strategy, cfg Config) *Report {
	cfg = cfg.normalized()
	rep := newReport()
	log := e.log.WithField("run_id", rep.RunID)
	log.WithFields(map[string]interface{}{
		"strategy": strategy.Kind.String(),
		"packages": g.Len(),
	}).Debug("propagation started")

	for _, cycle := range graph.DetectCycles(g) {
		switch cycle.Severity {
		case graph.SeverityError:
			rep.errorf("circular dependency with production edges: %s", cycle)
		default:
			rep.warnf("circular dependency: %s", cycle)
		}
	}

	primaries := e.validIntents(g, rep, intents)

	switch strategy.Kind {
	case StrategyUnified:
		e.unified(g, rep, primaries)
	case StrategyMixed:
		e.mixed(g, rep, primaries, strategy, cfg)
	default:
		e.independent(g, rep, primaries, cfg)
	}

	e.updateReferences(g, ctx, rep)
	rep.finalize()

	log.WithFields(map[string]interface{}{
		"affected": len(rep.AffectedPackages),
		"warnings": len(rep.Warnings),
		"errors":   len(rep.Errors),
	}).Debug("propagation finished")
	return rep
}

// validIntents drops no-op intents and intents naming unknown packages.
func (e *Engine) validIntents(g *graph.Graph, rep *Report, intents map[string]semver.Intent) map[string]semver.Intent {
	out := make(map[string]semver.Intent, len(intents))
	for _, name := range sortedKeys(intents) {
		intent := intents[name]
		if intent.Kind == semver.BumpNone {
			continue
		}
		if _, ok := g.Package(name); !ok {
			rep.warnf("bump intent for unknown package %q ignored", name)
			continue
		}
		out[name] = intent
	}
	return out
}

// parseable checks the package's current version, recording the error the
// first time a broken package is seen. Broken packages are excluded from
// propagation while the rest of the workspace proceeds.
func parseable(g *graph.Graph, rep *Report, seen map[string]bool, name string) bool {
	if versionOK(g, name) {
		return true
	}
	if !seen[name] {
		seen[name] = true
		pkg, _ := g.Package(name)
		rep.errorf("package %s: invalid version %q", name, pkg.Version)
	}
	return false
}

func versionOK(g *graph.Graph, name string) bool {
	pkg, exists := g.Package(name)
	if !exists {
		return false
	}
	_, err := semver.ParseVersion(pkg.Version)
	return err == nil
}

// independent seeds a breadth-first walk over reverse edges from every
// primary-bumped package. Each newly reached dependent receives at least
// the minimum dependency bump; already-visited nodes only have their bump
// precedence raised, which keeps traversal cycle safe.
func (e *Engine) independent(g *graph.Graph, rep *Report, primaries map[string]semver.Intent, cfg Config) {
	effective := make(map[string]semver.Intent)
	isPrimary := make(map[string]bool)
	visited := make(map[string]bool)
	badVersion := make(map[string]bool)

	type item struct {
		name  string
		depth int
	}
	var queue []item

	for _, name := range sortedKeys(primaries) {
		if !parseable(g, rep, badVersion, name) {
			continue
		}
		effective[name] = primaries[name]
		isPrimary[name] = true
		visited[name] = true
		queue = append(queue, item{name: name})
	}

	min := cfg.MinimumDependencyBump
	depthExceeded := false

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range g.Dependents(cur.name) {
			dep := edge.Consumer
			if visited[dep] {
				// A second path into the same node can only raise its
				// bump, never re-traverse it.
				if _, bumped := effective[dep]; bumped {
					effective[dep] = semver.HigherPrecedence(effective[dep], min)
				}
				continue
			}
			if cfg.MaxDepth > 0 && cur.depth+1 > cfg.MaxDepth {
				depthExceeded = true
				continue
			}
			visited[dep] = true
			if !parseable(g, rep, badVersion, dep) {
				continue
			}
			effective[dep] = min
			queue = append(queue, item{name: dep, depth: cur.depth + 1})
		}
	}

	if depthExceeded {
		rep.warnf("propagation depth %d exceeded; more distant dependents were not bumped", cfg.MaxDepth)
	}

	e.assignVersions(g, rep, effective, isPrimary)
}

// unified applies the single highest-precedence primary bump to every
// package in the workspace, derived from the highest current version. No
// traversal happens.
func (e *Engine) unified(g *graph.Graph, rep *Report, primaries map[string]semver.Intent) {
	if len(primaries) == 0 {
		return
	}

	highest := semver.None()
	for _, intent := range primaries {
		highest = semver.HigherPrecedence(highest, intent)
	}

	shared, ok := e.sharedVersion(g, rep, g.Names(), highest)
	if !ok {
		return
	}

	for _, name := range g.Names() {
		if !versionOK(g, name) {
			continue // already reported by sharedVersion
		}
		rep.PrimaryBumps[name] = shared
	}
}

// sharedVersion resolves intent against the highest parseable current
// version among names. Unparseable versions are reported and skipped.
func (e *Engine) sharedVersion(g *graph.Graph, rep *Report, names []string, intent semver.Intent) (string, bool) {
	var max semver.Version
	found := false
	for _, name := range names {
		pkg, exists := g.Package(name)
		if !exists {
			continue
		}
		v, err := semver.ParseVersion(pkg.Version)
		if err != nil {
			rep.errorf("package %s: invalid version %q", name, pkg.Version)
			continue
		}
		if !found || semver.Compare(v, max) > 0 {
			max = v
			found = true
		}
	}
	if !found {
		return "", false
	}
	next, err := semver.Resolve(max.String(), intent)
	if err != nil {
		rep.errorf("resolve shared version from %s: %v", max, err)
		return "", false
	}
	return next.String(), true
}

func (e *Engine) assignVersions(g *graph.Graph, rep *Report, effective map[string]semver.Intent, isPrimary map[string]bool) {
	for _, name := range sortedKeys(effective) {
		pkg, _ := g.Package(name)
		next, err := semver.Resolve(pkg.Version, effective[name])
		if err != nil {
			rep.errorf("package %s: %v", name, err)
			continue
		}
		if isPrimary[name] {
			rep.PrimaryBumps[name] = next.String()
		} else {
			rep.CascadeBumps[name] = next.String()
		}
	}
}

// updateReferences emits one reference update per internal edge from a
// bumped package to a bumped dependency. Registry ranges are pinned to the
// exact new version; workspace: references resolve dynamically and are left
// alone, except pinned workspace:<version> references, which are rewritten
// in place. Path, git, and alias references carry no version to rewrite.
// External edges are never updated.
func (e *Engine) updateReferences(g *graph.Graph, ctx workspace.Context, rep *Report) {
	bumped := rep.Bumped()
	if len(bumped) == 0 {
		return
	}
	classes := classify.Classify(g, ctx)

	for _, consumer := range sortedKeys(bumped) {
		for _, edge := range g.DependenciesOf(consumer) {
			newVersion, ok := bumped[edge.Dependency]
			if !ok {
				continue
			}
			cls := classes[classify.EdgeKey{
				Consumer:   edge.Consumer,
				Dependency: edge.Dependency,
				Kind:       edge.Kind,
			}]
			if !cls.Internal {
				continue
			}

			update := ReferenceUpdate{
				Package:    edge.Consumer,
				Dependency: edge.Dependency,
				OldRef:     edge.Source.String(),
			}
			switch cls.Reference {
			case classify.RefWorkspaceProtocol:
				if pinnedWorkspace(edge.Source) {
					update.Kind = UpdateWorkspaceProtocol
					update.NewRef = "workspace:" + newVersion
				} else {
					update.Kind = UpdateKeepRange
					update.NewRef = update.OldRef
				}
			case classify.RefRegistryVersion:
				update.Kind = UpdateFixedVersion
				update.NewRef = newVersion
			default:
				update.Kind = UpdateKeepRange
				update.NewRef = update.OldRef
			}
			rep.ReferenceUpdates = append(rep.ReferenceUpdates, update)
		}
	}
}

// pinnedWorkspace reports whether src is a workspace:<exact version>
// reference, which must be rewritten when the sibling bumps.
func pinnedWorkspace(src source.Source) bool {
	exact, ok := src.(source.WorkspaceExact)
	if !ok {
		return false
	}
	_, err := semver.ParseVersion(exact.Range)
	return err == nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
