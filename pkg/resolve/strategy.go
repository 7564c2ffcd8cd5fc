package resolve

import (
	"sort"

	"github.com/marchblue/cascade/pkg/semver"
)

// StrategyKind selects how bumps spread across the workspace.
type StrategyKind int

const (
	StrategyIndependent StrategyKind = iota
	StrategyUnified
	StrategyMixed
)

func (k StrategyKind) String() string {
	return []string{"independent", "unified", "mixed"}[k]
}

// Strategy is the versioning strategy for one resolution run. Groups and
// Excluded are only consulted by the mixed strategy.
type Strategy struct {
	Kind StrategyKind

	// Groups maps package name to a shared-version group key.
	Groups map[string]string

	// Excluded packages never receive cascade bumps and are not traversed
	// through; explicit primary bumps still apply.
	Excluded map[string]struct{}
}

// Independent returns the independent versioning strategy.
func Independent() Strategy { return Strategy{Kind: StrategyIndependent} }

// Unified returns the unified (single shared version) strategy.
func Unified() Strategy { return Strategy{Kind: StrategyUnified} }

// Mixed returns a mixed strategy with the given package-to-group map and
// excluded package names.
func Mixed(groups map[string]string, excluded []string) Strategy {
	ex := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		ex[name] = struct{}{}
	}
	return Strategy{Kind: StrategyMixed, Groups: groups, Excluded: ex}
}

func (s Strategy) groupOf(name string) string {
	return s.Groups[name]
}

func (s Strategy) isExcluded(name string) bool {
	_, ok := s.Excluded[name]
	return ok
}

// groupMembers returns group key -> sorted member names.
func (s Strategy) groupMembers() map[string][]string {
	members := make(map[string][]string)
	for name, grp := range s.Groups {
		if grp == "" {
			continue
		}
		members[grp] = append(members[grp], name)
	}
	for grp := range members {
		sort.Strings(members[grp])
	}
	return members
}

// Config tunes cascade propagation.
type Config struct {
	// MinimumDependencyBump is the smallest bump a dependent of a changed
	// package receives. Defaults to patch.
	MinimumDependencyBump semver.Intent

	// MaxDepth bounds how many dependent hops a cascade travels from its
	// seed; 0 means unbounded. Exceeding the bound is a warning, not an
	// error.
	MaxDepth int
}

// DefaultConfig returns the default propagation configuration.
func DefaultConfig() Config {
	return Config{MinimumDependencyBump: semver.Patch()}
}

func (c Config) normalized() Config {
	if c.MinimumDependencyBump.Kind == semver.BumpNone {
		c.MinimumDependencyBump = semver.Patch()
	}
	return c
}
