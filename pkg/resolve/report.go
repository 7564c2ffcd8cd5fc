package resolve

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// UpdateKind describes how a manifest reference is rewritten.
type UpdateKind int

const (
	// UpdateFixedVersion pins the dependency to the exact new version.
	UpdateFixedVersion UpdateKind = iota
	// UpdateWorkspaceProtocol rewrites a pinned workspace: reference to
	// the new exact version, keeping the protocol.
	UpdateWorkspaceProtocol
	// UpdateKeepRange leaves the reference untouched; it resolves
	// dynamically.
	UpdateKeepRange
)

func (k UpdateKind) String() string {
	return []string{"fixed-version", "workspace-protocol", "keep-range"}[k]
}

// ReferenceUpdate is one manifest edit: the consumer package's reference to
// a bumped dependency.
type ReferenceUpdate struct {
	Package    string
	Dependency string
	OldRef     string
	NewRef     string
	Kind       UpdateKind
}

// Report is the sole output of a resolution run. Primary bumps come from
// explicit intents; cascade bumps from propagation. Warnings and errors are
// accumulated diagnostics; errors mark packages that could not be resolved
// but never abort the run.
type Report struct {
	RunID string

	PrimaryBumps map[string]string
	CascadeBumps map[string]string

	ReferenceUpdates []ReferenceUpdate

	Warnings []string
	Errors   []string

	// AffectedPackages is the sorted union of primary- and cascade-bumped
	// package names.
	AffectedPackages []string
}

func newReport() *Report {
	return &Report{
		RunID:        uuid.NewString(),
		PrimaryBumps: make(map[string]string),
		CascadeBumps: make(map[string]string),
	}
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// NewVersion returns the new version assigned to the package, whether
// primary or cascade, and whether one exists.
func (r *Report) NewVersion(name string) (string, bool) {
	if v, ok := r.PrimaryBumps[name]; ok {
		return v, true
	}
	v, ok := r.CascadeBumps[name]
	return v, ok
}

// Bumped returns every bumped package and its new version.
func (r *Report) Bumped() map[string]string {
	out := make(map[string]string, len(r.PrimaryBumps)+len(r.CascadeBumps))
	for name, v := range r.PrimaryBumps {
		out[name] = v
	}
	for name, v := range r.CascadeBumps {
		out[name] = v
	}
	return out
}

func (r *Report) finalize() {
	affected := make([]string, 0, len(r.PrimaryBumps)+len(r.CascadeBumps))
	for name := range r.PrimaryBumps {
		affected = append(affected, name)
	}
	for name := range r.CascadeBumps {
		if _, dup := r.PrimaryBumps[name]; !dup {
			affected = append(affected, name)
		}
	}
	sort.Strings(affected)
	r.AffectedPackages = affected
}
