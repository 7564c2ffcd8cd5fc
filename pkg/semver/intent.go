package semver

import (
	"errors"
	"fmt"

	mm "github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion indicates a version string that does not parse as
// strict major.minor.patch semver.
var ErrInvalidVersion = errors.New("invalid version string")

// BumpKind identifies the field (or mode) a bump intent targets.
type BumpKind int

const (
	BumpNone BumpKind = iota
	BumpSnapshot
	BumpPatch
	BumpMinor
	BumpMajor
)

func (k BumpKind) String() string {
	return []string{"none", "snapshot", "patch", "minor", "major"}[k]
}

// Intent is a requested version bump for a single package.
//
// Snapshot intents carry an identifier; all other kinds leave it empty.
type Intent struct {
	Kind       BumpKind
	SnapshotID string
}

func Major() Intent            { return Intent{Kind: BumpMajor} }
func Minor() Intent            { return Intent{Kind: BumpMinor} }
func Patch() Intent            { return Intent{Kind: BumpPatch} }
func Snapshot(id string) Intent { return Intent{Kind: BumpSnapshot, SnapshotID: id} }
func None() Intent             { return Intent{Kind: BumpNone} }

func (i Intent) String() string {
	if i.Kind == BumpSnapshot {
		return fmt.Sprintf("snapshot(%s)", i.SnapshotID)
	}
	return i.Kind.String()
}

// HigherPrecedence returns the intent that wins when two bumps land on the
// same package. Precedence is Major > Minor > Patch > Snapshot > None; a
// numeric bump always beats a snapshot.
func HigherPrecedence(a, b Intent) Intent {
	if b.Kind > a.Kind {
		return b
	}
	return a
}

// Resolve computes the next version for current under the given intent.
//
// Major, minor, and patch bumps increment the target field, zero every
// lower field, and drop any prerelease or build metadata. Snapshot appends
// "-{id}.snapshot" to the numeric core without incrementing anything. None
// returns the current version unchanged.
func Resolve(current string, intent Intent) (Version, error) {
	v, err := ParseVersion(current)
	if err != nil {
		return Version{}, err
	}

	switch intent.Kind {
	case BumpMajor:
		return Version{v: mm.New(v.Major()+1, 0, 0, "", "")}, nil
	case BumpMinor:
		return Version{v: mm.New(v.Major(), v.Minor()+1, 0, "", "")}, nil
	case BumpPatch:
		return Version{v: mm.New(v.Major(), v.Minor(), v.Patch()+1, "", "")}, nil
	case BumpSnapshot:
		pre := intent.SnapshotID + ".snapshot"
		return Version{v: mm.New(v.Major(), v.Minor(), v.Patch(), pre, "")}, nil
	case BumpNone:
		return v, nil
	default:
		return Version{}, fmt.Errorf("unknown bump kind %d", intent.Kind)
	}
}
