package semver

import (
	"fmt"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a parsed semantic version.
type Version struct {
	v *mm.Version
}

// ParseVersion parses a version string like "1.2.3" or "1.2.3-rc.1+build.5".
func ParseVersion(raw string) (Version, error) {
	v, err := mm.StrictNewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, raw, err)
	}
	return Version{v: v}, nil
}

// MustParseVersion parses a version string and panics on failure.
// Intended for tests and compile-time constants.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Core returns the numeric major.minor.patch core without prerelease or
// build metadata.
func (v Version) Core() string {
	if v.v == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", v.v.Major(), v.v.Minor(), v.v.Patch())
}

func (v Version) Major() uint64 { return v.v.Major() }
func (v Version) Minor() uint64 { return v.v.Minor() }
func (v Version) Patch() uint64 { return v.v.Patch() }

// Prerelease returns the prerelease identifiers, or "" if none.
func (v Version) Prerelease() string {
	if v.v == nil {
		return ""
	}
	return v.v.Prerelease()
}

// Compare returns -1, 0, or 1 when a is less than, equal to, or greater
// than b. Build metadata is ignored per the semver spec.
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// Max returns the greater of a and b.
func Max(a, b Version) Version {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

// ValidRange reports whether raw is a parseable semver range expression
// ("^1.2.0", "~1.4", ">=1.0.0 <2.0.0", "*", ...).
func ValidRange(raw string) bool {
	_, err := mm.NewConstraint(raw)
	return err == nil
}

// RangeContains reports whether the range expression admits the version.
// Returns false for unparseable inputs.
func RangeContains(rangeExpr string, v Version) bool {
	c, err := mm.NewConstraint(rangeExpr)
	if err != nil || v.v == nil {
		return false
	}
	return c.Check(v.v)
}
