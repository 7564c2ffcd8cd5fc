// Package semver provides semantic version parsing, comparison, and bumping.
//
// # Overview
//
// This package wraps github.com/Masterminds/semver/v3 with the version
// operations the resolution engine needs: parsing manifest version strings,
// comparing versions, validating range constraints, and computing the next
// version for a bump intent.
//
// # Key Features
//
// Version Parsing: Strict major.minor.patch with optional prerelease/build
// Bump Intents: Major, Minor, Patch, Snapshot, and None with a total precedence order
// Resolution: Compute the next version for a current version + intent
// Constraints: Validate and check semver range expressions
//
// # Usage Example
//
// Resolve the next version:
//
//	next, err := semver.Resolve("1.4.2-rc.1", semver.Minor())
//	// next.String() == "1.5.0"
//
// Snapshot versions keep the numeric core:
//
//	next, err := semver.Resolve("1.4.2", semver.Snapshot("canary"))
//	// next.String() == "1.4.2-canary.snapshot"
//
// # Related Packages
//
//   - pkg/source: Uses constraint validation for registry ranges
//   - pkg/resolve: Uses bump precedence during cascade propagation
package semver
