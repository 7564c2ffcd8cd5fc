// Package cli implements the cascade command line interface.
//
// # Overview
//
// The CLI wires the I/O collaborators (manifest loader, change files,
// configuration) around the pure resolution engine. Commands:
//
//	plan     Preview the next versions without touching any file
//	apply    Write bumped versions and reference updates to manifests
//	graph    Inspect the dependency graph, cycles, and classifications
//	version  Resolve a single version against a bump level
//
// # Usage Example
//
//	cascade plan --root . --bump @acme/core=minor
//	cascade apply --changelog
//	cascade graph
//	cascade version 1.4.2 minor
//
// # Related Packages
//
//   - pkg/manifest: Loads and writes package manifests
//   - pkg/resolve: Computes the resolution report
package cli
