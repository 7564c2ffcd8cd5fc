// Package classify labels dependency edges as internal or external.
//
// # Overview
//
// Classification is context dependent. In a single-package repository only
// file:/link: references are internal. In a workspace, a dependency is
// internal iff its name is a workspace member, regardless of the protocol
// used to reference it; the protocol then determines the reference type and
// whether an advisory warning is attached (for example an internal
// dependency pinned through a registry range instead of the workspace
// protocol).
//
// Classification is pure and idempotent: re-running it over an unchanged
// graph produces the same result.
//
// # Usage Example
//
//	classes := classify.Classify(g, ctx)
//	for _, key := range classify.SortedKeys(classes) {
//		c := classes[key]
//		if c.Internal && c.Warning != "" {
//			fmt.Printf("%s -> %s: %s\n", key.Consumer, key.Dependency, c.Warning)
//		}
//	}
//
// # Related Packages
//
//   - pkg/graph: Supplies the edges being classified
//   - pkg/resolve: Uses reference types to pick reference-update behavior
package classify
