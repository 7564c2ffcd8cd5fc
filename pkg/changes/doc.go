// Package changes reads pending change files into per-package bump
// intents.
//
// # Overview
//
// Contributors record intended releases as YAML files under .cascade/, one
// per change: which packages are affected, how each should bump, and a
// summary line for the changelog. This package merges all pending change
// files into one intent per package (highest precedence wins) and keeps
// the summaries for changelog rendering.
//
// # Change File Format
//
//	bumps:
//	  "@acme/core": minor
//	  "@acme/cli": patch
//	summary: Add retry support to the client.
//
// # Usage Example
//
//	set, err := changes.LoadDir(".cascade")
//	report := engine.Propagate(g, ctx, set.Intents, strategy, cfg)
//
// # Related Packages
//
//   - pkg/resolve: Consumes the merged intents
//   - pkg/changelog: Renders the summaries for affected packages
package changes
