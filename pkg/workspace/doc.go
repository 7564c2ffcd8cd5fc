// Package workspace decides whether a repository is a single package or a
// multi-package workspace.
//
// # Overview
//
// The project context drives specifier parsing (workspace: protocol is only
// legal inside a workspace) and dependency classification (internal vs.
// external). The member set itself comes from a manifest-reading
// collaborator; this package only owns the decision.
//
// # Usage Example
//
//	ctx := workspace.Detect([]string{"@acme/core", "@acme/cli"})
//	if ctx.IsWorkspace() {
//		fmt.Println(ctx.Members())
//	}
//
// # Related Packages
//
//   - pkg/source: Rejects workspace: specifiers in single-package context
//   - pkg/classify: Uses membership for internal/external classification
//   - pkg/manifest: Supplies the member set from workspace globs
package workspace
