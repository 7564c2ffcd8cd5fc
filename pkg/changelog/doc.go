// Package changelog renders markdown changelog sections from a resolution
// report.
//
// # Overview
//
// For every affected package the renderer produces one version heading
// with the recorded change summaries, marking cascade bumps that carry no
// summaries as dependency-only releases. Rendering is pure; writing the
// sections into CHANGELOG.md files is the caller's decision.
//
// # Usage Example
//
//	sections := changelog.Render(report, set.Summaries)
//	for _, s := range sections {
//		fmt.Println(s.Markdown)
//	}
//
// # Related Packages
//
//   - pkg/resolve: Supplies the affected packages and versions
//   - pkg/changes: Supplies the per-package summaries
package changelog
