// Package source parses raw dependency specifiers into typed dependency
// sources.
//
// # Overview
//
// A manifest declares each dependency as an opaque string: a registry range,
// a workspace: protocol reference, a local file or link path, a git
// repository, a GitHub shorthand, a cross-registry alias, or a tarball URL.
// This package recognizes every protocol by structural prefix in a fixed
// precedence order and produces one variant of a closed Source union per
// protocol, so downstream code consumes specifiers by exhaustive type
// switch instead of re-parsing strings.
//
// Parsing is context aware: workspace: specifiers are only legal in a
// workspace project context and fail with ErrUnsupportedProtocol in a
// single-package repository.
//
// # Precedence
//
// workspace: > npm: > jsr: > git (git+, git://, github:, user/repo
// shorthand) > file:/link: > http(s) tarball > scoped alias > bare semver
// range. Anything else is a malformed specifier.
//
// # Usage Example
//
//	p := source.NewParser(ctx)
//	src, err := p.Parse("workspace:^1.2.0")
//	switch s := src.(type) {
//	case source.WorkspaceExact:
//		fmt.Println(s.Range)
//	case source.RegistrySemver:
//		fmt.Println(s.Range)
//	}
//
// # Related Packages
//
//   - pkg/semver: Range validation
//   - pkg/classify: Maps sources to internal reference types
package source
