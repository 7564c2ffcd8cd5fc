// Package config loads cascade configuration from the project file and
// environment variables.
//
// # Overview
//
// Configuration lives in .cascade.yaml at the repository root; environment
// variables override individual settings. Everything has a sensible
// default, so a repository with no configuration resolves with the
// independent strategy and a patch minimum dependency bump.
//
// # Configuration Structure
//
//	strategy: independent   # independent, unified, mixed
//	minimum_bump: patch     # patch, minor, major
//	max_depth: 0            # 0 = unbounded
//	log_level: info
//	groups:
//	  core:
//	    - "@acme/runtime"
//	    - "@acme/compiler"
//	excluded:
//	  - "@acme/examples"
//
// Environment overrides:
//
//	CASCADE_STRATEGY="unified"
//	CASCADE_MINIMUM_BUMP="minor"
//	CASCADE_MAX_DEPTH="5"
//	CASCADE_LOG_LEVEL="debug"
//
// # Usage Example
//
//	cfg, err := config.Load(".")
//	strategy, err := cfg.Strategy()
//	propagation := cfg.Propagation()
//
// # Related Packages
//
//   - pkg/resolve: Consumes the strategy and propagation configuration
package config
