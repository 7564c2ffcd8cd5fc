package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marchblue/cascade/pkg/changes"
	"github.com/marchblue/cascade/pkg/config"
	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/manifest"
	"github.com/marchblue/cascade/pkg/resolve"
	"github.com/marchblue/cascade/pkg/semver"
)

// resolution bundles everything one plan/apply invocation produced.
type resolution struct {
	Config    *config.Config
	Workspace *manifest.Workspace
	Changes   *changes.Set
	Report    *resolve.Report
}

// runResolution loads the workspace, merges change files with --bump
// overrides, and runs the propagation engine. Pure preview: nothing is
// written.
func runResolution(root string, bumpOverrides []string, snapshotID string) (*resolution, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger()

	loader := manifest.NewLoader(log)
	ws, err := loader.LoadWorkspace(context.Background(), root)
	if err != nil {
		return nil, err
	}

	set, err := changes.LoadDir(filepath.Join(root, cfg.ChangeDir))
	if err != nil {
		return nil, err
	}
	if err := mergeOverrides(set, bumpOverrides); err != nil {
		return nil, err
	}
	if snapshotID != "" {
		// Snapshot runs re-tag every pending bump as an ephemeral
		// prerelease; nothing numeric moves.
		for name, intent := range set.Intents {
			if intent.Kind != semver.BumpNone {
				set.Intents[name] = semver.Snapshot(snapshotID)
			}
		}
	}

	g, err := graph.Build(ws.Packages, ws.Edges)
	if err != nil {
		return nil, err
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}

	engine := resolve.NewEngine(log)
	report := engine.Propagate(g, ws.Context, set.Intents, strategy, cfg.Propagation())
	report.Warnings = append(ws.Diagnostics, report.Warnings...)

	return &resolution{Config: cfg, Workspace: ws, Changes: set, Report: report}, nil
}

// mergeOverrides applies --bump name=level flags over the change files.
func mergeOverrides(set *changes.Set, overrides []string) error {
	for _, raw := range overrides {
		name, level, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid --bump %q; expected package=level", raw)
		}
		intent, err := changes.ParseBump(level)
		if err != nil {
			return fmt.Errorf("--bump %q: %w", raw, err)
		}
		set.Intents[name] = intent
	}
	return nil
}
