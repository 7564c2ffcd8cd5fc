package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/marchblue/cascade/pkg/changes"
	"github.com/marchblue/cascade/pkg/config"
	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/manifest"
	"github.com/marchblue/cascade/pkg/resolve"
)

// cascade-watcher recomputes the release plan whenever a manifest or
// pending change file is written, so a terminal can show the effect of
// edits as they happen. It never writes anything.
func main() {
	root := flag.String("root", ".", "Repository root to watch")
	delaySeconds := flag.Int("delay", 2, "Delay in seconds before recomputing after a change")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Close()

	if err := setupWatcher(watcher, *root); err != nil {
		logger.Fatalf("Failed to setup watcher: %v", err)
	}

	delay := time.Duration(*delaySeconds) * time.Second
	var timer *time.Timer
	recompute := func() {
		plan(logger, *root)
	}

	// Initial plan before any event arrives.
	recompute()

	logger.Infof("Watching %s for manifest and change-file edits", *root)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && relevant(event.Name) {
				logger.WithField("file", event.Name).Info("Change detected")
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(delay, recompute)
			}
			// Watch directories created after startup (new packages).
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warnf("Error watching new directory: %v", err)
					}
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("Watcher error: %v", err)
		}
	}
}

// relevant reports whether a changed path affects the release plan.
func relevant(path string) bool {
	base := filepath.Base(path)
	if base == "package.json" || base == config.FileName {
		return true
	}
	ext := filepath.Ext(base)
	return (ext == ".yaml" || ext == ".yml") && filepath.Base(filepath.Dir(path)) == ".cascade"
}

// setupWatcher recursively adds all directories under root, skipping
// node_modules and VCS metadata.
func setupWatcher(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		switch info.Name() {
		case "node_modules", ".git":
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// plan runs one preview resolution and logs the outcome.
func plan(logger *logrus.Logger, root string) {
	cfg, err := config.Load(root)
	if err != nil {
		logger.Errorf("Config load failed: %v", err)
		return
	}

	loader := manifest.NewLoader(cfg.Logger())
	ws, err := loader.LoadWorkspace(context.Background(), root)
	if err != nil {
		logger.Errorf("Workspace load failed: %v", err)
		return
	}

	set, err := changes.LoadDir(filepath.Join(root, cfg.ChangeDir))
	if err != nil {
		logger.Errorf("Change files load failed: %v", err)
		return
	}

	g, err := graph.Build(ws.Packages, ws.Edges)
	if err != nil {
		logger.Errorf("Graph build failed: %v", err)
		return
	}

	strategy, err := cfg.Strategy()
	if err != nil {
		logger.Errorf("Strategy config invalid: %v", err)
		return
	}

	engine := resolve.NewEngine(cfg.Logger())
	report := engine.Propagate(g, ws.Context, set.Intents, strategy, cfg.Propagation())

	entry := logger.WithFields(logrus.Fields{
		"run_id":   report.RunID,
		"affected": len(report.AffectedPackages),
		"warnings": len(report.Warnings),
		"errors":   len(report.Errors),
	})
	if len(report.AffectedPackages) == 0 {
		entry.Info("No pending releases")
		return
	}
	entry.Info("Release plan updated")
	for _, name := range report.AffectedPackages {
		version, _ := report.NewVersion(name)
		logger.Infof("  %s -> %s", name, version)
	}
	for _, warning := range report.Warnings {
		logger.Warn(warning)
	}
	for _, errMsg := range report.Errors {
		logger.Error(errMsg)
	}
}
