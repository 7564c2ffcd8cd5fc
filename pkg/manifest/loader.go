package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/observability"
	"github.com/marchblue/cascade/pkg/source"
	"github.com/marchblue/cascade/pkg/workspace"
)

// manifestFile is the decoded subset of package.json this tool understands.
// The raw document is kept alongside so writes don't drop unknown fields.
type manifestFile struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Workspaces           []string          `json:"workspaces"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// PackageFile is one loaded manifest.
type PackageFile struct {
	Dir  string
	Path string

	Name    string
	Version string

	decoded manifestFile
	raw     map[string]json.RawMessage
}

// Workspace is the loaded repository: everything the engine needs plus the
// file handles the writer needs.
type Workspace struct {
	Root    string
	Context workspace.Context

	Packages []graph.Package
	Edges    []graph.Edge

	// Files maps package name to its manifest.
	Files map[string]*PackageFile

	// Diagnostics collects per-specifier parse failures and other
	// recoverable load problems.
	Diagnostics []string
}

// Loader reads workspaces from disk.
type Loader struct {
	log *observability.Logger
}

// NewLoader creates a loader. A nil logger disables logging.
func NewLoader(log *observability.Logger) *Loader {
	if log == nil {
		log = observability.NewNopLogger()
	}
	return &Loader{log: log}
}

// LoadWorkspace reads the manifest at root and, when it declares
// workspaces, every member manifest the globs match. Members load
// concurrently; the first read or decode failure aborts the load.
func (l *Loader) LoadWorkspace(ctx context.Context, root string) (*Workspace, error) {
	rootFile, err := readManifest(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, err
	}

	memberDirs, err := expandWorkspaceGlobs(root, rootFile.decoded.Workspaces)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		Root:  root,
		Files: make(map[string]*PackageFile),
	}

	if len(memberDirs) == 0 {
		// Single-package repository.
		ws.Context = workspace.Detect(nil)
		ws.Files[rootFile.Name] = rootFile
		ws.Packages = []graph.Package{{Name: rootFile.Name, Version: rootFile.Version}}
		l.collectEdges(ws, rootFile)
		l.log.WithField("package", rootFile.Name).Debug("loaded single-package repository")
		return ws, nil
	}

	files := make([]*PackageFile, len(memberDirs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, dir := range memberDirs {
		i, dir := i, dir
		g.Go(func() error {
			f, err := readManifest(filepath.Join(dir, "package.json"))
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	memberNames := make([]string, 0, len(files))
	for _, f := range files {
		if f.Name == "" {
			ws.Diagnostics = append(ws.Diagnostics,
				fmt.Sprintf("manifest %s has no name; skipped", f.Path))
			continue
		}
		memberNames = append(memberNames, f.Name)
		ws.Files[f.Name] = f
	}
	sort.Strings(memberNames)

	ws.Context = workspace.Detect(memberNames)
	for _, name := range memberNames {
		f := ws.Files[name]
		ws.Packages = append(ws.Packages, graph.Package{Name: f.Name, Version: f.Version})
	}
	for _, name := range memberNames {
		l.collectEdges(ws, ws.Files[name])
	}

	l.log.WithFields(map[string]interface{}{
		"members": len(memberNames),
		"edges":   len(ws.Edges),
	}).Debug("loaded workspace")
	return ws, nil
}

// collectEdges parses every dependency section of f into graph edges.
// Specifier parse failures become diagnostics, not errors.
func (l *Loader) collectEdges(ws *Workspace, f *PackageFile) {
	parser := source.NewParser(ws.Context)
	sections := []struct {
		deps map[string]string
		kind graph.EdgeKind
	}{
		{f.decoded.Dependencies, graph.KindProduction},
		{f.decoded.DevDependencies, graph.KindDevelopment},
		{f.decoded.PeerDependencies, graph.KindPeer},
		{f.decoded.OptionalDependencies, graph.KindOptional},
	}
	for _, section := range sections {
		for _, dep := range sortedDepNames(section.deps) {
			src, err := parser.Parse(section.deps[dep])
			if err != nil {
				ws.Diagnostics = append(ws.Diagnostics,
					fmt.Sprintf("%s: dependency %s: %v", f.Name, dep, err))
				continue
			}
			ws.Edges = append(ws.Edges, graph.Edge{
				Consumer:   f.Name,
				Dependency: dep,
				Source:     src,
				Kind:       section.kind,
			})
		}
	}
}

func sortedDepNames(deps map[string]string) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readManifest(path string) (*PackageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	var decoded manifestFile
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return &PackageFile{
		Dir:     filepath.Dir(path),
		Path:    path,
		Name:    decoded.Name,
		Version: decoded.Version,
		decoded: decoded,
		raw:     raw,
	}, nil
}

// expandWorkspaceGlobs resolves workspace patterns like "packages/*" to
// directories containing a package.json.
func expandWorkspaceGlobs(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("workspace glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(match, "package.json")); err != nil {
				continue
			}
			if !seen[match] {
				seen[match] = true
				dirs = append(dirs, match)
			}
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
