package changes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marchblue/cascade/pkg/semver"
)

// changeFile is one pending change as written by a contributor.
type changeFile struct {
	Bumps   map[string]string `yaml:"bumps"`
	Summary string            `yaml:"summary"`
}

// Set is the merged view of every pending change file.
type Set struct {
	// Intents is the highest-precedence bump recorded per package.
	Intents map[string]semver.Intent

	// Summaries holds changelog lines per package, in file order.
	Summaries map[string][]string

	// Files lists the change files that were read, sorted.
	Files []string
}

// LoadDir reads every .yaml/.yml change file in dir and merges them. A
// missing directory is an empty set, not an error.
func LoadDir(dir string) (*Set, error) {
	set := &Set{
		Intents:   make(map[string]semver.Intent),
		Summaries: make(map[string][]string),
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return set, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read change directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := set.merge(path); err != nil {
			return nil, err
		}
		set.Files = append(set.Files, path)
	}
	return set, nil
}

func (s *Set) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read change file: %w", err)
	}
	var cf changeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("parse change file %s: %w", path, err)
	}

	for _, pkg := range sortedBumpNames(cf.Bumps) {
		intent, err := ParseBump(cf.Bumps[pkg])
		if err != nil {
			return fmt.Errorf("change file %s: package %s: %w", path, pkg, err)
		}
		s.Intents[pkg] = semver.HigherPrecedence(s.Intents[pkg], intent)
		if cf.Summary != "" {
			s.Summaries[pkg] = append(s.Summaries[pkg], cf.Summary)
		}
	}
	return nil
}

// ParseBump converts a bump name ("major", "minor", "patch", "none") to an
// intent.
func ParseBump(name string) (semver.Intent, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "major":
		return semver.Major(), nil
	case "minor":
		return semver.Minor(), nil
	case "patch":
		return semver.Patch(), nil
	case "none", "":
		return semver.None(), nil
	default:
		return semver.Intent{}, fmt.Errorf("unknown bump level %q", name)
	}
}

func sortedBumpNames(bumps map[string]string) []string {
	names := make([]string, 0, len(bumps))
	for name := range bumps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
