package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/marchblue/cascade/pkg/resolve"
)

// Apply writes a resolution report back to the workspace manifests: every
// bumped package's version field and every reference update whose new
// reference differs from the old one. Only files that actually changed are
// rewritten.
func Apply(ws *Workspace, report *resolve.Report) error {
	dirty := make(map[string]bool)

	for name, version := range report.Bumped() {
		f, ok := ws.Files[name]
		if !ok {
			continue
		}
		if f.Version != version {
			f.setVersion(version)
			dirty[name] = true
		}
	}

	for _, update := range report.ReferenceUpdates {
		if update.NewRef == update.OldRef {
			continue
		}
		f, ok := ws.Files[update.Package]
		if !ok {
			continue
		}
		if f.setDependency(update.Dependency, update.OldRef, update.NewRef) {
			dirty[update.Package] = true
		}
	}

	for name := range dirty {
		if err := ws.Files[name].save(); err != nil {
			return fmt.Errorf("write manifest for %s: %w", name, err)
		}
	}
	return nil
}

func (f *PackageFile) setVersion(version string) {
	f.Version = version
	f.decoded.Version = version
	f.raw["version"] = jsonString(version)
}

// setDependency rewrites dep's specifier in every section where the old
// reference matches. Returns whether anything changed.
func (f *PackageFile) setDependency(dep, oldRef, newRef string) bool {
	changed := false
	sections := []struct {
		key  string
		deps map[string]string
	}{
		{"dependencies", f.decoded.Dependencies},
		{"devDependencies", f.decoded.DevDependencies},
		{"peerDependencies", f.decoded.PeerDependencies},
		{"optionalDependencies", f.decoded.OptionalDependencies},
	}
	for _, section := range sections {
		current, ok := section.deps[dep]
		if !ok || current != oldRef {
			continue
		}
		section.deps[dep] = newRef
		encoded, err := json.Marshal(section.deps)
		if err != nil {
			continue
		}
		f.raw[section.key] = encoded
		changed = true
	}
	return changed
}

func (f *PackageFile) save() error {
	data, err := json.MarshalIndent(f.raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, append(data, '\n'), 0644)
}

func jsonString(s string) json.RawMessage {
	encoded, _ := json.Marshal(s)
	return encoded
}
