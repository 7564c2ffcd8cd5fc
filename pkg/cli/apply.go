package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marchblue/cascade/pkg/changelog"
	"github.com/marchblue/cascade/pkg/manifest"
)

func newApplyCommand() *Command {
	cmd := &Command{
		Name:        "apply",
		Description: "Write bumped versions and reference updates to manifests",
		Flags:       flag.NewFlagSet("apply", flag.ExitOnError),
	}

	root := cmd.Flags.String("root", ".", "Repository root")
	snapshot := cmd.Flags.String("snapshot", "", "Resolve pending bumps as snapshot versions with this identifier")
	writeChangelogs := cmd.Flags.Bool("changelog", false, "Prepend changelog sections to each affected package's CHANGELOG.md")
	keepChanges := cmd.Flags.Bool("keep-changes", false, "Keep consumed change files instead of deleting them")
	var bumps multiFlag
	cmd.Flags.Var(&bumps, "bump", "Override a bump intent as package=level (repeatable)")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		res, err := runResolution(*root, bumps, *snapshot)
		if err != nil {
			return err
		}
		renderReport(os.Stdout, res.Report)

		if err := manifest.Apply(res.Workspace, res.Report); err != nil {
			return err
		}

		if *writeChangelogs {
			if err := writeChangelogSections(res); err != nil {
				return err
			}
		}

		// Snapshot versions are ephemeral; the pending changes stay.
		if *snapshot == "" && !*keepChanges {
			for _, file := range res.Changes.Files {
				if err := os.Remove(file); err != nil {
					return fmt.Errorf("remove change file: %w", err)
				}
			}
		}

		fmt.Printf("Applied %d version bumps.\n", len(res.Report.AffectedPackages))
		return nil
	}

	return cmd
}

func writeChangelogSections(res *resolution) error {
	for _, section := range changelog.Render(res.Report, res.Changes.Summaries) {
		file, ok := res.Workspace.Files[section.Package]
		if !ok {
			continue
		}
		path := filepath.Join(file.Dir, "CHANGELOG.md")
		existing, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read changelog: %w", err)
		}
		content := section.Markdown
		if len(existing) > 0 {
			content += "\n" + string(existing)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write changelog: %w", err)
		}
	}
	return nil
}
