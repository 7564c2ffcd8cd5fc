package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/marchblue/cascade/pkg/resolve"
)

// renderReport writes the human-readable version diff.
func renderReport(w io.Writer, report *resolve.Report) {
	if len(report.AffectedPackages) == 0 {
		fmt.Fprintln(w, "No packages affected.")
	}

	if len(report.PrimaryBumps) > 0 {
		fmt.Fprintln(w, "Primary bumps:")
		for _, name := range sortedNames(report.PrimaryBumps) {
			fmt.Fprintf(w, "  %s -> %s\n", name, report.PrimaryBumps[name])
		}
	}
	if len(report.CascadeBumps) > 0 {
		fmt.Fprintln(w, "Cascade bumps:")
		for _, name := range sortedNames(report.CascadeBumps) {
			fmt.Fprintf(w, "  %s -> %s\n", name, report.CascadeBumps[name])
		}
	}

	if len(report.ReferenceUpdates) > 0 {
		fmt.Fprintln(w, "Reference updates:")
		for _, update := range report.ReferenceUpdates {
			if update.NewRef == update.OldRef {
				fmt.Fprintf(w, "  %s: %s %q unchanged (%s)\n",
					update.Package, update.Dependency, update.OldRef, update.Kind)
				continue
			}
			fmt.Fprintf(w, "  %s: %s %q -> %q (%s)\n",
				update.Package, update.Dependency, update.OldRef, update.NewRef, update.Kind)
		}
	}

	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	for _, errMsg := range report.Errors {
		fmt.Fprintf(w, "error: %s\n", errMsg)
	}
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
