package changelog

import (
	"fmt"
	"strings"

	"github.com/marchblue/cascade/pkg/resolve"
)

// Section is one package's rendered changelog entry.
type Section struct {
	Package  string
	Version  string
	Markdown string
}

// Render produces one section per affected package, in report order.
// Summaries map package name to its changelog lines; packages bumped only
// by cascade get a standard dependency-update line.
func Render(report *resolve.Report, summaries map[string][]string) []Section {
	sections := make([]Section, 0, len(report.AffectedPackages))
	for _, name := range report.AffectedPackages {
		version, ok := report.NewVersion(name)
		if !ok {
			continue
		}
		sections = append(sections, Section{
			Package:  name,
			Version:  version,
			Markdown: renderSection(name, version, summaries[name]),
		})
	}
	return sections
}

func renderSection(name, version string, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s %s\n\n", name, version)
	if len(lines) == 0 {
		b.WriteString("- Dependency updates only.\n")
		return b.String()
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(line))
	}
	return b.String()
}
