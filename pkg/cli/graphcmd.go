package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/marchblue/cascade/pkg/classify"
	"github.com/marchblue/cascade/pkg/config"
	"github.com/marchblue/cascade/pkg/graph"
	"github.com/marchblue/cascade/pkg/manifest"
)

func newGraphCommand() *Command {
	cmd := &Command{
		Name:        "graph",
		Description: "Inspect the dependency graph, cycles, and classifications",
		Flags:       flag.NewFlagSet("graph", flag.ExitOnError),
	}

	root := cmd.Flags.String("root", ".", "Repository root")
	showEdges := cmd.Flags.Bool("edges", false, "List every internal edge")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		cfg, err := config.Load(*root)
		if err != nil {
			return err
		}
		loader := manifest.NewLoader(cfg.Logger())
		ws, err := loader.LoadWorkspace(context.Background(), *root)
		if err != nil {
			return err
		}
		g, err := graph.Build(ws.Packages, ws.Edges)
		if err != nil {
			return err
		}

		fmt.Printf("Packages: %d (%s context)\n", g.Len(), ws.Context.Kind())
		fmt.Printf("Internal edges: %d, external edges: %d\n",
			len(g.Edges()), len(g.ExternalEdges()))

		if *showEdges {
			for _, edge := range g.Edges() {
				fmt.Printf("  %s -> %s (%s, %s)\n",
					edge.Consumer, edge.Dependency, edge.Kind, edge.Source)
			}
		}

		cycles := graph.DetectCycles(g)
		if len(cycles) == 0 {
			fmt.Println("No dependency cycles.")
		}
		for _, cycle := range cycles {
			fmt.Printf("cycle (%s): %s\n", cycle.Severity, cycle)
		}

		classes := classify.Classify(g, ws.Context)
		for _, key := range classify.SortedKeys(classes) {
			cls := classes[key]
			if cls.Warning == "" {
				continue
			}
			fmt.Fprintf(os.Stderr, "warning: %s -> %s: %s\n",
				key.Consumer, key.Dependency, cls.Warning)
		}

		for _, diagnostic := range ws.Diagnostics {
			fmt.Fprintf(os.Stderr, "warning: %s\n", diagnostic)
		}
		return nil
	}

	return cmd
}
