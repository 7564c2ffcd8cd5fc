package cli

import (
	"flag"
	"fmt"

	"github.com/marchblue/cascade/pkg/changes"
	"github.com/marchblue/cascade/pkg/semver"
)

func newVersionCommand() *Command {
	cmd := &Command{
		Name:        "version",
		Description: "Resolve a single version against a bump level",
		Flags:       flag.NewFlagSet("version", flag.ExitOnError),
	}

	snapshot := cmd.Flags.String("snapshot", "", "Resolve as a snapshot with this identifier")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		rest := cmd.Flags.Args()
		if len(rest) < 1 || (len(rest) < 2 && *snapshot == "") {
			return fmt.Errorf("usage: cascade version [--snapshot id] <current> [major|minor|patch|none]")
		}

		intent := semver.Snapshot(*snapshot)
		if *snapshot == "" {
			parsed, err := changes.ParseBump(rest[1])
			if err != nil {
				return err
			}
			intent = parsed
		}

		next, err := semver.Resolve(rest[0], intent)
		if err != nil {
			return err
		}
		fmt.Println(next)
		return nil
	}

	return cmd
}
