package cli

import (
	"flag"
	"fmt"
	"os"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint(*m) }

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func newPlanCommand() *Command {
	cmd := &Command{
		Name:        "plan",
		Description: "Preview next versions without modifying any file",
		Flags:       flag.NewFlagSet("plan", flag.ExitOnError),
	}

	root := cmd.Flags.String("root", ".", "Repository root")
	snapshot := cmd.Flags.String("snapshot", "", "Resolve pending bumps as snapshot versions with this identifier")
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
		return nil
	}

	return cmd
}
