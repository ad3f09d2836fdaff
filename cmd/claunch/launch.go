package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"

	"github.com/tie/claunch/launcher"
)

type LaunchCommand struct {
	profileFlags
	DryRun bool
}

func (*LaunchCommand) Name() string     { return "launch" }
func (*LaunchCommand) Synopsis() string { return "launch the game" }
func (*LaunchCommand) Usage() string {
	return `Usage: claunch launch [-profile launch.hcl] [-version id] [-n]

	Resolves the version named by the profile, extracts its natives and
	starts the game. The exit code of the game is passed through.

	With -n the command line is resolved and summarized but nothing is
	written to disk and the game is not started.

Flags:
`
}

func (cmd *LaunchCommand) SetFlags(fs *flag.FlagSet) {
	cmd.profileFlags.SetFlags(fs)
	fs.BoolVar(&cmd.DryRun, "n", false, "print the summary without launching")
}

func (cmd *LaunchCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	pr, ok := cmd.Load()
	if !ok {
		return subcommands.ExitFailure
	}
	l := newLauncher()
	cfg := pr.Config()

	if cmd.DryRun {
		res, err := l.Plan(cfg)
		if err != nil {
			log.Printf("resolve %q: %+v", pr.Version, err)
			return subcommands.ExitFailure
		}
		if err := printSummary(os.Stdout, res); err != nil {
			log.Printf("write summary: %+v", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	res, code, err := l.Launch(ctx, cfg)
	if err != nil {
		log.Printf("launch %q: %+v", pr.Version, err)
		return subcommands.ExitFailure
	}
	log.Infof("%s exited with code %d", res.Version.ID(), code)
	return subcommands.ExitStatus(code)
}

func printSummary(w io.Writer, res *launcher.Result) error {
	v := res.Version
	inherits := "-"
	if v.HasParent() {
		inherits = v.Parent.ID
	}
	java := "-"
	if n := v.JavaMajorVersion(); n > 0 {
		java = fmt.Sprint(n)
	}
	_, err := fmt.Fprintf(w, `version:   %s
inherits:  %s
loader:    %s
java:      %s
libraries: %d
natives:   %s
command:   %s
`, v.ID(), inherits, res.Loader, java, res.Libraries, res.NativeDir, res.Sum())
	return err
}
