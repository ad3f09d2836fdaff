package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
	"mvdan.cc/sh/v3/syntax"
)

type CommandCommand struct {
	profileFlags
	Lines bool
}

func (*CommandCommand) Name() string     { return "command" }
func (*CommandCommand) Synopsis() string { return "print the game command line" }
func (*CommandCommand) Usage() string {
	return `Usage: claunch command [-profile launch.hcl] [-version id] [-l]

	Prints the command line that launch would run, quoted for a POSIX
	shell. Natives are not extracted.

Flags:
`
}

func (cmd *CommandCommand) SetFlags(fs *flag.FlagSet) {
	cmd.profileFlags.SetFlags(fs)
	fs.BoolVar(&cmd.Lines, "l", false, "print one argument per line")
}

func (cmd *CommandCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	pr, ok := cmd.Load()
	if !ok {
		return subcommands.ExitFailure
	}
	res, err := newLauncher().Plan(pr.Config())
	if err != nil {
		log.Printf("resolve %q: %+v", pr.Version, err)
		return subcommands.ExitFailure
	}
	quoted, err := quoteArgs(res.Command)
	if err != nil {
		log.Printf("quote: %+v", err)
		return subcommands.ExitFailure
	}
	sep := " "
	if cmd.Lines {
		sep = " \\\n\t"
	}
	if _, err := fmt.Println(strings.Join(quoted, sep)); err != nil {
		log.Printf("write %q: %+v", os.Stdout.Name(), err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func quoteArgs(args []string) ([]string, error) {
	quoted := make([]string, len(args))
	for i, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		quoted[i] = q
	}
	return quoted, nil
}
