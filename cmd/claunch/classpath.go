package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
)

type ClasspathCommand struct {
	profileFlags
}

func (*ClasspathCommand) Name() string     { return "classpath" }
func (*ClasspathCommand) Synopsis() string { return "print classpath entries" }
func (*ClasspathCommand) Usage() string {
	return `Usage: claunch classpath [-profile launch.hcl] [-version id]

	Prints the resolved classpath, one entry per line, in the order the
	game receives it.

Flags:
`
}

func (cmd *ClasspathCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	pr, ok := cmd.Load()
	if !ok {
		return subcommands.ExitFailure
	}
	l := newLauncher()
	res, err := l.Plan(pr.Config())
	if err != nil {
		log.Printf("resolve %q: %+v", pr.Version, err)
		return subcommands.ExitFailure
	}
	for _, entry := range strings.Split(res.Classpath, l.Platform.ListSeparator()) {
		fmt.Println(entry)
	}
	return subcommands.ExitSuccess
}
