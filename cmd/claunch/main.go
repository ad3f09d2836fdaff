package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
)

const (
	programName    = "claunch"
	defaultProfile = "launch.hcl"
)

func init() {
	log.SetPrefix(programName)
	log.SetReportTimestamp(false)
}

func main() {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.Bool("h", false, "alias for help")
	fs.Bool("help", false, "print usage")
	verbose := fs.Bool("v", false, "print debug messages")

	cdr := subcommands.NewCommander(fs, programName)
	cdr.Register(&LaunchCommand{}, "")
	cdr.Register(&CommandCommand{}, "")
	cdr.Register(&ClasspathCommand{}, "")
	cdr.Register(&DiffCommand{}, "")
	cdr.Register(&InitCommand{}, "")
	cdr.Register(&FormatCommand{}, "")
	cdr.Register(cdr.HelpCommand(), "help")
	cdr.Register(cdr.FlagsCommand(), "help")
	cdr.Register(cdr.CommandsCommand(), "help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := cdr.Execute(ctx)
	stop()
	// Launch passes the exit code of the game through.
	if status != subcommands.ExitSuccess {
		os.Exit(int(status))
	}
}
