package main

import (
	"context"
	"flag"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"

	"github.com/tie/internal/renameio"

	"github.com/tie/claunch/profile"
)

type InitCommand struct {
	OutputPath string
	GameRoot   string
	Version    string
	Java       string
	Username   string
	Force      bool
}

func (*InitCommand) Name() string     { return "init" }
func (*InitCommand) Synopsis() string { return "write a starter profile" }
func (*InitCommand) Usage() string {
	return `Usage: claunch init [-o launch.hcl] [-root dir] [-version id] [-java path] [-user name] [-f]

	Writes a launch profile with default settings. The java executable
	is looked up in PATH unless given. An existing profile is kept
	unless -f is set.

Flags:
`
}

func (cmd *InitCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.OutputPath, "o", defaultProfile, "output profile path")
	fs.StringVar(&cmd.GameRoot, "root", ".", "game root directory")
	fs.StringVar(&cmd.Version, "version", "", "version id")
	fs.StringVar(&cmd.Java, "java", "", "java executable")
	fs.StringVar(&cmd.Username, "user", profile.DefaultUsername, "player name")
	fs.BoolVar(&cmd.Force, "f", false, "overwrite an existing profile")
}

func (cmd *InitCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	fpath := cmd.OutputPath
	if _, err := os.Stat(fpath); err == nil && !cmd.Force {
		log.Printf("%q already exists", fpath)
		return subcommands.ExitFailure
	}

	java := cmd.Java
	if java == "" {
		var err error
		java, err = exec.LookPath("java")
		if err != nil {
			log.Printf("find java: %+v", err)
		}
	}

	pr := profile.Default()
	pr.GameRoot = cmd.GameRoot
	pr.Version = cmd.Version
	pr.Java = java
	pr.Username = cmd.Username

	if err := renameio.WriteFile(fpath, pr.Encode(), 0644); err != nil {
		log.Printf("write %q: %+v", fpath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
