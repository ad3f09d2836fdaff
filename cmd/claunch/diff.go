package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
	"github.com/pkg/diff"

	"github.com/tie/claunch/profile"
)

type DiffCommand struct {
	ProfilePath string
	VersionA    string
	VersionB    string
	ContextSize int
}

func (*DiffCommand) Name() string     { return "diff" }
func (*DiffCommand) Synopsis() string { return "compare command lines of two versions" }
func (*DiffCommand) Usage() string {
	return `Usage: claunch diff -a id -b id [-profile launch.hcl] [-c int]

	Resolves two versions under the same profile and prints a unified diff
	of their command lines, one argument per line. Useful to see what a
	mod loader adds on top of the version it inherits from.

Flags:
`
}

func (cmd *DiffCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&cmd.ProfilePath, "profile", defaultProfile, "launch profile path")
	fs.StringVar(&cmd.VersionA, "a", "", "first version id")
	fs.StringVar(&cmd.VersionB, "b", "", "second version id")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context")
}

func (cmd *DiffCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if cmd.VersionA == "" || cmd.VersionB == "" {
		fs.Usage()
		return subcommands.ExitUsageError
	}
	pr, ok := loadProfile(cmd.ProfilePath)
	if !ok {
		return subcommands.ExitFailure
	}

	l := newLauncher()
	lines := make([][][]byte, 2)
	if pr.Manifest != "" {
		log.Printf("ignoring manifest %q of profile %q", pr.Manifest, cmd.ProfilePath)
	}
	for i, id := range []string{cmd.VersionA, cmd.VersionB} {
		vpr := withVersion(pr, id)
		if !validate(cmd.ProfilePath, &vpr) {
			return subcommands.ExitFailure
		}
		res, err := l.Plan(vpr.Config())
		if err != nil {
			log.Printf("resolve %q: %+v", id, err)
			return subcommands.ExitFailure
		}
		lines[i] = make([][]byte, len(res.Command))
		for j, arg := range res.Command {
			lines[i][j] = []byte(arg)
		}
	}

	_, color := fdinfo(int(os.Stdout.Fd()))
	err := writeDiff(ctx, os.Stdout, cmd.VersionA, cmd.VersionB, lines[0], lines[1], color, cmd.ContextSize)
	if err != nil {
		log.Printf("write diff: %+v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// withVersion returns pr set up to launch version id. A manifest path in
// the profile names a single version and is dropped.
func withVersion(pr profile.Profile, id string) profile.Profile {
	pr.Version = id
	pr.Manifest = ""
	return pr
}

// writeDiff writes a unified diff of two line sequences. A negative
// contextSize prints whole files.
func writeDiff(ctx context.Context, w io.Writer, aname, bname string, a, b [][]byte, color bool, contextSize int) error {
	opts := []diff.WriteOpt{diff.Names(aname, bname)}
	if color {
		opts = append(opts, diff.TerminalColor())
	}
	pair := diff.Bytes(a, b)
	edit := diff.Myers(ctx, pair)
	if contextSize >= 0 {
		edit = edit.WithContextSize(contextSize)
	}
	_, err := edit.WriteUnified(w, pair, opts...)
	return err
}

func splitLines(b []byte) [][]byte {
	return bytes.Split(b, []byte("\n"))
}
