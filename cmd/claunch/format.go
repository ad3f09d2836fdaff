package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/subcommands"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/tie/internal/renameio"
	"github.com/tie/internal/robustio"

	"github.com/tie/claunch/profile"
)

type FormatCommand struct {
	DisableCheck bool
	Overwrite    bool
	ContextSize  int
}

func (*FormatCommand) Name() string     { return "fmt" }
func (*FormatCommand) Synopsis() string { return "format profiles" }
func (*FormatCommand) Usage() string {
	return `Usage: claunch fmt [-c int] [-w] [-nocheck] [profile paths]

	Formats profiles using standard syntax. It can either write files
	in-places or generate unified diff with specified context size.

Flags:
`
}

func (cmd *FormatCommand) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&cmd.DisableCheck, "nocheck", false, "disable diagnostics")
	fs.BoolVar(&cmd.Overwrite, "w", false, "write result to (source) file instead of stdout")
	fs.IntVar(&cmd.ContextSize, "c", 3, "output n lines of diff context")
}

func (cmd *FormatCommand) Execute(ctx context.Context, fs *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var color bool
	var parser *hclparse.Parser
	var diagWr hcl.DiagnosticWriter
	if !cmd.DisableCheck {
		parser = hclparse.NewParser()
		diagWr, color = newDiagWr(parser)
	}

	paths := fs.Args()
	if len(paths) <= 0 {
		paths = []string{defaultProfile}
	} else {
		sort.Strings(paths)
	}

	seen := make(map[string]bool, len(paths))
	for _, fpath := range paths {
		if seen[fpath] {
			continue
		}
		seen[fpath] = true
		src, err := robustio.ReadFile(fpath)
		if err != nil {
			log.Printf("read profile %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}

		if !cmd.DisableCheck {
			_, diags := profile.Parse(parser, src, fpath)
			if len(diags) > 0 {
				if err := diagWr.WriteDiagnostics(diags); err != nil {
					log.Printf("write diags: %+v", err)
					return subcommands.ExitFailure
				}
			}
			if diags.HasErrors() {
				return subcommands.ExitFailure
			}
		}

		outSrc := hclwrite.Format(src)
		if bytes.Equal(src, outSrc) {
			continue
		}
		if !cmd.Overwrite {
			name := filepath.ToSlash(fpath)
			a, b := splitLines(src), splitLines(outSrc)
			err := writeDiff(ctx, os.Stdout, "a/"+name, "b/"+name, a, b, color, cmd.ContextSize)
			if err != nil {
				log.Printf("write diff: %+v", err)
				return subcommands.ExitFailure
			}
			continue
		}
		if err := renameio.WriteFile(fpath, outSrc, 0644); err != nil {
			log.Printf("write file %q: %+v", fpath, err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}

