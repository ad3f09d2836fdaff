package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/tie/claunch/launcher"
	"github.com/tie/claunch/models"
	"github.com/tie/claunch/profile"
)

func newDiagWr(p *hclparse.Parser) (diagWr hcl.DiagnosticWriter, color bool) {
	files := p.Files()
	stderr := os.Stderr
	fd := int(stderr.Fd())
	istty, color := fdinfo(fd)
	if !istty {
		diagWr := hcl.NewDiagnosticTextWriter(stderr, files, 80, color)
		return diagWr, color
	}
	var width uint
	if w, _, err := terminal.GetSize(fd); err != nil {
		log.Printf("get term size: %+v", err)
	} else if w >= 0 {
		width = uint(w)
	} else {
		width = 80
	}
	return hcl.NewDiagnosticTextWriter(stderr, files, width, color), color
}

func fdinfo(fd int) (istty, color bool) {
	istty = terminal.IsTerminal(fd)
	if istty {
		color = true
	}
	// See https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color = false
	}
	return
}

// profileFlags are shared by commands that launch or inspect a version.
type profileFlags struct {
	ProfilePath string
	Version     string
}

func (pf *profileFlags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&pf.ProfilePath, "profile", defaultProfile, "launch profile path")
	fs.StringVar(&pf.Version, "version", "", "override the profile version")
}

func (pf *profileFlags) Load() (profile.Profile, bool) {
	pr, ok := loadProfile(pf.ProfilePath)
	if !ok {
		return pr, false
	}
	if pf.Version != "" {
		pr = withVersion(pr, pf.Version)
	}
	return pr, validate(pf.ProfilePath, &pr)
}

func loadProfile(path string) (profile.Profile, bool) {
	parser := hclparse.NewParser()
	diagWr, _ := newDiagWr(parser)

	pr, diags := profile.Load(parser, path)
	if len(diags) > 0 {
		if err := diagWr.WriteDiagnostics(diags); err != nil {
			log.Printf("write diags: %+v", err)
		}
	}
	if diags.HasErrors() {
		return pr, false
	}
	if err := pr.ApplyEnv(nil); err != nil {
		log.Printf("parse env: %+v", err)
		return pr, false
	}
	return pr, true
}

func validate(path string, pr *profile.Profile) bool {
	if err := pr.Validate(); err != nil {
		log.Printf("profile %q: %+v", path, err)
		return false
	}
	return true
}

func newLauncher() *launcher.Launcher {
	return &launcher.Launcher{
		Files:    osfs.New(""),
		Platform: models.HostPlatform(),
		Log:      log.Default(),
	}
}
