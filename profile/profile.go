// Package profile reads launch profiles: HCL files describing what to
// launch and how, with a few settings overridable from the environment.
package profile

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/tie/internal/robustio"
	"github.com/zclconf/go-cty/cty"

	"github.com/tie/claunch/launcher"
	"github.com/tie/claunch/models"
	"github.com/tie/claunch/profile/hclspec"
)

const (
	DefaultMinMemory = "512M"
	DefaultMaxMemory = "2G"
	DefaultWidth     = 854
	DefaultHeight    = 480
	DefaultUsername  = "Player"

	// EnvPrefix prefixes environment overrides, e.g. CLAUNCH_JAVA.
	EnvPrefix = "CLAUNCH_"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidSize  = errors.New("invalid window size")
)

type Profile struct {
	GameRoot    string
	Version     string
	Manifest    string
	Java        string
	InstanceDir string
	Username    string
	MinMemory   string
	MaxMemory   string
	Width       int
	Height      int
	Offline     bool
	Demo        bool

	QuickPlayMode  models.QuickPlayMode
	QuickPlayValue string
}

// Default returns a profile with every optional setting at its default.
func Default() Profile {
	return Profile{
		Username:  DefaultUsername,
		MinMemory: DefaultMinMemory,
		MaxMemory: DefaultMaxMemory,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
}

// Load reads and parses the profile at path.
func Load(p *hclparse.Parser, path string) (Profile, hcl.Diagnostics) {
	src, err := robustio.ReadFile(path)
	if err != nil {
		return Profile{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to read file",
			Detail:   fmt.Sprintf("The profile %q could not be read: %v", path, err),
		}}
	}
	return Parse(p, src, path)
}

// Parse decodes profile source. Attributes left out keep their defaults.
func Parse(p *hclparse.Parser, src []byte, filename string) (Profile, hcl.Diagnostics) {
	file, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Profile{}, diags
	}
	var doc hclspec.Profile
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &doc)...)
	if diags.HasErrors() {
		return Profile{}, diags
	}
	return FromHCL(doc), diags
}

func FromHCL(doc hclspec.Profile) Profile {
	pr := Default()
	pr.GameRoot = doc.GameRoot
	pr.Version = doc.Version
	pr.Manifest = doc.Manifest
	pr.Java = doc.Java
	pr.InstanceDir = doc.InstanceDir
	setString(&pr.Username, doc.Username)
	setString(&pr.MinMemory, doc.MinMemory)
	setString(&pr.MaxMemory, doc.MaxMemory)
	if doc.Width > 0 {
		pr.Width = doc.Width
	}
	if doc.Height > 0 {
		pr.Height = doc.Height
	}
	pr.Offline = doc.Offline
	pr.Demo = doc.Demo
	if qp := doc.QuickPlay; qp != nil {
		pr.QuickPlayMode = models.QuickPlayMode(qp.Mode)
		pr.QuickPlayValue = qp.Value
	}
	return pr
}

type overrides struct {
	GameRoot  string `env:"GAME_ROOT"`
	Java      string `env:"JAVA"`
	Username  string `env:"USERNAME"`
	MinMemory string `env:"MIN_MEMORY"`
	MaxMemory string `env:"MAX_MEMORY"`
}

// ApplyEnv overrides settings with non-empty environment variables. A nil
// environ reads the process environment.
func (p *Profile) ApplyEnv(environ map[string]string) error {
	var o overrides
	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return err
	}
	setString(&p.GameRoot, o.GameRoot)
	setString(&p.Java, o.Java)
	setString(&p.Username, o.Username)
	setString(&p.MinMemory, o.MinMemory)
	setString(&p.MaxMemory, o.MaxMemory)
	return nil
}

func (p *Profile) Validate() error {
	required := []struct {
		name, value string
	}{
		{"game_root", p.GameRoot},
		{"version", p.Version},
		{"java", p.Java},
		{"username", p.Username},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, p.Width, p.Height)
	}
	return p.Options().Validate()
}

func (p *Profile) Options() models.LaunchOptions {
	return models.LaunchOptions{
		Demo:           p.Demo,
		QuickPlayMode:  p.QuickPlayMode,
		QuickPlayValue: p.QuickPlayValue,
	}
}

// Config converts the profile to a launch configuration.
func (p *Profile) Config() launcher.Config {
	return launcher.Config{
		GameRoot:    p.GameRoot,
		Version:     p.Version,
		Manifest:    p.Manifest,
		Java:        p.Java,
		InstanceDir: p.InstanceDir,
		Username:    p.Username,
		MinMemory:   p.MinMemory,
		MaxMemory:   p.MaxMemory,
		Width:       p.Width,
		Height:      p.Height,
		Offline:     p.Offline,
		Options:     p.Options(),
	}
}

// Encode renders the profile as HCL. Empty strings are left out.
func (p *Profile) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	strs := []struct {
		name, value string
	}{
		{"game_root", p.GameRoot},
		{"version", p.Version},
		{"manifest", p.Manifest},
		{"java", p.Java},
		{"instance_dir", p.InstanceDir},
		{"username", p.Username},
		{"min_memory", p.MinMemory},
		{"max_memory", p.MaxMemory},
	}
	for _, s := range strs {
		if s.value == "" {
			continue
		}
		body.SetAttributeValue(s.name, cty.StringVal(s.value))
	}
	body.SetAttributeValue("width", cty.NumberIntVal(int64(p.Width)))
	body.SetAttributeValue("height", cty.NumberIntVal(int64(p.Height)))
	body.SetAttributeValue("offline", cty.BoolVal(p.Offline))
	body.SetAttributeValue("demo", cty.BoolVal(p.Demo))

	if p.QuickPlayMode != models.QuickPlayNone {
		body.AppendNewline()
		block := body.AppendNewBlock("quick_play", []string{string(p.QuickPlayMode)})
		block.Body().SetAttributeValue("value", cty.StringVal(p.QuickPlayValue))
	}
	return f.Bytes()
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
