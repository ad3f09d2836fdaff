// Package launcher runs the resolution pipeline for one version and hands
// the resulting command line to a process runner.
package launcher

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/crypto/sha3"

	"github.com/tie/claunch/command"
	"github.com/tie/claunch/manifest"
	"github.com/tie/claunch/models"
	"github.com/tie/claunch/resolver"
)

type Config struct {
	// GameRoot holds the shared versions, libraries, assets and natives.
	GameRoot string

	// Version is the id of the version to launch.
	Version string

	// Manifest overrides the manifest location derived from Version.
	Manifest string

	Java        string
	InstanceDir string
	Username    string
	MinMemory   string
	MaxMemory   string
	Width       int
	Height      int
	Offline     bool

	Options models.LaunchOptions
}

// ManifestPath returns the manifest to resolve.
func (c *Config) ManifestPath() string {
	if c.Manifest != "" {
		return c.Manifest
	}
	return manifest.Path(c.GameRoot, c.Version)
}

// GameDir returns the instance directory, by default a per version
// directory under the game root.
func (c *Config) GameDir() string {
	if c.InstanceDir != "" {
		return c.InstanceDir
	}
	return filepath.Join(c.GameRoot, "instances", c.Version)
}

// Result describes a prepared launch.
type Result struct {
	Version   *manifest.Resolved
	Loader    resolver.Loader
	Command   []string
	Classpath string

	// Libraries is the number of classpath libraries resolved, not
	// counting version jars.
	Libraries int

	NativeDir string

	// Natives is the number of files extracted into NativeDir.
	Natives int
}

// Sum returns a digest of the command line. Equal inputs always produce
// equal sums.
func (r *Result) Sum() string {
	h := sha3.New256()
	for _, tok := range r.Command {
		h.Write([]byte(tok))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("sha3-256:%x", h.Sum(nil))
}

type Launcher struct {
	Files    billy.Filesystem
	Platform models.Platform
	Log      models.Sink

	// Loader reads manifests, by default from Files.
	Loader manifest.Loader

	// Runner starts the game, by default an ExecRunner.
	Runner Runner
}

// Prepare resolves the version, creates the instance directories,
// extracts natives and assembles the command line.
func (l *Launcher) Prepare(cfg Config) (*Result, error) {
	return l.prepare(cfg, true)
}

// Plan is Prepare without touching the filesystem.
func (l *Launcher) Plan(cfg Config) (*Result, error) {
	return l.prepare(cfg, false)
}

// Launch prepares the version and runs it. The exit code of the game is
// returned as is; a non-zero code is not an error.
func (l *Launcher) Launch(ctx context.Context, cfg Config) (*Result, int, error) {
	res, err := l.Prepare(cfg)
	if err != nil {
		return nil, 0, err
	}
	env := []string{"JAVA_HOME=" + JavaHome(cfg.Java)}
	l.log().Infof("starting %s", res.Version.ID())
	code, err := l.runner().Run(ctx, res.Command, cfg.GameRoot, env)
	if err != nil {
		return res, code, fmt.Errorf("run %q: %w", cfg.Java, err)
	}
	if code != 0 {
		l.log().Warnf("game exited with code %d", code)
	}
	return res, code, nil
}

func (l *Launcher) prepare(cfg Config, write bool) (*Result, error) {
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	v, err := manifest.Resolve(l.loader(), cfg.ManifestPath(), cfg.GameRoot)
	if err != nil {
		return nil, err
	}
	l.log().Infof("version: %s", v.ID())
	if v.HasParent() {
		l.log().Infof("inherits from: %s", v.Parent.ID)
	}
	if write {
		if err := l.prepareDirs(cfg, v); err != nil {
			return nil, err
		}
	}

	r := &resolver.Resolver{
		Files:      l.Files,
		LibraryDir: v.LibraryDir,
		Platform:   l.Platform,
		Log:        l.Log,
	}
	set := r.Resolve(v.Parent, v.Child)
	l.log().Infof("resolved %d libraries", set.Len())
	res := &Result{
		Version:   v,
		Loader:    resolver.DetectLoader(v.ID()),
		Libraries: set.Len(),
		NativeDir: v.NativeDir,
	}
	if write {
		n, err := r.Extract(set, v.NativeDir)
		if err != nil {
			return nil, fmt.Errorf("natives %q: %w", v.NativeDir, err)
		}
		l.log().Infof("extracted %d native files", n)
		res.Natives = n
	}
	res.Classpath = r.Classpath(set, v)

	b := &command.Builder{
		Files:    l.Files,
		Version:  v,
		Vars:     Variables(cfg, v, l.Platform),
		Options:  cfg.Options,
		Platform: l.Platform,
		Log:      l.Log,
	}
	res.Command, err = b.Build(command.Config{
		Java:      cfg.Java,
		MinMemory: cfg.MinMemory,
		MaxMemory: cfg.MaxMemory,
		Offline:   cfg.Offline,
		Classpath: res.Classpath,
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (l *Launcher) prepareDirs(cfg Config, v *manifest.Resolved) error {
	gameDir := cfg.GameDir()
	dirs := []string{
		v.AssetsVirtualDir(),
		filepath.Join(gameDir, "mods"),
		filepath.Join(gameDir, "config"),
	}
	if cfg.Options.QuickPlayMode != models.QuickPlayNone {
		dirs = append(dirs, filepath.Dir(QuickPlayLog(cfg, v)))
	}
	for _, dir := range dirs {
		if err := l.Files.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("mkdir %q: %w", dir, err)
		}
	}
	return nil
}

// Variables builds the substitution table for a resolved version.
func Variables(cfg Config, v *manifest.Resolved, p models.Platform) command.Vars {
	vs := command.Vars{
		"auth_player_name":    cfg.Username,
		"version_name":        v.ID(),
		"game_directory":      cfg.GameDir(),
		"assets_root":         v.AssetsDir,
		"game_assets":         v.AssetsVirtualDir(),
		"assets_index_name":   v.AssetsIndexName(),
		"auth_uuid":           OfflineUUID(cfg.Username),
		"auth_access_token":   "0",
		"user_type":           "mojang",
		"user_properties":     "{}",
		"version_type":        v.VersionType(),
		"classpath_separator": p.ListSeparator(),
		"library_directory":   v.LibraryDir,
		"natives_directory":   v.NativeDir,
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		vs["resolution_width"] = fmt.Sprint(cfg.Width)
		vs["resolution_height"] = fmt.Sprint(cfg.Height)
	}
	o := cfg.Options
	if name := o.QuickPlayMode.Variable(); name != "" {
		vs[name] = o.QuickPlayValue
		vs[models.QuickPlayPathVariable] = QuickPlayLog(cfg, v)
	}
	return vs
}

// QuickPlayLog returns the file the game records quick play sessions in.
func QuickPlayLog(cfg Config, v *manifest.Resolved) string {
	return filepath.Join(cfg.GameDir(), "quickPlay", "java", v.ID()+".json")
}

// JavaHome returns the JAVA_HOME value exported to the game.
func JavaHome(java string) string {
	return filepath.Dir(java)
}

func (l *Launcher) loader() manifest.Loader {
	if l.Loader == nil {
		return &manifest.FileLoader{Files: l.Files, Log: l.Log}
	}
	return l.Loader
}

func (l *Launcher) runner() Runner {
	if l.Runner == nil {
		return &ExecRunner{}
	}
	return l.Runner
}

func (l *Launcher) log() models.Sink {
	if l.Log == nil {
		return models.Discard
	}
	return l.Log
}
