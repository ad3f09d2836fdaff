package command

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/tie/claunch/manifest"
	"github.com/tie/claunch/models"
	"github.com/tie/claunch/rules"
)

var demoArgs = map[string]bool{
	"--demo": true,
}

var quickPlayArgs = map[string]bool{
	"--quickPlaySingleplayer": true,
	"--quickPlayMultiplayer":  true,
	"--quickPlayRealms":       true,
	"--quickPlayPath":         true,
}

// Properties that point the game's remote services at an unreachable host.
var offlineProperties = []string{
	"-Dminecraft.api.env=custom",
	"-Dminecraft.api.auth.host=https://invalid.invalid",
	"-Dminecraft.api.account.host=https://invalid.invalid",
	"-Dminecraft.api.session.host=https://invalid.invalid",
	"-Dminecraft.api.services.host=https://invalid.invalid",
}

// Config holds the caller supplied parts of the command line.
type Config struct {
	// Java is the path of the java executable.
	Java string

	// MinMemory and MaxMemory are passed verbatim to -Xms and -Xmx.
	MinMemory string
	MaxMemory string

	// Offline makes authentication endpoints unreachable.
	Offline bool

	// Classpath is the joined classpath string.
	Classpath string
}

// Builder assembles the command line of a resolved version. A Builder
// must not be used by more than one goroutine.
type Builder struct {
	Files    billy.Filesystem
	Version  *manifest.Resolved
	Vars     Vars
	Options  models.LaunchOptions
	Platform models.Platform
	Log      models.Sink

	cmd []string
}

// Build returns the final command line tokens.
func (b *Builder) Build(cfg Config) ([]string, error) {
	b.cmd = nil
	mainClass := b.Version.MainClass()
	if mainClass == "" {
		return nil, fmt.Errorf("%w: %s", models.ErrMainClassMissing, b.Version.ID())
	}
	if cfg.Classpath == "" {
		return nil, models.ErrEmptyClasspath
	}
	if err := b.addJava(cfg.Java); err != nil {
		return nil, err
	}
	b.addRuntimeProperties()
	if cfg.Offline {
		b.log().Infof("offline mode enabled")
		b.add(offlineProperties...)
	}
	b.add("-Xms"+cfg.MinMemory, "-Xmx"+cfg.MaxMemory)
	for _, a := range b.Version.JVMArguments() {
		b.addJVMArgument(a)
	}
	b.add("-cp", cfg.Classpath)
	b.add(mainClass)
	b.addGameArguments()
	b.addDefaultGameArguments()
	b.addOptionalArguments()
	b.cleanup()

	cmd := b.cmd
	b.cmd = nil
	return cmd, nil
}

func (b *Builder) addJava(java string) error {
	fi, err := b.Files.Stat(java)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidInterpreterPath, java, err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%w: %s: not a regular file", models.ErrInvalidInterpreterPath, java)
	}
	b.add(java)
	return nil
}

func (b *Builder) addRuntimeProperties() {
	b.add(
		"-Djava.library.path="+b.Version.NativeDir,
		"-Dminecraft.launcher.brand="+LauncherName,
		"-Dminecraft.launcher.version="+LauncherVersion,
	)
}

func (b *Builder) addJVMArgument(a models.Argument) {
	if !a.Conditional {
		for _, v := range a.Values {
			b.addJVMToken(v)
		}
		return
	}
	if !b.allowed(a.Rules) {
		return
	}
	if !a.Array {
		for _, v := range a.Values {
			b.addJVMToken(v)
		}
		return
	}
	b.addJVMValues(a.Values)
}

// addJVMToken appends a single token. Flags may repeat with different
// values; any other token is added once.
func (b *Builder) addJVMToken(tok string) {
	if isClasspathToken(tok) {
		return
	}
	s := b.replace(tok)
	if isFlag(s) || !b.has(s) {
		b.add(s)
	}
}

func (b *Builder) addJVMValues(values []string) {
	if len(values) <= 0 {
		return
	}
	if isFlag(values[0]) && len(values) > 2 {
		// A flag followed by several values expands to flag/value pairs.
		flag := b.replace(values[0])
		for _, v := range values[1:] {
			v = b.replace(v)
			if !b.hasPair(flag, v) {
				b.add(flag, v)
			}
		}
		return
	}
	run := make([]string, 0, len(values))
	for _, v := range values {
		if isClasspathToken(v) {
			return
		}
		run = append(run, b.replace(v))
	}
	if !b.has(run[0]) {
		b.add(run...)
	}
}

func (b *Builder) addGameArguments() {
	args, ok := b.Version.GameArguments()
	if !ok {
		legacy := strings.Fields(b.Version.LegacyArguments())
		args = make([]models.Argument, len(legacy))
		for i, tok := range legacy {
			args[i] = models.Plain(tok)
		}
	}
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !a.Conditional {
			if len(a.Values) <= 0 {
				continue
			}
			tok := a.Values[0]
			if !b.enabled(tok) {
				// Disabled quick play flags take their value with them.
				if quickPlayArgs[tok] && i+1 < len(args) && !args[i+1].Conditional {
					i++
				}
				continue
			}
			b.add(b.replace(tok))
			continue
		}
		if !b.allowed(a.Rules) {
			b.log().Debugf("game argument disabled by rules: %v", a.Values)
			continue
		}
		for _, v := range a.Values {
			if b.enabled(v) {
				b.add(b.replace(v))
			}
		}
	}
}

func (b *Builder) addDefaultGameArguments() {
	defaults := []struct {
		flag, value string
	}{
		{"--width", b.Vars["resolution_width"]},
		{"--height", b.Vars["resolution_height"]},
		{"--assetIndex", b.Version.AssetsIndexName()},
		{"--assetsDir", b.Version.AssetsDir},
		{"--username", b.Vars["auth_player_name"]},
		{"--uuid", b.Vars["auth_uuid"]},
		{"--accessToken", b.Vars["auth_access_token"]},
		{"--version", b.Version.BaseID()},
		{"--gameDir", b.Vars["game_directory"]},
	}
	for _, d := range defaults {
		if d.value == "" || b.has(d.flag) {
			continue
		}
		b.add(d.flag, d.value)
	}
}

func (b *Builder) addOptionalArguments() {
	o := b.Options
	if o.Demo && !b.has("--demo") {
		b.add("--demo")
	}
	if o.QuickPlayMode == models.QuickPlayNone || o.QuickPlayValue == "" {
		return
	}
	if flag := o.QuickPlayMode.Flag(); flag != "" && !b.has(flag) {
		b.add(flag, o.QuickPlayValue)
	}
}

// cleanup removes tokens with unresolved placeholders together with a
// preceding long flag that would otherwise be left without a value.
func (b *Builder) cleanup() {
	var drop []int
	for i, tok := range b.cmd {
		if !Unresolved(tok) {
			continue
		}
		if i > 0 && strings.HasPrefix(b.cmd[i-1], "--") && !Unresolved(b.cmd[i-1]) {
			drop = append(drop, i-1)
		}
		drop = append(drop, i)
	}
	for j := len(drop) - 1; j >= 0; j-- {
		i := drop[j]
		b.log().Debugf("removing unresolved argument: %s", b.cmd[i])
		b.cmd = append(b.cmd[:i], b.cmd[i+1:]...)
	}
}

// enabled filters demo and quick play flags the launch did not ask for.
func (b *Builder) enabled(tok string) bool {
	if demoArgs[tok] && !b.Options.Demo {
		return false
	}
	if quickPlayArgs[tok] && b.Options.QuickPlayMode == models.QuickPlayNone {
		return false
	}
	return true
}

// allowed evaluates argument rules. Feature state is supplied only to rule
// sets that reference features; the rest are platform rules.
func (b *Builder) allowed(rs []models.Rule) bool {
	if !rules.References(rs) {
		return rules.Allowed(rs, b.Platform, nil)
	}
	features := b.Options.Features()
	return rules.Allowed(rs, b.Platform, &features)
}

func (b *Builder) replace(s string) string {
	return b.Vars.Replace(s, b.Platform.ListSeparator())
}

func (b *Builder) add(toks ...string) {
	b.cmd = append(b.cmd, toks...)
}

func (b *Builder) has(tok string) bool {
	for _, s := range b.cmd {
		if s == tok {
			return true
		}
	}
	return false
}

func (b *Builder) hasPair(flag, value string) bool {
	for i := 0; i+1 < len(b.cmd); i++ {
		if b.cmd[i] == flag && b.cmd[i+1] == value {
			return true
		}
	}
	return false
}

func (b *Builder) log() models.Sink {
	if b.Log == nil {
		return models.Discard
	}
	return b.Log
}

func isFlag(s string) bool {
	return strings.HasPrefix(s, "--") || strings.HasPrefix(s, "-D") || strings.HasPrefix(s, "-X")
}

func isClasspathToken(s string) bool {
	return s == "-cp" || s == "-classpath" || strings.Contains(s, "${classpath}")
}
