package command

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/claunch/manifest"
	"github.com/tie/claunch/models"
)

const java = "/jdk/bin/java"

var linux = models.Platform{OS: "linux", Arch: "amd64"}

func newFS(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, java, []byte("#!"), 0755))
	return fs
}

func vanilla() *manifest.Resolved {
	return &manifest.Resolved{
		Child: models.Version{
			ID:        "1.20.1",
			MainClass: "net.minecraft.client.main.Main",
			Assets:    "5",
			JVMArguments: []models.Argument{
				{Conditional: true, Rules: []models.Rule{{
					Action: models.ActionAllow,
					OS:     &models.OSCondition{Name: "osx"},
				}}, Values: []string{"-XstartOnFirstThread"}},
				models.Plain("-Djava.library.path=${natives_directory}"),
				models.Plain("-cp"),
				models.Plain("${classpath}"),
			},
			GameArguments: []models.Argument{
				models.Plain("--username"),
				models.Plain("${auth_player_name}"),
				models.Plain("--version"),
				models.Plain("${version_name}"),
				models.Plain("--gameDir"),
				models.Plain("${game_directory}"),
				{Conditional: true, Rules: []models.Rule{{
					Action:   models.ActionAllow,
					Features: map[string]bool{models.FeatureDemoUser: true},
				}}, Values: []string{"--demo"}},
				{Conditional: true, Rules: []models.Rule{{
					Action:   models.ActionAllow,
					Features: map[string]bool{models.FeatureQuickPlayMultiplayer: true},
				}}, Array: true, Values: []string{"--quickPlayMultiplayer", "${quickPlayMultiplayer}"}},
			},
		},
		GameRoot:   "/game",
		LibraryDir: "/game/shared/libraries",
		AssetsDir:  "/game/shared/assets",
		NativeDir:  "/game/shared/natives/1.20.1",
	}
}

func vars() Vars {
	return Vars{
		"auth_player_name":  "Steve",
		"version_name":      "1.20.1",
		"game_directory":    "/game/instances/main",
		"natives_directory": "/game/shared/natives/1.20.1",
		"auth_uuid":         "0123",
		"auth_access_token": "0",
		"resolution_width":  "854",
		"resolution_height": "480",
	}
}

func config() Config {
	return Config{
		Java:      java,
		MinMemory: "512M",
		MaxMemory: "2G",
		Classpath: "/game/shared/libraries/com/example/foo/1.0/foo-1.0.jar:/game/shared/versions/1.20.1/1.20.1.jar",
	}
}

func build(t *testing.T, b *Builder) []string {
	t.Helper()
	cmd, err := b.Build(config())
	require.NoError(t, err)
	return cmd
}

func count(cmd []string, tok string) int {
	n := 0
	for _, s := range cmd {
		if s == tok {
			n++
		}
	}
	return n
}

func TestBuildVanilla(t *testing.T) {
	b := &Builder{Files: newFS(t), Version: vanilla(), Vars: vars(), Platform: linux}
	cmd := build(t, b)

	require.NotEmpty(t, cmd)
	assert.Equal(t, java, cmd[0])
	assert.Equal(t, []string{
		java,
		"-Djava.library.path=/game/shared/natives/1.20.1",
		"-Dminecraft.launcher.brand=claunch",
		"-Dminecraft.launcher.version=1.0",
		"-Xms512M",
		"-Xmx2G",
		"-Djava.library.path=/game/shared/natives/1.20.1",
		"-cp", config().Classpath,
		"net.minecraft.client.main.Main",
		"--username", "Steve",
		"--version", "1.20.1",
		"--gameDir", "/game/instances/main",
		"--width", "854",
		"--height", "480",
		"--assetIndex", "5",
		"--assetsDir", "/game/shared/assets",
		"--uuid", "0123",
		"--accessToken", "0",
	}, cmd)
	assert.Equal(t, 1, count(cmd, "-cp"))
	assert.NotContains(t, cmd, "--demo")
	assert.NotContains(t, cmd, "--quickPlayMultiplayer")
	assert.NotContains(t, cmd, "-XstartOnFirstThread")
}

func TestBuildOffline(t *testing.T) {
	b := &Builder{Files: newFS(t), Version: vanilla(), Vars: vars(), Platform: linux}
	cfg := config()
	cfg.Offline = true
	cmd, err := b.Build(cfg)
	require.NoError(t, err)
	assert.Contains(t, cmd, "-Dminecraft.api.env=custom")
	assert.Contains(t, cmd, "-Dminecraft.api.session.host=https://invalid.invalid")
}

func TestBuildMacOnlyArgument(t *testing.T) {
	mac := models.Platform{OS: "darwin", Arch: "arm64"}
	b := &Builder{Files: newFS(t), Version: vanilla(), Vars: vars(), Platform: mac}
	cmd := build(t, b)
	assert.Contains(t, cmd, "-XstartOnFirstThread")
}

func TestBuildDemo(t *testing.T) {
	b := &Builder{
		Files:    newFS(t),
		Version:  vanilla(),
		Vars:     vars(),
		Options:  models.LaunchOptions{Demo: true},
		Platform: linux,
	}
	cmd := build(t, b)
	assert.Equal(t, 1, count(cmd, "--demo"))
}

func TestBuildQuickPlay(t *testing.T) {
	vs := vars()
	vs["quickPlayMultiplayer"] = "mc.example.com"
	b := &Builder{
		Files:   newFS(t),
		Version: vanilla(),
		Vars:    vs,
		Options: models.LaunchOptions{
			QuickPlayMode:  models.QuickPlayMultiplayer,
			QuickPlayValue: "mc.example.com",
		},
		Platform: linux,
	}
	cmd := build(t, b)
	assert.Equal(t, 1, count(cmd, "--quickPlayMultiplayer"))
	for i, tok := range cmd {
		if tok == "--quickPlayMultiplayer" {
			require.Less(t, i+1, len(cmd))
			assert.Equal(t, "mc.example.com", cmd[i+1])
		}
	}
}

func TestBuildQuickPlayFromOptions(t *testing.T) {
	b := &Builder{
		Files:   newFS(t),
		Version: vanilla(),
		Vars:    vars(),
		Options: models.LaunchOptions{
			QuickPlayMode:  models.QuickPlaySingleplayer,
			QuickPlayValue: "world",
		},
		Platform: linux,
	}
	cmd := build(t, b)
	assert.Equal(t, []string{"--quickPlaySingleplayer", "world"}, cmd[len(cmd)-2:])
	assert.NotContains(t, cmd, "--quickPlayMultiplayer")
}

func TestBuildDropsLiteralQuickPlay(t *testing.T) {
	v := vanilla()
	v.Child.GameArguments = append(v.Child.GameArguments,
		models.Plain("--quickPlayPath"),
		models.Plain("${quickPlayPath}"),
	)
	b := &Builder{Files: newFS(t), Version: v, Vars: vars(), Platform: linux}
	cmd := build(t, b)
	assert.NotContains(t, cmd, "--quickPlayPath")
	assert.NotContains(t, cmd, "${quickPlayPath}")
}

func TestBuildRemovesUnresolved(t *testing.T) {
	v := vanilla()
	v.Child.GameArguments = append(v.Child.GameArguments,
		models.Plain("--bar"),
		models.Plain("--foo=${undefined}"),
		models.Plain("--keep"),
	)
	b := &Builder{Files: newFS(t), Version: v, Vars: vars(), Platform: linux}
	cmd := build(t, b)
	for _, tok := range cmd {
		assert.NotContains(t, tok, "${")
	}
	assert.NotContains(t, cmd, "--bar")
	assert.Contains(t, cmd, "--keep")
}

func TestBuildLegacyArguments(t *testing.T) {
	v := vanilla()
	v.Child.GameArguments = nil
	v.Child.LegacyArguments = "--username ${auth_player_name} --session ${auth_session} --demo"
	b := &Builder{Files: newFS(t), Version: v, Vars: vars(), Platform: linux}
	cmd := build(t, b)
	assert.Contains(t, cmd, "Steve")
	assert.NotContains(t, cmd, "--session")
	assert.NotContains(t, cmd, "--demo")
	assert.Equal(t, 1, count(cmd, "--username"))
}

func TestBuildJVMArrays(t *testing.T) {
	v := vanilla()
	always := []models.Rule{{Action: models.ActionAllow}}
	v.Child.JVMArguments = []models.Argument{
		{Conditional: true, Rules: always, Array: true, Values: []string{"--add-opens", "a/b=ALL", "c/d=ALL"}},
		{Conditional: true, Rules: always, Array: true, Values: []string{"--add-opens", "a/b=ALL", "e/f=ALL"}},
		{Conditional: true, Rules: always, Array: true, Values: []string{"-cp", "${classpath}"}},
		{Conditional: true, Rules: always, Array: true, Values: []string{"-Dfoo=1", "-Dbar=2"}},
	}
	b := &Builder{Files: newFS(t), Version: v, Vars: vars(), Platform: linux}
	cmd := build(t, b)
	assert.Equal(t, 3, count(cmd, "--add-opens"))
	assert.Equal(t, 1, count(cmd, "a/b=ALL"))
	assert.Equal(t, 1, count(cmd, "-cp"))
	assert.Contains(t, cmd, "-Dbar=2")
}

func TestBuildInheritedVersion(t *testing.T) {
	v := vanilla()
	parent := v.Child
	v.Parent = &parent
	v.Child = models.Version{
		ID:           "fabric-loader-0.15-1.20.1",
		InheritsFrom: "1.20.1",
		MainClass:    "net.fabricmc.loader.impl.launch.knot.KnotClient",
	}
	vs := vars()
	vs["version_name"] = v.Child.ID
	b := &Builder{Files: newFS(t), Version: v, Vars: vs, Platform: linux}
	cmd := build(t, b)
	assert.Contains(t, cmd, "net.fabricmc.loader.impl.launch.knot.KnotClient")
	assert.NotContains(t, cmd, "net.minecraft.client.main.Main")
	assert.Contains(t, cmd, v.Child.ID)
}

func TestBuildDeterministic(t *testing.T) {
	b := &Builder{Files: newFS(t), Version: vanilla(), Vars: vars(), Platform: linux}
	first := build(t, b)
	second := build(t, b)
	assert.Equal(t, first, second)
}

func TestBuildErrors(t *testing.T) {
	fs := newFS(t)
	require.NoError(t, fs.MkdirAll("/jdk/bin/dir", 0755))

	b := &Builder{Files: fs, Version: vanilla(), Vars: vars(), Platform: linux}

	cfg := config()
	cfg.Java = "/missing/java"
	_, err := b.Build(cfg)
	assert.True(t, errors.Is(err, models.ErrInvalidInterpreterPath))

	cfg.Java = "/jdk/bin/dir"
	_, err = b.Build(cfg)
	assert.True(t, errors.Is(err, models.ErrInvalidInterpreterPath))

	cfg = config()
	cfg.Classpath = ""
	_, err = b.Build(cfg)
	assert.True(t, errors.Is(err, models.ErrEmptyClasspath))

	v := vanilla()
	v.Child.MainClass = ""
	b.Version = v
	_, err = b.Build(config())
	assert.True(t, errors.Is(err, models.ErrMainClassMissing))
}

func TestReplace(t *testing.T) {
	vs := Vars{"a": "1", "b": "${a}"}
	assert.Equal(t, "x=1;", vs.Replace("x=${a}${classpath_separator}", ";"))
	assert.Equal(t, "claunch/1.0", vs.Replace("${launcher_name}/${launcher_version}", ":"))
	assert.Equal(t, "${missing}", vs.Replace("${missing}", ":"))
	assert.True(t, Unresolved("--x=${y}"))
	assert.False(t, Unresolved("--x"))
}
