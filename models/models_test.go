package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	c, ok := ParseCoordinate("org.lwjgl:lwjgl:3.3.1:natives-linux")
	require.True(t, ok)
	assert.Equal(t, "org.lwjgl:lwjgl", c.Key())
	assert.Equal(t, "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar", c.Path())

	c, ok = ParseCoordinate("net.minecraftforge:forge:1.12.2-14.23.5.2860@zip")
	require.True(t, ok)
	assert.Equal(t, "net/minecraftforge/forge/1.12.2-14.23.5.2860/forge-1.12.2-14.23.5.2860.zip", c.Path())
	assert.Equal(t, "net/minecraftforge/forge/1.12.2-14.23.5.2860/forge-1.12.2-14.23.5.2860-universal.zip",
		c.WithClassifier("universal").Path())

	_, ok = ParseCoordinate("not-a-coordinate")
	assert.False(t, ok)
}

func TestLibraryKey(t *testing.T) {
	a := Library{Name: "com.example:foo:1.0"}
	b := Library{Name: "com.example:foo:2.0:natives-linux"}
	assert.Equal(t, a.Key(), b.Key())

	odd := Library{Name: "loose"}
	assert.Equal(t, "loose", odd.Key())
}

func TestPlatformFamily(t *testing.T) {
	tests := []struct {
		os   string
		want string
	}{
		{"linux", FamilyLinux},
		{"Linux", FamilyLinux},
		{"darwin", FamilyOSX},
		{"Mac OS X", FamilyOSX},
		{"windows", FamilyWindows},
		{"Windows 10", FamilyWindows},
		{"plan9", ""},
	}
	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			assert.Equal(t, tt.want, Platform{OS: tt.os}.Family())
		})
	}
}

func TestPlatformArch(t *testing.T) {
	amd64 := Platform{OS: "linux", Arch: "amd64"}
	assert.True(t, amd64.MatchArch(""))
	assert.True(t, amd64.MatchArch("x64"))
	assert.False(t, amd64.MatchArch("x86"))
	assert.Equal(t, "64", amd64.Bits())

	i386 := Platform{OS: "windows", Arch: "386"}
	assert.True(t, i386.MatchArch("x86"))
	assert.False(t, i386.MatchArch("x64"))
	assert.Equal(t, "32", i386.Bits())
	assert.Equal(t, ";", i386.ListSeparator())
	assert.Equal(t, ":", amd64.ListSeparator())
}

func TestPlatformNativeArch(t *testing.T) {
	tests := map[string]string{
		"amd64":   ArchX64,
		"x86_64":  ArchX64,
		"386":     ArchX86,
		"arm64":   ArchARM64,
		"aarch64": ArchARM64,
		"arm":     ArchARM32,
	}
	for arch, want := range tests {
		assert.Equal(t, want, Platform{Arch: arch}.NativeArch(), arch)
	}
}

func TestQuickPlayVariable(t *testing.T) {
	assert.Equal(t, "quickPlaySingleplayer", QuickPlaySingleplayer.Variable())
	assert.Equal(t, "quickPlayMultiplayer", QuickPlayMultiplayer.Variable())
	assert.Equal(t, "quickPlayRealms", QuickPlayRealms.Variable())
	assert.Equal(t, "", QuickPlayNone.Variable())
}

func TestLaunchOptionsValidate(t *testing.T) {
	require.NoError(t, LaunchOptions{}.Validate())
	require.NoError(t, LaunchOptions{QuickPlayMode: QuickPlayRealms, QuickPlayValue: "123"}.Validate())

	err := LaunchOptions{QuickPlayMode: QuickPlayMultiplayer}.Validate()
	assert.True(t, errors.Is(err, ErrQuickPlayValueMissing))

	err = LaunchOptions{QuickPlayMode: "lan", QuickPlayValue: "x"}.Validate()
	assert.True(t, errors.Is(err, ErrUnknownQuickPlayMode))
}

func TestFeaturesValue(t *testing.T) {
	f := LaunchOptions{Demo: true, QuickPlayMode: QuickPlaySingleplayer, QuickPlayValue: "w"}.Features()
	assert.True(t, f.Value(FeatureDemoUser))
	assert.True(t, f.Value(FeatureCustomResolution))
	assert.True(t, f.Value(FeatureQuickPlaySupport))
	assert.True(t, f.Value(FeatureQuickPlaySingleplayer))
	assert.False(t, f.Value(FeatureQuickPlayMultiplayer))
	assert.False(t, f.Value("is_something_new"))

	var off Features
	assert.False(t, off.Value(FeatureQuickPlaySupport))
	assert.True(t, off.Value(FeatureCustomResolution))
}
