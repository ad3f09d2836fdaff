package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tie/claunch/models"
)

var (
	linux   = models.Platform{OS: "linux", Arch: "amd64"}
	windows = models.Platform{OS: "windows", Arch: "amd64"}
	mac     = models.Platform{OS: "darwin", Arch: "arm64"}
	win32   = models.Platform{OS: "windows", Arch: "386"}
)

func allowOS(name string) models.Rule {
	return models.Rule{Action: models.ActionAllow, OS: &models.OSCondition{Name: name}}
}

func disallowOS(name string) models.Rule {
	return models.Rule{Action: models.ActionDisallow, OS: &models.OSCondition{Name: name}}
}

func TestEvaluateOS(t *testing.T) {
	rs := []models.Rule{allowOS("linux"), disallowOS("windows")}
	assert.True(t, Evaluate(rs, linux, nil))
	assert.False(t, Evaluate(rs, windows, nil))
	assert.False(t, Evaluate(rs, mac, nil))
}

func TestEvaluateLastMatchWins(t *testing.T) {
	tests := []struct {
		name  string
		rules []models.Rule
		p     models.Platform
		want  bool
	}{
		{
			name:  "empty",
			rules: nil,
			p:     linux,
			want:  false,
		},
		{
			name:  "unconditional allow then osx disallow on linux",
			rules: []models.Rule{{Action: models.ActionAllow}, disallowOS("osx")},
			p:     linux,
			want:  true,
		},
		{
			name:  "unconditional allow then osx disallow on mac",
			rules: []models.Rule{{Action: models.ActionAllow}, disallowOS("osx")},
			p:     mac,
			want:  false,
		},
		{
			name:  "later unconditional overrides",
			rules: []models.Rule{allowOS("linux"), {Action: models.ActionDisallow}},
			p:     linux,
			want:  false,
		},
		{
			name: "arch x86 on 32-bit windows",
			rules: []models.Rule{{
				Action: models.ActionAllow,
				OS:     &models.OSCondition{Name: "windows", Arch: "x86"},
			}},
			p:    win32,
			want: true,
		},
		{
			name: "arch x86 on 64-bit windows",
			rules: []models.Rule{{
				Action: models.ActionAllow,
				OS:     &models.OSCondition{Name: "windows", Arch: "x86"},
			}},
			p:    windows,
			want: false,
		},
		{
			name: "arch only",
			rules: []models.Rule{{
				Action: models.ActionAllow,
				OS:     &models.OSCondition{Arch: "x64"},
			}},
			p:    mac,
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.rules, tt.p, nil))
		})
	}
}

func TestEvaluateOSVersion(t *testing.T) {
	// Old natives are disallowed on Mac OS X 10.5 only.
	rs := []models.Rule{
		{Action: models.ActionAllow},
		{Action: models.ActionDisallow, OS: &models.OSCondition{Name: "osx", Version: `^10\.5\.\d$`}},
	}
	leopard := models.Platform{OS: "Mac OS X", Arch: "x86_64", Version: "10.5.8"}
	sonoma := models.Platform{OS: "Mac OS X", Arch: "aarch64", Version: "14.2.1"}
	assert.False(t, Evaluate(rs, leopard, nil))
	assert.True(t, Evaluate(rs, sonoma, nil))
	// An unknown version never matches a version condition.
	assert.True(t, Evaluate(rs, mac, nil))

	win10 := []models.Rule{{Action: models.ActionAllow, OS: &models.OSCondition{Name: "windows", Version: "^10\\."}}}
	assert.True(t, Evaluate(win10, models.Platform{OS: "Windows 10", Arch: "amd64", Version: "10.0"}, nil))
	assert.False(t, Evaluate(win10, models.Platform{OS: "Windows 7", Arch: "amd64", Version: "6.1"}, nil))

	broken := []models.Rule{{Action: models.ActionAllow, OS: &models.OSCondition{Version: "(["}}}
	assert.False(t, Evaluate(broken, sonoma, nil))
}

func TestEvaluateFeatures(t *testing.T) {
	demo := []models.Rule{{
		Action:   models.ActionAllow,
		Features: map[string]bool{models.FeatureDemoUser: true},
	}}
	on := models.Features{Demo: true}
	off := models.Features{}
	assert.True(t, Evaluate(demo, linux, &on))
	assert.False(t, Evaluate(demo, linux, &off))
	assert.False(t, Evaluate(demo, linux, nil))

	resolution := []models.Rule{{
		Action:   models.ActionAllow,
		Features: map[string]bool{models.FeatureCustomResolution: true},
	}}
	assert.True(t, Evaluate(resolution, linux, &off))

	multi := []models.Rule{{
		Action: models.ActionAllow,
		Features: map[string]bool{
			models.FeatureQuickPlaySupport:     true,
			models.FeatureQuickPlayMultiplayer: true,
		},
	}}
	mp := models.Features{QuickPlay: models.QuickPlayMultiplayer}
	sp := models.Features{QuickPlay: models.QuickPlaySingleplayer}
	assert.True(t, Evaluate(multi, linux, &mp))
	assert.False(t, Evaluate(multi, linux, &sp))
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(nil, linux, nil))
	assert.False(t, Allowed([]models.Rule{allowOS("osx")}, linux, nil))
}

func TestReferences(t *testing.T) {
	assert.False(t, References([]models.Rule{allowOS("linux")}))
	assert.True(t, References([]models.Rule{{
		Action:   models.ActionAllow,
		Features: map[string]bool{models.FeatureDemoUser: true},
	}}))
}
