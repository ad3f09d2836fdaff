package rules

import (
	"github.com/dlclark/regexp2"

	"github.com/tie/claunch/models"
)

// Evaluate applies rules in declared order and returns the action of the
// last matching rule, or false when no rule matches. A nil features value
// means no feature state is known, so feature conditioned rules never match.
func Evaluate(rules []models.Rule, p models.Platform, features *models.Features) bool {
	allow := false
	for _, r := range rules {
		if !match(r, p, features) {
			continue
		}
		allow = r.Action == models.ActionAllow
	}
	return allow
}

// Allowed is Evaluate with an empty rule list meaning unconditional inclusion.
func Allowed(rules []models.Rule, p models.Platform, features *models.Features) bool {
	if len(rules) <= 0 {
		return true
	}
	return Evaluate(rules, p, features)
}

// References reports whether any rule is conditioned on a feature.
func References(rules []models.Rule) bool {
	for _, r := range rules {
		if len(r.Features) > 0 {
			return true
		}
	}
	return false
}

func match(r models.Rule, p models.Platform, features *models.Features) bool {
	if r.OS != nil && !matchOS(r.OS, p) {
		return false
	}
	if len(r.Features) > 0 && !matchFeatures(r.Features, features) {
		return false
	}
	return true
}

func matchOS(c *models.OSCondition, p models.Platform) bool {
	if c.Name != "" && c.Name != p.Family() {
		return false
	}
	if c.Version != "" && !matchVersion(c.Version, p.Version) {
		return false
	}
	return p.MatchArch(c.Arch)
}

// matchVersion matches an OS version pattern. Manifest patterns use Java
// syntax; invalid patterns and unknown versions never match.
func matchVersion(pattern, version string) bool {
	if version == "" {
		return false
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return false
	}
	ok, err := re.MatchString(version)
	return err == nil && ok
}

func matchFeatures(required map[string]bool, features *models.Features) bool {
	if features == nil {
		return false
	}
	for name, want := range required {
		if features.Value(name) != want {
			return false
		}
	}
	return true
}
