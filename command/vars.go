package command

import (
	"sort"
	"strings"
)

// Launcher identity reported to the game.
const (
	LauncherName    = "claunch"
	LauncherVersion = "1.0"
)

// Vars is a table of ${name} substitutions.
type Vars map[string]string

// Replace substitutes every known ${name} in s, then the launcher identity
// variables. Keys are applied in sorted order so results never depend on
// map iteration.
func (vs Vars) Replace(s, separator string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s = strings.ReplaceAll(s, "${"+k+"}", vs[k])
	}
	r := strings.NewReplacer(
		"${launcher_name}", LauncherName,
		"${launcher_version}", LauncherVersion,
		"${classpath_separator}", separator,
	)
	return r.Replace(s)
}

// Unresolved reports whether s still contains a placeholder.
func Unresolved(s string) bool {
	return strings.Contains(s, "${")
}
