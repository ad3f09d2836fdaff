package models

type Action string

const (
	ActionAllow    Action = "allow"
	ActionDisallow Action = "disallow"
)

// Rule is a conditional allow/disallow directive.
type Rule struct {
	Action Action

	// OS restricts the rule to a platform; nil when absent.
	OS *OSCondition

	// Features maps feature names to the required state.
	Features map[string]bool
}

type OSCondition struct {
	// Name is the platform family: "windows", "linux" or "osx".
	// Empty matches any platform.
	Name string

	// Arch is "x86", "x64" or empty.
	Arch string

	// Version is a regular expression matched against the OS version,
	// e.g. ^10\.5\.\d$.
	Version string
}

// Feature names used by game argument rules.
const (
	FeatureDemoUser              = "is_demo_user"
	FeatureCustomResolution      = "has_custom_resolution"
	FeatureQuickPlaySupport      = "has_quick_plays_support"
	FeatureQuickPlaySingleplayer = "is_quick_play_singleplayer"
	FeatureQuickPlayMultiplayer  = "is_quick_play_multiplayer"
	FeatureQuickPlayRealms       = "is_quick_play_realms"
)

// Features is the feature state rules are evaluated against.
type Features struct {
	Demo      bool
	QuickPlay QuickPlayMode
}

// Value reports the state of a named feature. Unknown features are off.
func (f Features) Value(name string) bool {
	switch name {
	case FeatureDemoUser:
		return f.Demo
	case FeatureCustomResolution:
		return true
	case FeatureQuickPlaySupport:
		return f.QuickPlay != QuickPlayNone
	case FeatureQuickPlaySingleplayer:
		return f.QuickPlay == QuickPlaySingleplayer
	case FeatureQuickPlayMultiplayer:
		return f.QuickPlay == QuickPlayMultiplayer
	case FeatureQuickPlayRealms:
		return f.QuickPlay == QuickPlayRealms
	}
	return false
}
