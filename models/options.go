package models

import (
	"fmt"
	"strings"
)

type QuickPlayMode string

const (
	QuickPlayNone         QuickPlayMode = ""
	QuickPlaySingleplayer QuickPlayMode = "singleplayer"
	QuickPlayMultiplayer  QuickPlayMode = "multiplayer"
	QuickPlayRealms       QuickPlayMode = "realms"
)

// Flag returns the game argument selecting the mode.
func (m QuickPlayMode) Flag() string {
	switch m {
	case QuickPlaySingleplayer:
		return "--quickPlaySingleplayer"
	case QuickPlayMultiplayer:
		return "--quickPlayMultiplayer"
	case QuickPlayRealms:
		return "--quickPlayRealms"
	}
	return ""
}

// Variable returns the manifest variable holding the mode value, e.g.
// quickPlaySingleplayer.
func (m QuickPlayMode) Variable() string {
	if flag := m.Flag(); flag != "" {
		return strings.TrimPrefix(flag, "--")
	}
	return ""
}

// QuickPlayPathVariable names the quick play log file in game arguments.
const QuickPlayPathVariable = "quickPlayPath"

type LaunchOptions struct {
	// Demo launches the game in demo mode.
	Demo bool

	// QuickPlayMode selects direct entry into a world, server or realm.
	QuickPlayMode QuickPlayMode

	// QuickPlayValue is the world name, server address or realm id.
	QuickPlayValue string
}

func (o LaunchOptions) Validate() error {
	switch o.QuickPlayMode {
	case QuickPlayNone:
		return nil
	case QuickPlaySingleplayer, QuickPlayMultiplayer, QuickPlayRealms:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQuickPlayMode, o.QuickPlayMode)
	}
	if o.QuickPlayValue == "" {
		return fmt.Errorf("%w: %s", ErrQuickPlayValueMissing, o.QuickPlayMode)
	}
	return nil
}

func (o LaunchOptions) Features() Features {
	return Features{
		Demo:      o.Demo,
		QuickPlay: o.QuickPlayMode,
	}
}
