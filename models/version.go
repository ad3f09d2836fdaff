package models

import (
	"path"
	"strings"
)

// Version is a single decoded version manifest.
type Version struct {
	// ID is the version identifier, e.g. "1.20.1" or "fabric-loader-0.15.0-1.20.1".
	ID string

	// InheritsFrom names the parent version, if any.
	InheritsFrom string

	// MainClass is the entry point class name.
	MainClass string

	// Assets is the asset index name.
	Assets string

	// Type is the release channel ("release", "snapshot", ...).
	Type string

	// JavaMajorVersion is the minimum Java major version, 0 if unspecified.
	JavaMajorVersion int

	// LegacyArguments holds the pre-1.13 whitespace separated game arguments.
	LegacyArguments string

	// JVMArguments and GameArguments are nil when the manifest omits them.
	JVMArguments  []Argument
	GameArguments []Argument

	Libraries []Library
}

// Field returns the string value of a top-level manifest field by its
// manifest key. Empty values are reported as absent.
func (v *Version) Field(key string) (string, bool) {
	var s string
	switch key {
	case "id":
		s = v.ID
	case "inheritsFrom":
		s = v.InheritsFrom
	case "mainClass":
		s = v.MainClass
	case "assets":
		s = v.Assets
	case "type":
		s = v.Type
	case "minecraftArguments":
		s = v.LegacyArguments
	}
	return s, s != ""
}

// Argument is one entry of an argument list. A plain entry carries a single
// token in Values; a conditional entry carries rules and a value that was
// declared either as a string or as an array.
type Argument struct {
	Conditional bool
	Rules       []Rule

	// Array reports whether the conditional value was declared as an array.
	Array  bool
	Values []string
}

// Plain returns a plain argument entry.
func Plain(token string) Argument {
	return Argument{Values: []string{token}}
}

// Library is one entry of a manifest library list.
type Library struct {
	// Name is the Maven coordinate group:artifact:version[:classifier].
	Name string

	// ArtifactPath is the explicit path relative to the library directory.
	ArtifactPath string

	// Classifiers maps classifier names to paths relative to the library directory.
	Classifiers map[string]string

	// Natives maps platform families to native classifier keys, which may
	// contain an "${arch}" placeholder.
	Natives map[string]string

	// Rules gate inclusion; nil means always included.
	Rules []Rule
}

// Key returns the version independent conflict key group:artifact.
// Names that are not coordinates are their own key.
func (l *Library) Key() string {
	c, ok := ParseCoordinate(l.Name)
	if !ok {
		return l.Name
	}
	return c.Key()
}

// Coordinate is a parsed Maven coordinate.
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	Classifier string
	Extension  string
}

// ParseCoordinate parses group:artifact:version[:classifier][@extension].
func ParseCoordinate(name string) (Coordinate, bool) {
	ext := "jar"
	if i := strings.LastIndexByte(name, '@'); i >= 0 {
		ext = name[i+1:]
		name = name[:i]
	}
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return Coordinate{}, false
	}
	c := Coordinate{
		Group:     parts[0],
		Artifact:  parts[1],
		Version:   parts[2],
		Extension: ext,
	}
	if len(parts) > 3 {
		c.Classifier = parts[3]
	}
	return c, true
}

// Key returns group:artifact.
func (c Coordinate) Key() string {
	return c.Group + ":" + c.Artifact
}

// WithClassifier returns a copy with the classifier replaced.
func (c Coordinate) WithClassifier(classifier string) Coordinate {
	c.Classifier = classifier
	return c
}

// Path returns the slash separated Maven repository layout path.
func (c Coordinate) Path() string {
	base := c.Artifact + "-" + c.Version
	if c.Classifier != "" {
		base += "-" + c.Classifier
	}
	ext := c.Extension
	if ext == "" {
		ext = "jar"
	}
	group := strings.ReplaceAll(c.Group, ".", "/")
	return path.Join(group, c.Artifact, c.Version, base+"."+ext)
}
