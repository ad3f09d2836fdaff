package jsonspec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Version struct {
	ID           string `json:"id"`
	InheritsFrom string `json:"inheritsFrom,omitempty"`
	Type         string `json:"type,omitempty"`
	MainClass    string `json:"mainClass,omitempty"`
	Assets       string `json:"assets,omitempty"`

	JavaVersion *JavaVersion `json:"javaVersion,omitempty"`

	MinecraftArguments string     `json:"minecraftArguments,omitempty"`
	Arguments          *Arguments `json:"arguments,omitempty"`

	Libraries []Library `json:"libraries,omitempty"`
}

type JavaVersion struct {
	Component    string `json:"component,omitempty"`
	MajorVersion int    `json:"majorVersion"`
}

type Arguments struct {
	Game []Argument `json:"game,omitempty"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// Argument is either a bare string or an object with rules and a value.
type Argument struct {
	Plain string
	Rules []Rule
	Value Value

	Conditional bool
}

func (a *Argument) UnmarshalJSON(b []byte) error {
	if isString(b) {
		a.Conditional = false
		return json.Unmarshal(b, &a.Plain)
	}
	var obj struct {
		Rules []Rule `json:"rules"`
		Value Value  `json:"value"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	a.Conditional = true
	a.Rules = obj.Rules
	a.Value = obj.Value
	return nil
}

// Value is either a string or an array of strings.
type Value struct {
	Values []string
	Array  bool
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if isString(b) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v.Values = []string{s}
		v.Array = false
		return nil
	}
	var ss []string
	if err := json.Unmarshal(b, &ss); err != nil {
		return fmt.Errorf("argument value: %w", err)
	}
	v.Values = ss
	v.Array = true
	return nil
}

type Rule struct {
	Action   string          `json:"action"`
	OS       *OS             `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

type OS struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

type Library struct {
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"`
	Downloads *Downloads        `json:"downloads,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
}

type Downloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

type Artifact struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

func isString(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '"'
}
