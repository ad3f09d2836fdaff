package jsonspec

import (
	"github.com/tie/claunch/models"
)

// Model converts the decoded document into the domain representation.
// Argument lists stay nil when the document omits them.
func (v *Version) Model() models.Version {
	m := models.Version{
		ID:              v.ID,
		InheritsFrom:    v.InheritsFrom,
		MainClass:       v.MainClass,
		Assets:          v.Assets,
		Type:            v.Type,
		LegacyArguments: v.MinecraftArguments,
	}
	if v.JavaVersion != nil {
		m.JavaMajorVersion = v.JavaVersion.MajorVersion
	}
	if v.Arguments != nil {
		m.JVMArguments = arguments(v.Arguments.JVM)
		m.GameArguments = arguments(v.Arguments.Game)
	}
	if len(v.Libraries) > 0 {
		m.Libraries = make([]models.Library, len(v.Libraries))
		for i := range v.Libraries {
			m.Libraries[i] = v.Libraries[i].Model()
		}
	}
	return m
}

func (l *Library) Model() models.Library {
	m := models.Library{
		Name:    l.Name,
		Natives: l.Natives,
		Rules:   rules(l.Rules),
	}
	if d := l.Downloads; d != nil {
		if d.Artifact != nil {
			m.ArtifactPath = d.Artifact.Path
		}
		if len(d.Classifiers) > 0 {
			m.Classifiers = make(map[string]string, len(d.Classifiers))
			for name, a := range d.Classifiers {
				if a.Path == "" {
					continue
				}
				m.Classifiers[name] = a.Path
			}
		}
	}
	return m
}

func arguments(as []Argument) []models.Argument {
	if as == nil {
		return nil
	}
	out := make([]models.Argument, len(as))
	for i, a := range as {
		if !a.Conditional {
			out[i] = models.Plain(a.Plain)
			continue
		}
		out[i] = models.Argument{
			Conditional: true,
			Rules:       rules(a.Rules),
			Array:       a.Value.Array,
			Values:      a.Value.Values,
		}
	}
	return out
}

func rules(rs []Rule) []models.Rule {
	if len(rs) <= 0 {
		return nil
	}
	out := make([]models.Rule, len(rs))
	for i, r := range rs {
		mr := models.Rule{
			Action:   models.Action(r.Action),
			Features: r.Features,
		}
		if r.OS != nil {
			mr.OS = &models.OSCondition{
				Name:    r.OS.Name,
				Arch:    r.OS.Arch,
				Version: r.OS.Version,
			}
		}
		out[i] = mr
	}
	return out
}
