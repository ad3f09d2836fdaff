package resolver

import (
	"path/filepath"
	"strings"

	"github.com/tie/claunch/manifest"
	"github.com/tie/claunch/models"
)

type Loader string

const (
	LoaderVanilla  Loader = "vanilla"
	LoaderForge    Loader = "forge"
	LoaderNeoForge Loader = "neoforge"
	LoaderFabric   Loader = "fabric"
)

// DetectLoader infers the mod loader from a version id.
func DetectLoader(id string) Loader {
	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "neoforge"):
		return LoaderNeoForge
	case strings.Contains(lower, "forge"):
		return LoaderForge
	case strings.Contains(lower, "fabric"):
		return LoaderFabric
	}
	return LoaderVanilla
}

var forgeCoordinates = []string{
	"net.minecraftforge:forge:",
	"net.minecraftforge:minecraftforge:",
}

// Classpath returns the resolved libraries followed by the loader specific
// version jars, joined with the platform list separator.
func (r *Resolver) Classpath(set *LibrarySet, v *manifest.Resolved) string {
	return strings.Join(r.ClasspathEntries(set, v), r.Platform.ListSeparator())
}

// ClasspathEntries is Classpath before joining.
func (r *Resolver) ClasspathEntries(set *LibrarySet, v *manifest.Resolved) []string {
	cp := set.Paths()
	loader := DetectLoader(v.ID())
	r.log().Infof("loader: %s", loader)
	switch loader {
	case LoaderNeoForge:
		cp = r.appendJar(cp, v.VersionJar())
	case LoaderForge:
		cp = r.appendJar(cp, v.ClientJar())
		cp = r.appendJar(cp, v.VersionJar())
		if jar := r.forgeJar(v); jar != "" {
			cp = r.appendJar(cp, jar)
		}
	default:
		cp = r.appendJar(cp, v.ClientJar())
		cp = r.appendJar(cp, v.VersionJar())
	}
	return cp
}

func (r *Resolver) appendJar(cp []string, jar string) []string {
	if !r.exists(jar) {
		r.log().Debugf("version jar not found: %s", jar)
		return cp
	}
	for _, p := range cp {
		if p == jar {
			return cp
		}
	}
	return append(cp, jar)
}

// forgeJar finds the forge library in the child, then the parent, and
// returns its universal jar if present on disk, else the plain jar.
func (r *Resolver) forgeJar(v *manifest.Resolved) string {
	name := findForge(v.Child.Libraries)
	if name == "" && v.Parent != nil {
		name = findForge(v.Parent.Libraries)
	}
	c, ok := models.ParseCoordinate(name)
	if !ok {
		return ""
	}
	universal := filepath.Join(r.LibraryDir, filepath.FromSlash(c.WithClassifier("universal").Path()))
	if r.exists(universal) {
		return universal
	}
	return filepath.Join(r.LibraryDir, filepath.FromSlash(c.WithClassifier("").Path()))
}

func findForge(libs []models.Library) string {
	for _, lib := range libs {
		for _, prefix := range forgeCoordinates {
			if strings.Contains(lib.Name, prefix) {
				return lib.Name
			}
		}
	}
	return ""
}
