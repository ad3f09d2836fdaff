package resolver

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/tie/claunch/models"
	"github.com/tie/claunch/rules"
)

// Rank is the priority of a library list. Higher ranks replace
// conflicting entries registered by lower ranks.
type Rank int

const (
	RankParent Rank = iota
	RankChild
)

func (r Rank) String() string {
	if r == RankChild {
		return "child"
	}
	return "parent"
}

// Resolver resolves library declarations to artifacts on disk.
type Resolver struct {
	Files      billy.Filesystem
	LibraryDir string
	Platform   models.Platform
	Log        models.Sink
}

// Resolve processes the parent's libraries, then the child's. The order is
// fixed: child declarations must be seen last to win conflicts.
func (r *Resolver) Resolve(parent *models.Version, child models.Version) *LibrarySet {
	set := NewLibrarySet()
	if parent != nil {
		r.Process(set, parent.Libraries, RankParent)
	}
	r.Process(set, child.Libraries, RankChild)
	return set
}

// Process adds one library list to set.
func (r *Resolver) Process(set *LibrarySet, libs []models.Library, rank Rank) {
	r.log().Debugf("processing %d %s libraries", len(libs), rank)
	included := make([]*models.Library, 0, len(libs))
	for i := range libs {
		lib := &libs[i]
		if !rules.Allowed(lib.Rules, r.Platform, nil) {
			r.log().Debugf("library excluded by rules: %s", lib.Name)
			continue
		}
		included = append(included, lib)
	}
	host := r.hostBuilds(included)
	for _, lib := range included {
		r.addArtifact(set, lib, rank, host)
		r.addNatives(set, lib, rank)
	}
}

func (r *Resolver) addArtifact(set *LibrarySet, lib *models.Library, rank Rank, host map[string]bool) {
	fpath := r.ArtifactPath(lib)
	if fpath == "" {
		// Natives-only declarations have no main artifact.
		return
	}
	native := r.IsNative(fpath)
	var key string
	if native {
		v := nativeVariantOf(lib, fpath)
		key = lib.Key() + ":" + v.base
		if !r.matchVariant(v, host[key]) {
			r.log().Debugf("native for another platform: %s", lib.Name)
			return
		}
	}
	if !r.exists(fpath) {
		if native || len(lib.Natives) <= 0 {
			r.log().Warnf("library not found: %s -> %s", lib.Name, fpath)
		}
		return
	}
	if native {
		set.natives.register(r.log(), key, fpath, rank)
		return
	}
	set.classpath.register(r.log(), lib.Key(), fpath, rank)
}

// hostBuilds returns the native keys for which libs declare a build of
// the host architecture.
func (r *Resolver) hostBuilds(libs []*models.Library) map[string]bool {
	host := make(map[string]bool)
	arch := r.Platform.NativeArch()
	for _, lib := range libs {
		fpath := r.ArtifactPath(lib)
		if fpath == "" || !r.IsNative(fpath) {
			continue
		}
		v := nativeVariantOf(lib, fpath)
		if v.arch == arch {
			host[lib.Key()+":"+v.base] = true
		}
	}
	return host
}

// matchVariant reports whether a native jar is built for the host. An
// unsuffixed jar stands in for hosts that have no build of their own.
func (r *Resolver) matchVariant(v nativeVariant, hostBuild bool) bool {
	if v.family != "" && v.family != r.Platform.Family() {
		return false
	}
	if v.arch == r.Platform.NativeArch() {
		return true
	}
	return v.generic && !hostBuild
}

// nativeVariant is the platform a native jar classifier such as
// natives-windows-arm64 names.
type nativeVariant struct {
	// family is empty when the classifier names no platform.
	family string

	// arch is the x64 build unless the classifier has an arch suffix.
	arch    string
	generic bool

	// base is the classifier without its arch suffix.
	base string
}

var nativeArchSuffixes = []struct {
	suffix, arch string
}{
	{"-arm64", models.ArchARM64},
	{"-aarch64", models.ArchARM64},
	{"-arm32", models.ArchARM32},
	{"-x86", models.ArchX86},
}

func nativeVariantOf(lib *models.Library, fpath string) nativeVariant {
	classifier := ""
	if c, ok := models.ParseCoordinate(lib.Name); ok {
		classifier = c.Classifier
	}
	if classifier == "" {
		classifier = strings.TrimSuffix(path.Base(filepath.ToSlash(fpath)), ".jar")
	}
	classifier = strings.ToLower(classifier)

	v := nativeVariant{arch: models.ArchX64, generic: true, base: classifier}
	for _, s := range nativeArchSuffixes {
		if strings.HasSuffix(classifier, s.suffix) {
			v.arch = s.arch
			v.generic = false
			v.base = strings.TrimSuffix(classifier, s.suffix)
			break
		}
	}
	switch {
	case strings.Contains(v.base, "windows"):
		v.family = models.FamilyWindows
	case strings.Contains(v.base, "macos"), strings.Contains(v.base, "osx"):
		v.family = models.FamilyOSX
	case strings.Contains(v.base, "linux"):
		v.family = models.FamilyLinux
	}
	return v
}

func (r *Resolver) addNatives(set *LibrarySet, lib *models.Library, rank Rank) {
	if len(lib.Natives) <= 0 {
		return
	}
	classifier, ok := lib.Natives[r.Platform.Family()]
	if !ok {
		return
	}
	classifier = strings.ReplaceAll(classifier, "${arch}", r.Platform.Bits())
	fpath := r.classifierPath(lib, classifier)
	if fpath == "" {
		return
	}
	if !r.exists(fpath) {
		r.log().Warnf("native library not found: %s (%s) -> %s", lib.Name, classifier, fpath)
		return
	}
	set.natives.register(r.log(), lib.Key(), fpath, rank)
}

// ArtifactPath returns the absolute path of a library's main artifact,
// preferring the explicit download path over the coordinate layout.
func (r *Resolver) ArtifactPath(lib *models.Library) string {
	if lib.ArtifactPath != "" {
		return r.join(lib.ArtifactPath)
	}
	if len(lib.Natives) > 0 && len(lib.Classifiers) > 0 {
		// Legacy natives declarations list only classifier downloads.
		return ""
	}
	c, ok := models.ParseCoordinate(lib.Name)
	if !ok {
		return ""
	}
	return r.join(c.Path())
}

func (r *Resolver) classifierPath(lib *models.Library, classifier string) string {
	if p, ok := lib.Classifiers[classifier]; ok {
		return r.join(p)
	}
	c, ok := models.ParseCoordinate(lib.Name)
	if !ok {
		return ""
	}
	return r.join(c.WithClassifier(classifier).Path())
}

// IsNative reports whether an artifact path names a platform native jar.
func (r *Resolver) IsNative(fpath string) bool {
	name := strings.ToLower(path.Base(filepath.ToSlash(fpath)))
	if strings.Contains(name, "-natives-") {
		return true
	}
	for _, suffix := range nativeSuffixes[r.Platform.Family()] {
		if strings.HasSuffix(strings.TrimSuffix(name, ".jar"), suffix) {
			return true
		}
	}
	return false
}

// Platform specific classifiers of libraries that ship only natives.
var nativeSuffixes = map[string][]string{
	models.FamilyWindows: {"-windows", "-windows-x86", "-windows-arm64"},
	models.FamilyLinux:   {"-linux", "-linux-arm64", "-linux-arm32"},
	models.FamilyOSX:     {"-macos", "-macos-arm64", "-osx"},
}

func (r *Resolver) join(rel string) string {
	return filepath.Join(r.LibraryDir, filepath.FromSlash(rel))
}

func (r *Resolver) exists(fpath string) bool {
	fi, err := r.Files.Stat(fpath)
	return err == nil && !fi.IsDir()
}

func (r *Resolver) log() models.Sink {
	if r.Log == nil {
		return models.Discard
	}
	return r.Log
}
