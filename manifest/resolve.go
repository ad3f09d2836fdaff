package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/tie/claunch/models"
)

const (
	defaultAssets      = "legacy"
	defaultVersionType = "release"
)

// Path returns the conventional manifest location of a version.
func Path(gameRoot, id string) string {
	return filepath.Join(gameRoot, "shared", "versions", id, id+".json")
}

// Resolved is a version manifest merged with its parent, if any.
// Fields of the child take precedence over fields of the parent.
type Resolved struct {
	Child  models.Version
	Parent *models.Version

	GameRoot   string
	LibraryDir string
	AssetsDir  string
	NativeDir  string
}

// Resolve loads the manifest at childPath and, when it declares
// inheritsFrom, the parent manifest from the shared versions directory.
func Resolve(l Loader, childPath, gameRoot string) (*Resolved, error) {
	child, err := l.Load(childPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrManifestNotFound, err)
	}
	gameRoot = filepath.Clean(gameRoot)
	v := &Resolved{
		Child:    child,
		GameRoot: gameRoot,
	}
	if id := child.InheritsFrom; id != "" {
		parent, err := l.Load(Path(gameRoot, id))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrParentNotFound, id, err)
		}
		v.Parent = &parent
	}
	shared := filepath.Join(gameRoot, "shared")
	v.LibraryDir = filepath.Join(shared, "libraries")
	v.AssetsDir = filepath.Join(shared, "assets")
	v.NativeDir = filepath.Join(shared, "natives", v.NativeDirID())
	return v, nil
}

// ID returns the child version id.
func (v *Resolved) ID() string {
	return v.Child.ID
}

func (v *Resolved) HasParent() bool {
	return v.Parent != nil
}

// BaseID returns the parent id when inherited, else the child id.
// Natives and the client jar are stored under this id.
func (v *Resolved) BaseID() string {
	if v.Parent != nil {
		return v.Parent.ID
	}
	return v.Child.ID
}

// NativeDirID names the directory natives are extracted to.
func (v *Resolved) NativeDirID() string {
	return v.BaseID()
}

// Property looks up a manifest field in the child, then in the parent,
// and falls back to def.
func (v *Resolved) Property(key, def string) string {
	if s, ok := v.Child.Field(key); ok {
		return s
	}
	if v.Parent != nil {
		if s, ok := v.Parent.Field(key); ok {
			return s
		}
	}
	return def
}

func (v *Resolved) MainClass() string {
	return v.Property("mainClass", "")
}

func (v *Resolved) AssetsIndexName() string {
	return v.Property("assets", defaultAssets)
}

func (v *Resolved) VersionType() string {
	return v.Property("type", defaultVersionType)
}

// JavaMajorVersion returns the required Java major version or 0.
func (v *Resolved) JavaMajorVersion() int {
	if n := v.Child.JavaMajorVersion; n > 0 {
		return n
	}
	if v.Parent != nil {
		return v.Parent.JavaMajorVersion
	}
	return 0
}

func (v *Resolved) AssetsVirtualDir() string {
	return filepath.Join(v.AssetsDir, "virtual", v.AssetsIndexName())
}

// ClientJar is the jar of the base version.
func (v *Resolved) ClientJar() string {
	id := v.BaseID()
	return filepath.Join(v.GameRoot, "shared", "versions", id, id+".jar")
}

// VersionJar is the jar of the child version. It equals ClientJar
// for versions without a parent.
func (v *Resolved) VersionJar() string {
	id := v.Child.ID
	return filepath.Join(v.GameRoot, "shared", "versions", id, id+".jar")
}

// JVMArguments returns the child's JVM arguments followed by the parent's.
func (v *Resolved) JVMArguments() []models.Argument {
	args := append([]models.Argument(nil), v.Child.JVMArguments...)
	if v.Parent != nil {
		args = append(args, v.Parent.JVMArguments...)
	}
	return args
}

// GameArguments returns the structured game arguments of the child, or of
// the parent when the child declares none. ok is false when neither does.
func (v *Resolved) GameArguments() (args []models.Argument, ok bool) {
	if v.Child.GameArguments != nil {
		return v.Child.GameArguments, true
	}
	if v.Parent != nil && v.Parent.GameArguments != nil {
		return v.Parent.GameArguments, true
	}
	return nil, false
}

// LegacyArguments returns the minecraftArguments string.
func (v *Resolved) LegacyArguments() string {
	return v.Property("minecraftArguments", "")
}
