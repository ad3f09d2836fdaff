package resolver

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/klauspost/compress/zip"
)

var nativeExtensions = []string{".so", ".dll", ".dylib", ".jnilib"}

// Extract unpacks shared libraries from every resolved native jar into dir.
// Files are written flat, by base name, in resolution order so that a
// later jar overwrites an earlier one shipping the same file. Failures of
// a single jar or entry are logged and skipped. It returns the number of
// files written.
func (r *Resolver) Extract(set *LibrarySet, dir string) (int, error) {
	if err := r.Files.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	n := 0
	for _, jar := range set.Natives() {
		n += r.extractJar(jar, dir)
	}
	return n, nil
}

func (r *Resolver) extractJar(jar, dir string) int {
	fi, err := r.Files.Stat(jar)
	if err != nil {
		r.log().Warnf("stat native %q: %+v", jar, err)
		return 0
	}
	f, err := r.Files.Open(jar)
	if err != nil {
		r.log().Warnf("open native %q: %+v", jar, err)
		return 0
	}
	defer func() {
		err := f.Close()
		if err != nil {
			r.log().Warnf("close %q: %+v", jar, err)
		}
	}()
	z, err := zip.NewReader(f, fi.Size())
	if err != nil {
		r.log().Warnf("read native %q: %+v", jar, err)
		return 0
	}
	n := 0
	for _, zf := range z.File {
		// Names ending in a slash are directories.
		if strings.HasSuffix(zf.Name, "/") {
			continue
		}
		if !isNativeEntry(zf.Name) {
			continue
		}
		name := filepath.Join(dir, path.Base(zf.Name))
		if err := r.writeEntry(zf, name); err != nil {
			r.log().Warnf("extract %q from %q: %+v", zf.Name, jar, err)
			continue
		}
		r.log().Debugf("extracted %s -> %s", zf.Name, name)
		n++
	}
	return n
}

func (r *Resolver) writeEntry(zf *zip.File, name string) error {
	src, err := zf.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	flags := os.O_WRONLY | os.O_TRUNC | os.O_CREATE
	return withFile(r.Files, name, flags, func(f billy.File) error {
		_, err := io.Copy(f, src)
		return err
	})
}

func withFile(fs billy.Filesystem, name string, flag int, fn func(billy.File) error) (err error) {
	f, err := fs.OpenFile(name, flag, 0755)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

func isNativeEntry(name string) bool {
	if strings.HasPrefix(name, "META-INF/") {
		return false
	}
	lower := strings.ToLower(name)
	for _, ext := range nativeExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
